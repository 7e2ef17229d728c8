package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stock 库存模型：有限数量 或 无限量
// 旧数据源用字符串哨兵（"-" / "Banyak" / "∞"）表示无限库存，
// 统一在数据加载边界转成 Stock，下游只做数值运算，不再碰哨兵
type Stock struct {
	Unlimited bool `json:"-"`
	Count     int  `json:"-"`
}

// 无限库存的哨兵写法（Banyak 不区分大小写）
var infiniteSentinels = map[string]bool{
	"-":      true,
	"banyak": true,
	"∞":      true,
}

func FiniteStock(n int) Stock {
	return Stock{Count: n}
}

func UnlimitedStock() Stock {
	return Stock{Unlimited: true}
}

// ParseStock 解析原始库存表示（数字 或 无限哨兵字符串）
// 有限库存不允许为负
func ParseStock(v any) (Stock, error) {
	switch raw := v.(type) {
	case nil:
		return Stock{}, fmt.Errorf("库存值为空")
	case string:
		if infiniteSentinels[strings.ToLower(strings.TrimSpace(raw))] {
			return UnlimitedStock(), nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Stock{}, fmt.Errorf("无法识别的库存值: %q", raw)
		}
		return newFinite(n)
	case float64:
		if math.IsInf(raw, 1) {
			return UnlimitedStock(), nil
		}
		return newFinite(int(raw))
	case int:
		return newFinite(raw)
	case int64:
		return newFinite(int(raw))
	default:
		return Stock{}, fmt.Errorf("无法识别的库存类型: %T", v)
	}
}

func newFinite(n int) (Stock, error) {
	if n < 0 {
		return Stock{}, fmt.Errorf("库存不能为负数: %d", n)
	}
	return FiniteStock(n), nil
}

func (s Stock) IsFinite() bool {
	return !s.Unlimited
}

// Normalized 归一化为数值：无限 -> +Inf
// 之后的减法、比较、取 min/max 都直接用普通浮点运算
func (s Stock) Normalized() float64 {
	if s.Unlimited {
		return math.Inf(1)
	}
	return float64(s.Count)
}

// Remaining 扣除已占用量后的剩余库存（原始值，可能为负，用于 ">" 判断）
func (s Stock) Remaining(committed int) float64 {
	return s.Normalized() - float64(committed)
}

// RemainingClamped 展示用剩余库存，最低为 0
func (s Stock) RemainingClamped(committed int) float64 {
	return math.Max(0, s.Remaining(committed))
}

// Allows 判断在已占用 committed 的前提下，还能不能再要 quantity 个
func (s Stock) Allows(quantity, committed int) bool {
	return float64(quantity) <= s.Remaining(committed)
}

// MarshalJSON 有限库存输出数字，无限库存输出 "Banyak"，与旧前端快照兼容
func (s Stock) MarshalJSON() ([]byte, error) {
	if s.Unlimited {
		return json.Marshal("Banyak")
	}
	return json.Marshal(s.Count)
}

func (s *Stock) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseStock(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
