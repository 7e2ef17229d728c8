package logic

import (
	"fmt"
	"math"

	"warung-backend/models"

	"github.com/google/uuid"
)

// 购物车是"纯 reducer"状态机：(state, action) -> state
// 动作串行应用，库存不够的动作静默返回原状态（由调用方提前探测并提示用户），
// 未知动作、找不到的行一律原样返回，不崩

type CartAction interface{ isCartAction() }

type AddItem struct {
	MenuItem models.MenuItem
	Toppings []models.Topping
	Quantity int // <=0 按 1 处理
}

type RemoveItem struct {
	LineID string
}

type UpdateQuantity struct {
	LineID   string
	Quantity int // <=0 等价于 RemoveItem
}

// EditItem 整行替换（编辑已点单的深链流程），不与其他行合并
type EditItem struct {
	LineID   string
	MenuItem models.MenuItem
	Toppings []models.Topping
	Quantity int
}

type UpdateNotes struct {
	LineID string
	Notes  string
}

type ClearCart struct{}

// LoadCart 从持久化快照整体恢复，形状不对就退回空车
type LoadCart struct {
	State models.CartState
}

func (AddItem) isCartAction()        {}
func (RemoveItem) isCartAction()     {}
func (UpdateQuantity) isCartAction() {}
func (EditItem) isCartAction()       {}
func (UpdateNotes) isCartAction()    {}
func (ClearCart) isCartAction()      {}
func (LoadCart) isCartAction()       {}

// NewLineID 行 ID：菜单 ID + uuid，保证不与菜单 ID 也不与既有行撞车
func NewLineID(menuID string) string {
	return fmt.Sprintf("%s-%s", menuID, uuid.NewString())
}

// Reduce 状态转移入口
func Reduce(state models.CartState, action CartAction) models.CartState {
	// 保证 items 永远是切片
	items := state.Items
	if items == nil {
		items = []models.CartLineItem{}
	}

	switch a := action.(type) {
	case AddItem:
		return reduceAdd(items, a)
	case RemoveItem:
		return recompute(removeLine(items, a.LineID))
	case UpdateQuantity:
		return reduceUpdateQuantity(items, a)
	case EditItem:
		return reduceEdit(items, a)
	case UpdateNotes:
		return reduceNotes(items, a)
	case ClearCart:
		return models.EmptyCart()
	case LoadCart:
		return reduceLoad(a.State)
	default:
		return state
	}
}

func reduceAdd(items []models.CartLineItem, a AddItem) models.CartState {
	quantity := a.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	tops := normalizeSelections(a.MenuItem, a.Toppings, quantity)

	// 同菜品已占用的总量（跨所有行）
	committed := committedQuantity(items, a.MenuItem.ID, "")
	if !a.MenuItem.Stock.Allows(quantity, committed) {
		// 超出剩余库存：动作丢弃，状态不变
		return recompute(items)
	}

	// 找同菜品、同配料 ID 集合的行（与数量无关，只比 ID 集合）
	for i, line := range items {
		if line.MenuItem.ID == a.MenuItem.ID && sameToppingSet(line.SelectedToppings, tops) {
			merged := mergeToppings(line.SelectedToppings, tops)
			next := make([]models.CartLineItem, len(items))
			copy(next, items)
			next[i].Quantity = line.Quantity + quantity
			next[i].SelectedToppings = merged
			next[i].TotalPrice = LineTotal(line.MenuItem, next[i].Quantity, merged)
			return recompute(next)
		}
	}

	// 新行：生成独立 ID，存菜品快照，追加到末尾（保持插入序）
	newLine := models.CartLineItem{
		ID:               NewLineID(a.MenuItem.ID),
		MenuItem:         a.MenuItem,
		Quantity:         quantity,
		SelectedToppings: tops,
		TotalPrice:       LineTotal(a.MenuItem, quantity, tops),
	}
	return recompute(append(append([]models.CartLineItem{}, items...), newLine))
}

func reduceUpdateQuantity(items []models.CartLineItem, a UpdateQuantity) models.CartState {
	if a.Quantity <= 0 {
		return recompute(removeLine(items, a.LineID))
	}

	idx := findLine(items, a.LineID)
	if idx < 0 {
		return recompute(items)
	}
	target := items[idx]

	// 其他行（同菜品、不含本行）已占用的量
	otherQty := committedQuantity(items, target.MenuItem.ID, a.LineID)
	if !target.MenuItem.Stock.Allows(a.Quantity, otherQty) {
		return recompute(items)
	}

	next := make([]models.CartLineItem, len(items))
	copy(next, items)
	tops := retrackAutoSelect(target.MenuItem, target.SelectedToppings, a.Quantity)
	next[idx].Quantity = a.Quantity
	next[idx].SelectedToppings = tops
	next[idx].TotalPrice = LineTotal(target.MenuItem, a.Quantity, tops)
	return recompute(next)
}

func reduceEdit(items []models.CartLineItem, a EditItem) models.CartState {
	idx := findLine(items, a.LineID)
	if idx < 0 {
		return recompute(items)
	}

	tops := normalizeSelections(a.MenuItem, a.Toppings, a.Quantity)
	next := make([]models.CartLineItem, len(items))
	copy(next, items)
	next[idx].MenuItem = a.MenuItem
	next[idx].Quantity = a.Quantity
	next[idx].SelectedToppings = tops
	next[idx].TotalPrice = LineTotal(a.MenuItem, a.Quantity, tops)
	return recompute(next)
}

func reduceNotes(items []models.CartLineItem, a UpdateNotes) models.CartState {
	idx := findLine(items, a.LineID)
	if idx < 0 {
		return recompute(items)
	}
	next := make([]models.CartLineItem, len(items))
	copy(next, items)
	next[idx].Notes = a.Notes
	return recompute(next)
}

func reduceLoad(loaded models.CartState) models.CartState {
	// 防御式校验：items 不是数组、total 不是正常数字 -> 空车兜底
	if loaded.Items == nil || math.IsNaN(loaded.Total) || math.IsInf(loaded.Total, 0) {
		return models.EmptyCart()
	}
	return loaded
}

/* ---------- 辅助 ---------- */

// normalizeSelections 归一化配料数量，并让 autoSelect 配料跟随行数量
func normalizeSelections(item models.MenuItem, tops []models.Topping, quantity int) []models.Topping {
	out := WithQuantity(tops)
	return retrackAutoSelect(item, out, quantity)
}

// retrackAutoSelect autoSelect 配料的数量强制等于行数量；没选上就补选
// 同样只在恰好一个 autoSelect 定义时生效，保持孤立
func retrackAutoSelect(item models.MenuItem, tops []models.Topping, quantity int) []models.Topping {
	auto, ok := AutoSelectTopping(item)
	if !ok {
		return tops
	}
	out := make([]models.Topping, 0, len(tops)+1)
	found := false
	for _, t := range tops {
		if t.ID == auto.ID {
			t.Quantity = quantity
			found = true
		}
		out = append(out, t)
	}
	if !found {
		auto.Quantity = quantity
		out = append(out, auto)
	}
	return out
}

// committedQuantity 同菜品在购物车里已占用的总量，可排除某一行
func committedQuantity(items []models.CartLineItem, menuID string, excludeLineID string) int {
	sum := 0
	for _, line := range items {
		if line.MenuItem.ID == menuID && line.ID != excludeLineID {
			sum += line.Quantity
		}
	}
	return sum
}

// sameToppingSet 按 ID 集合比较配料组合（无序、不看数量）
func sameToppingSet(a, b []models.Topping) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t.ID] = true
	}
	if len(set) != len(b) {
		return false
	}
	for _, t := range b {
		if !set[t.ID] {
			return false
		}
	}
	return true
}

// mergeToppings 按 ID 合并：数量相加，不覆盖；保持原有顺序，新配料追加
func mergeToppings(existing, incoming []models.Topping) []models.Topping {
	merged := make([]models.Topping, len(existing))
	copy(merged, existing)
	index := make(map[string]int, len(existing))
	for i, t := range merged {
		if merged[i].Quantity <= 0 {
			merged[i].Quantity = 1
		}
		index[t.ID] = i
	}
	for _, t := range incoming {
		qty := t.Quantity
		if qty <= 0 {
			qty = 1
		}
		if i, ok := index[t.ID]; ok {
			merged[i].Quantity += qty
		} else {
			t.Quantity = qty
			index[t.ID] = len(merged)
			merged = append(merged, t)
		}
	}
	return merged
}

func findLine(items []models.CartLineItem, lineID string) int {
	for i, line := range items {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

func removeLine(items []models.CartLineItem, lineID string) []models.CartLineItem {
	next := make([]models.CartLineItem, 0, len(items))
	for _, line := range items {
		if line.ID != lineID {
			next = append(next, line)
		}
	}
	return next
}

func recompute(items []models.CartLineItem) models.CartState {
	return models.CartState{Items: items, Total: CartTotal(items)}
}
