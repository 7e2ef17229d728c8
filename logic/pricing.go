package logic

import "warung-backend/models"

// 纯计算，无副作用。所有金额最终都从行数据整体重算，避免增量累加漂移

// WithQuantity 归一化配料选购数量，缺省按 1
func WithQuantity(tops []models.Topping) []models.Topping {
	out := make([]models.Topping, 0, len(tops))
	for _, t := range tops {
		if t.Quantity <= 0 {
			t.Quantity = 1
		}
		out = append(out, t)
	}
	return out
}

// ToppingsSubtotal 配料小计 = Σ 单价×数量（数量缺省 1）
func ToppingsSubtotal(tops []models.Topping) float64 {
	var sum float64
	for _, t := range tops {
		qty := t.Quantity
		if qty <= 0 {
			qty = 1
		}
		sum += t.Price * float64(qty)
	}
	return sum
}

// AutoSelectTopping 找出菜品定义里的 autoSelect 配料
// 特殊规则只在【恰好一个】配料带 autoSelect 标记时生效，多个视为数据错误，不生效
func AutoSelectTopping(item models.MenuItem) (models.Topping, bool) {
	var found models.Topping
	count := 0
	for _, t := range item.Toppings {
		if t.AutoSelect {
			found = t
			count++
		}
	}
	if count != 1 {
		return models.Topping{}, false
	}
	return found, true
}

// LineTotal 单行总价
// 常规：基础单价×数量 + 配料小计
// 特例：菜品定义里恰好有一个 autoSelect 配料时，用它的单价顶替基础单价
// （建模"名义免费、真身在配料里"的菜，比如面条），该配料不再计入配料小计。
// 这是针对个别菜品的孤立路径，不要推广成通用规则
func LineTotal(item models.MenuItem, quantity int, tops []models.Topping) float64 {
	if auto, ok := AutoSelectTopping(item); ok {
		var others float64
		for _, t := range tops {
			if t.ID == auto.ID {
				continue
			}
			qty := t.Quantity
			if qty <= 0 {
				qty = 1
			}
			others += t.Price * float64(qty)
		}
		return auto.Price*float64(quantity) + others
	}
	return item.Price*float64(quantity) + ToppingsSubtotal(tops)
}

// CartTotal 整车总价 = Σ 各行总价，永远重算
func CartTotal(items []models.CartLineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.TotalPrice
	}
	return sum
}
