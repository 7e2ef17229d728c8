package models

// CartLineItem 购物车行
// ID 在创建时生成，独立于菜单 ID（同一个菜加不同配料会出现多行）
// MenuItem 是加车时刻的快照，不跟目录活链接
type CartLineItem struct {
	ID               string    `json:"id"`
	MenuItem         MenuItem  `json:"menuItem"`
	Quantity         int       `json:"quantity"`
	SelectedToppings []Topping `json:"selectedToppings"`
	TotalPrice       float64   `json:"totalPrice"`
	Notes            string    `json:"notes,omitempty"`
}

// CartState 购物车聚合状态
// Total 永远等于各行 TotalPrice 之和，每次动作后整体重算，不做增量累加
type CartState struct {
	Items []CartLineItem `json:"items"`
	Total float64        `json:"total"`
}

func EmptyCart() CartState {
	return CartState{Items: []CartLineItem{}, Total: 0}
}

/* ---------- 购物车接口请求体 ---------- */

// ToppingSelection 前端提交的配料选择，数量缺省按 1 处理
type ToppingSelection struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

type AddItemReq struct {
	MenuItemID string             `json:"menu_item_id" binding:"required"`
	Toppings   []ToppingSelection `json:"toppings"`
	Quantity   int                `json:"quantity"`
}

type EditItemReq struct {
	MenuItemID string             `json:"menu_item_id" binding:"required"`
	Toppings   []ToppingSelection `json:"toppings"`
	Quantity   int                `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityReq struct {
	Quantity int `json:"quantity"`
}

type UpdateNotesReq struct {
	Notes string `json:"notes"`
}

type CheckoutReq struct {
	CustomerName string `json:"customer_name"`
}
