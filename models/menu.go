package models

// Category 菜单分类：makanan(吃的) / minuman(喝的)，闭集
type Category string

const (
	CategoryMakanan Category = "makanan"
	CategoryMinuman Category = "minuman"
)

func (c Category) Valid() bool {
	return c == CategoryMakanan || c == CategoryMinuman
}

// Topping 配料定义
// AutoSelect: 配料数量强制跟随所在行的数量（用于"真身在配料里"的免费主品，如面条）
// Main: 与 AutoSelect 搭配，前端据此锁死该配料的数量控件
type Topping struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      Stock   `json:"stock"`
	Quantity   int     `json:"quantity,omitempty"` // 购物车行里的选购数量，目录定义里为 0
	AutoSelect bool    `json:"autoSelect,omitempty"`
	Main       bool    `json:"main,omitempty"`
}

// MenuItem 菜单项
// 目录里的 Stock 是上限，不是计数器：下单校验只拿它和购物车里已占用量比较，目录本身不变
type MenuItem struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Price               float64   `json:"price"` // 基础单价，可为 0（价格由 autoSelect 配料承担）
	Category            Category  `json:"category"`
	Image               string    `json:"image"`
	Description         string    `json:"description"`
	Available           bool      `json:"available"`
	BestSeller          bool      `json:"bestSeller"`
	Stock               Stock     `json:"stock"`
	Toppings            []Topping `json:"toppings,omitempty"`
	MinToppingsRequired int       `json:"minToppingsRequired,omitempty"`
}

// FindTopping 在定义列表里按 ID 查配料
func (m MenuItem) FindTopping(id string) (Topping, bool) {
	for _, t := range m.Toppings {
		if t.ID == id {
			return t, true
		}
	}
	return Topping{}, false
}
