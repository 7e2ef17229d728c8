package logic

import (
	"testing"

	"warung-backend/models"
)

func seblak() models.MenuItem {
	return models.MenuItem{
		ID:        "seblak",
		Name:      "Seblak",
		Price:     15000,
		Category:  models.CategoryMakanan,
		Available: true,
		Stock:     models.FiniteStock(10),
		Toppings: []models.Topping{
			{ID: "sosis", Name: "Sosis", Price: 5000, Stock: models.FiniteStock(20)},
			{ID: "bakso", Name: "Bakso", Price: 6000, Stock: models.UnlimitedStock()},
		},
	}
}

// 名义价 0，真身价格在 autoSelect 配料里的菜
func mieAyam() models.MenuItem {
	return models.MenuItem{
		ID:        "mie-ayam",
		Name:      "Mie Ayam",
		Price:     0,
		Category:  models.CategoryMakanan,
		Available: true,
		Stock:     models.FiniteStock(15),
		Toppings: []models.Topping{
			{ID: "mie", Name: "Mie", Price: 12000, Stock: models.UnlimitedStock(), AutoSelect: true, Main: true},
			{ID: "pangsit", Name: "Pangsit", Price: 3000, Stock: models.FiniteStock(30)},
		},
		MinToppingsRequired: 1,
	}
}

func TestToppingsSubtotal(t *testing.T) {
	tops := []models.Topping{
		{ID: "a", Price: 5000, Quantity: 2},
		{ID: "b", Price: 3000}, // 数量缺省按 1
	}
	if got := ToppingsSubtotal(tops); got != 13000 {
		t.Errorf("配料小计 = %v, 期望 13000", got)
	}
}

func TestLineTotalRegular(t *testing.T) {
	tops := []models.Topping{{ID: "sosis", Price: 5000, Quantity: 1}}
	// 15000×2 + 5000 = 35000
	if got := LineTotal(seblak(), 2, tops); got != 35000 {
		t.Errorf("行总价 = %v, 期望 35000", got)
	}
}

func TestLineTotalAutoSelectSubstitution(t *testing.T) {
	item := mieAyam()
	tops := []models.Topping{
		{ID: "mie", Price: 12000, Quantity: 2, AutoSelect: true, Main: true},
		{ID: "pangsit", Price: 3000, Quantity: 1},
	}
	// autoSelect 配料顶替基础单价：12000×2 + 3000，mie 不再计入配料小计
	if got := LineTotal(item, 2, tops); got != 27000 {
		t.Errorf("autoSelect 行总价 = %v, 期望 27000", got)
	}
}

func TestAutoSelectOnlyWhenExactlyOne(t *testing.T) {
	item := mieAyam()
	if _, ok := AutoSelectTopping(item); !ok {
		t.Fatal("恰好一个 autoSelect 定义时应生效")
	}

	// 两个 autoSelect 视为数据错误，规则不生效
	item.Toppings = append(item.Toppings, models.Topping{ID: "x", Price: 1, AutoSelect: true})
	if _, ok := AutoSelectTopping(item); ok {
		t.Error("多个 autoSelect 定义时规则不应生效")
	}

	if _, ok := AutoSelectTopping(seblak()); ok {
		t.Error("没有 autoSelect 定义时规则不应生效")
	}
}

func TestCartTotal(t *testing.T) {
	items := []models.CartLineItem{
		{TotalPrice: 35000},
		{TotalPrice: 12000},
	}
	if got := CartTotal(items); got != 47000 {
		t.Errorf("整车总价 = %v, 期望 47000", got)
	}
	if got := CartTotal(nil); got != 0 {
		t.Errorf("空车总价 = %v, 期望 0", got)
	}
}
