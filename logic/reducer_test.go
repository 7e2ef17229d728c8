package logic

import (
	"math"
	"testing"

	"warung-backend/models"
)

func dispatch(state models.CartState, actions ...CartAction) models.CartState {
	for _, a := range actions {
		state = Reduce(state, a)
	}
	return state
}

func assertTotalConsistent(t *testing.T, state models.CartState) {
	t.Helper()
	if state.Total != CartTotal(state.Items) {
		t.Errorf("总价与逐行重算不一致: %v vs %v", state.Total, CartTotal(state.Items))
	}
}

func TestAddItemNewLine(t *testing.T) {
	state := Reduce(models.EmptyCart(), AddItem{
		MenuItem: seblak(),
		Toppings: []models.Topping{{ID: "sosis", Name: "Sosis", Price: 5000, Quantity: 1}},
		Quantity: 2,
	})

	if len(state.Items) != 1 {
		t.Fatalf("期望 1 行, 得到 %d", len(state.Items))
	}
	line := state.Items[0]
	if line.Quantity != 2 {
		t.Errorf("行数量 = %d, 期望 2", line.Quantity)
	}
	// 15000×2 + 5000 = 35000
	if line.TotalPrice != 35000 {
		t.Errorf("行总价 = %v, 期望 35000", line.TotalPrice)
	}
	if state.Total != 35000 {
		t.Errorf("总价 = %v, 期望 35000", state.Total)
	}
	if line.ID == "" || line.ID == "seblak" {
		t.Errorf("行 ID 应独立于菜单 ID, 得到 %q", line.ID)
	}
	assertTotalConsistent(t, state)
}

func TestAddItemMergesSameToppingSet(t *testing.T) {
	sosis := models.Topping{ID: "sosis", Name: "Sosis", Price: 5000, Quantity: 1}
	state := dispatch(models.EmptyCart(),
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{sosis}, Quantity: 2},
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{sosis}, Quantity: 3},
	)

	if len(state.Items) != 1 {
		t.Fatalf("同菜品同配料组合应合并为 1 行, 得到 %d 行", len(state.Items))
	}
	line := state.Items[0]
	if line.Quantity != 5 {
		t.Errorf("合并后数量 = %d, 期望 5", line.Quantity)
	}
	if len(line.SelectedToppings) != 1 || line.SelectedToppings[0].Quantity != 2 {
		t.Errorf("配料数量应相加: %+v", line.SelectedToppings)
	}
	// 15000×5 + 5000×2 = 85000
	if state.Total != 85000 {
		t.Errorf("总价 = %v, 期望 85000", state.Total)
	}
	assertTotalConsistent(t, state)
}

func TestAddItemToppingSetOrderIndependent(t *testing.T) {
	a := models.Topping{ID: "sosis", Price: 5000, Quantity: 1}
	b := models.Topping{ID: "bakso", Price: 6000, Quantity: 1}

	state := dispatch(models.EmptyCart(),
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{a, b}, Quantity: 1},
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{b, a}, Quantity: 1},
	)
	if len(state.Items) != 1 {
		t.Errorf("配料集合比较应无序, 期望合并为 1 行, 得到 %d 行", len(state.Items))
	}
}

func TestAddItemDifferentToppingSetStaysSeparate(t *testing.T) {
	state := dispatch(models.EmptyCart(),
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{{ID: "sosis", Price: 5000, Quantity: 1}}, Quantity: 1},
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{{ID: "bakso", Price: 6000, Quantity: 1}}, Quantity: 1},
		AddItem{MenuItem: seblak(), Quantity: 1},
	)
	if len(state.Items) != 3 {
		t.Errorf("不同配料组合不合并, 期望 3 行, 得到 %d", len(state.Items))
	}
	assertTotalConsistent(t, state)
}

func TestAddItemStockRejection(t *testing.T) {
	item := seblak() // 库存 10
	state := dispatch(models.EmptyCart(),
		AddItem{MenuItem: item, Quantity: 7},
	)
	before := state

	// 跨行合计 7+4 > 10，动作静默丢弃
	state = Reduce(state, AddItem{MenuItem: item, Toppings: []models.Topping{{ID: "sosis", Price: 5000}}, Quantity: 4})
	if len(state.Items) != len(before.Items) || state.Total != before.Total {
		t.Errorf("超库存的加购应静默丢弃, 状态不变: %+v", state)
	}

	// 刚好用完剩余库存则放行
	state = Reduce(state, AddItem{MenuItem: item, Toppings: []models.Topping{{ID: "sosis", Price: 5000}}, Quantity: 3})
	if len(state.Items) != 2 {
		t.Errorf("剩余库存内的加购应成功, 得到 %d 行", len(state.Items))
	}
}

func TestAddItemUnlimitedStockAlwaysAllows(t *testing.T) {
	item := seblak()
	item.ID = "es-teh"
	item.Stock = models.UnlimitedStock()
	state := Reduce(models.EmptyCart(), AddItem{MenuItem: item, Quantity: 999})
	if len(state.Items) != 1 || state.Items[0].Quantity != 999 {
		t.Errorf("无限库存应放行任意数量: %+v", state.Items)
	}
}

func TestAddItemDefaultQuantity(t *testing.T) {
	state := Reduce(models.EmptyCart(), AddItem{MenuItem: seblak()})
	if len(state.Items) != 1 || state.Items[0].Quantity != 1 {
		t.Errorf("数量缺省按 1: %+v", state.Items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	state := Reduce(models.EmptyCart(), AddItem{
		MenuItem: seblak(),
		Toppings: []models.Topping{{ID: "sosis", Price: 5000, Quantity: 1}},
		Quantity: 2,
	})
	lineID := state.Items[0].ID

	state = Reduce(state, UpdateQuantity{LineID: lineID, Quantity: 4})
	if state.Items[0].Quantity != 4 {
		t.Errorf("数量 = %d, 期望 4", state.Items[0].Quantity)
	}
	// 15000×4 + 5000 = 65000
	if state.Total != 65000 {
		t.Errorf("总价 = %v, 期望 65000", state.Total)
	}
	assertTotalConsistent(t, state)
}

func TestUpdateQuantityGateExcludesOwnLine(t *testing.T) {
	item := seblak() // 库存 10
	state := dispatch(models.EmptyCart(),
		AddItem{MenuItem: item, Quantity: 6},
		AddItem{MenuItem: item, Toppings: []models.Topping{{ID: "sosis", Price: 5000}}, Quantity: 3},
	)
	first := state.Items[0].ID

	// 本行 6 -> 7：其他行占 3，7+3=10 刚好不超
	state = Reduce(state, UpdateQuantity{LineID: first, Quantity: 7})
	if state.Items[0].Quantity != 7 {
		t.Errorf("排除本行后的校验应放行 7, 得到 %d", state.Items[0].Quantity)
	}

	// 7 -> 8：8+3 > 10，丢弃
	state = Reduce(state, UpdateQuantity{LineID: first, Quantity: 8})
	if state.Items[0].Quantity != 7 {
		t.Errorf("超库存的改量应静默丢弃, 得到 %d", state.Items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	state := Reduce(models.EmptyCart(), AddItem{MenuItem: seblak(), Quantity: 2})
	lineID := state.Items[0].ID

	state = Reduce(state, UpdateQuantity{LineID: lineID, Quantity: 0})
	if len(state.Items) != 0 || state.Total != 0 {
		t.Errorf("数量降到 0 应删行: %+v", state)
	}
}

func TestUpdateQuantityRetracksAutoSelect(t *testing.T) {
	item := mieAyam()
	state := Reduce(models.EmptyCart(), AddItem{
		MenuItem: item,
		Toppings: []models.Topping{{ID: "pangsit", Price: 3000, Quantity: 1}},
		Quantity: 1,
	})
	line := state.Items[0]
	// autoSelect 配料没选也会补选
	mie, ok := findSelection(line.SelectedToppings, "mie")
	if !ok || mie.Quantity != 1 {
		t.Fatalf("autoSelect 配料应自动补选且数量跟随行数量: %+v", line.SelectedToppings)
	}

	state = Reduce(state, UpdateQuantity{LineID: line.ID, Quantity: 3})
	mie, _ = findSelection(state.Items[0].SelectedToppings, "mie")
	if mie.Quantity != 3 {
		t.Errorf("改量后 autoSelect 配料数量应同步为 3, 得到 %d", mie.Quantity)
	}
	// 12000×3 + 3000 = 39000
	if state.Total != 39000 {
		t.Errorf("总价 = %v, 期望 39000", state.Total)
	}
}

func TestRemoveItem(t *testing.T) {
	state := dispatch(models.EmptyCart(),
		AddItem{MenuItem: seblak(), Quantity: 1},
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{{ID: "sosis", Price: 5000}}, Quantity: 1},
	)
	first := state.Items[0].ID

	state = Reduce(state, RemoveItem{LineID: first})
	if len(state.Items) != 1 {
		t.Fatalf("删行后期望剩 1 行, 得到 %d", len(state.Items))
	}
	if state.Items[0].ID == first {
		t.Error("删掉的行还在")
	}
	assertTotalConsistent(t, state)

	// 删不存在的行：状态不变
	before := state
	state = Reduce(state, RemoveItem{LineID: "no-such-line"})
	if len(state.Items) != len(before.Items) || state.Total != before.Total {
		t.Error("删不存在的行应原样返回")
	}
}

func TestRemoveThenReAddReproducesTotalNotID(t *testing.T) {
	add := AddItem{MenuItem: seblak(), Toppings: []models.Topping{{ID: "sosis", Price: 5000, Quantity: 1}}, Quantity: 2}
	state := Reduce(models.EmptyCart(), add)
	firstID := state.Items[0].ID
	firstTotal := state.Total

	state = Reduce(state, RemoveItem{LineID: firstID})
	state = Reduce(state, add)
	if state.Total != firstTotal {
		t.Errorf("删后重加应复现总价: %v vs %v", state.Total, firstTotal)
	}
	if state.Items[0].ID == firstID {
		t.Error("重新加购应生成新的行 ID")
	}
}

func TestEditItemReplacesWithoutMerge(t *testing.T) {
	sosis := models.Topping{ID: "sosis", Price: 5000, Quantity: 1}
	bakso := models.Topping{ID: "bakso", Price: 6000, Quantity: 1}
	state := dispatch(models.EmptyCart(),
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{sosis}, Quantity: 1},
		AddItem{MenuItem: seblak(), Toppings: []models.Topping{bakso}, Quantity: 1},
	)
	second := state.Items[1].ID

	// 把第二行改成和第一行一模一样的配料组合：整行替换，不合并
	state = Reduce(state, EditItem{
		LineID:   second,
		MenuItem: seblak(),
		Toppings: []models.Topping{sosis},
		Quantity: 2,
	})
	if len(state.Items) != 2 {
		t.Errorf("编辑不触发合并, 期望 2 行, 得到 %d", len(state.Items))
	}
	if state.Items[1].Quantity != 2 {
		t.Errorf("编辑后数量 = %d, 期望 2", state.Items[1].Quantity)
	}
	// 第一行 20000 + 第二行 15000×2+5000=35000
	if state.Total != 55000 {
		t.Errorf("总价 = %v, 期望 55000", state.Total)
	}
	assertTotalConsistent(t, state)
}

func TestUpdateNotes(t *testing.T) {
	state := Reduce(models.EmptyCart(), AddItem{MenuItem: seblak(), Quantity: 1})
	lineID := state.Items[0].ID

	state = Reduce(state, UpdateNotes{LineID: lineID, Notes: "pedas level 5"})
	if state.Items[0].Notes != "pedas level 5" {
		t.Errorf("备注 = %q", state.Items[0].Notes)
	}
	if state.Total != 15000 {
		t.Errorf("备注不影响总价: %v", state.Total)
	}

	state = Reduce(state, UpdateNotes{LineID: lineID, Notes: ""})
	if state.Items[0].Notes != "" {
		t.Error("备注应可清空")
	}
}

func TestClearCart(t *testing.T) {
	state := dispatch(models.EmptyCart(),
		AddItem{MenuItem: seblak(), Quantity: 2},
	)
	state = Reduce(state, ClearCart{})
	if len(state.Items) != 0 || state.Total != 0 {
		t.Errorf("清空后应为空车: %+v", state)
	}
	if state.Items == nil {
		t.Error("空车的 items 也应是切片而非 nil")
	}
}

func TestLoadCartFallsBackOnMalformedState(t *testing.T) {
	cases := []models.CartState{
		{Items: nil, Total: 0},
		{Items: []models.CartLineItem{}, Total: math.NaN()},
		{Items: []models.CartLineItem{}, Total: math.Inf(1)},
	}
	for i, loaded := range cases {
		state := Reduce(models.EmptyCart(), LoadCart{State: loaded})
		if state.Items == nil || len(state.Items) != 0 || state.Total != 0 {
			t.Errorf("用例 %d: 畸形快照应退回空车, 得到 %+v", i, state)
		}
	}
}

func TestLoadCartAcceptsValidState(t *testing.T) {
	loaded := models.CartState{
		Items: []models.CartLineItem{{ID: "seblak-x", MenuItem: seblak(), Quantity: 1, TotalPrice: 15000}},
		Total: 15000,
	}
	state := Reduce(models.EmptyCart(), LoadCart{State: loaded})
	if len(state.Items) != 1 || state.Total != 15000 {
		t.Errorf("合法快照应原样恢复: %+v", state)
	}
}

func findSelection(tops []models.Topping, id string) (models.Topping, bool) {
	for _, t := range tops {
		if t.ID == id {
			return t, true
		}
	}
	return models.Topping{}, false
}
