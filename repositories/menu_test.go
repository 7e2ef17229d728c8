package repositories

import (
	"testing"

	"warung-backend/models"
)

func loadCatalog(t *testing.T) MenuRepository {
	t.Helper()
	repo, err := NewMenuRepositoryFromFile("../data/menu.yaml")
	if err != nil {
		t.Fatalf("加载菜单目录失败: %v", err)
	}
	return repo
}

func TestCatalogLoads(t *testing.T) {
	repo := loadCatalog(t)
	items := repo.All()
	if len(items) != 10 {
		t.Fatalf("目录应有 10 个菜品, 得到 %d", len(items))
	}

	item, err := repo.FindByID("seblak")
	if err != nil {
		t.Fatalf("FindByID(seblak) 报错: %v", err)
	}
	if item.Name != "Seblak" || item.Price != 15000 {
		t.Errorf("seblak 数据不对: %+v", item)
	}
	if item.Stock.Unlimited || item.Stock.Count != 10 {
		t.Errorf("seblak 库存应为有限 10: %+v", item.Stock)
	}
	if len(item.Toppings) != 3 {
		t.Errorf("seblak 应有 3 种配料: %d", len(item.Toppings))
	}

	if _, err := repo.FindByID("rendang"); err == nil {
		t.Error("不存在的菜品应报错")
	}
}

func TestCatalogParsesStockSentinels(t *testing.T) {
	repo := loadCatalog(t)

	esTeh, err := repo.FindByID("es-teh")
	if err != nil {
		t.Fatal(err)
	}
	if !esTeh.Stock.Unlimited {
		t.Errorf("\"-\" 应解析为无限库存: %+v", esTeh.Stock)
	}

	ayam, err := repo.FindByID("ayam-geprek")
	if err != nil {
		t.Fatal(err)
	}
	keju, ok := ayam.FindTopping("keju")
	if !ok || !keju.Stock.Unlimited {
		t.Errorf("\"Banyak\" 应解析为无限库存: %+v", keju.Stock)
	}
}

func TestCatalogAutoSelectDefinition(t *testing.T) {
	repo := loadCatalog(t)
	mieAyam, err := repo.FindByID("mie-ayam")
	if err != nil {
		t.Fatal(err)
	}
	if mieAyam.Price != 0 || mieAyam.MinToppingsRequired != 1 {
		t.Errorf("mie-ayam 定义不对: %+v", mieAyam)
	}
	mie, ok := mieAyam.FindTopping("mie")
	if !ok || !mie.AutoSelect || !mie.Main {
		t.Errorf("mie 配料应带 autoSelect+main 标记: %+v", mie)
	}
}

func TestFindByCategory(t *testing.T) {
	repo := loadCatalog(t)

	for _, item := range repo.FindByCategory(models.CategoryMinuman) {
		if item.Category != models.CategoryMinuman {
			t.Errorf("分类过滤漏了: %+v", item)
		}
	}
	if got := len(repo.FindByCategory(models.CategoryMinuman)); got != 3 {
		t.Errorf("minuman 应有 3 个, 得到 %d", got)
	}
	if got := len(repo.FindByCategory(models.CategoryMakanan)); got != 7 {
		t.Errorf("makanan 应有 7 个, 得到 %d", got)
	}
}

func TestBestSellersOnlyAvailable(t *testing.T) {
	repo := loadCatalog(t)
	for _, item := range repo.BestSellers() {
		if !item.BestSeller || !item.Available {
			t.Errorf("招牌菜列表混入了非招牌或停售菜品: %+v", item)
		}
	}
}

func TestCheapest(t *testing.T) {
	repo := loadCatalog(t)

	got := repo.Cheapest(3)
	if len(got) != 3 {
		t.Fatalf("期望 3 个, 得到 %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Price > got[i].Price {
			t.Errorf("应按价格升序: %v > %v", got[i-1].Price, got[i].Price)
		}
	}
	// mie-ayam 名义价 0，最便宜的头名
	if got[0].ID != "mie-ayam" {
		t.Errorf("最便宜应为 mie-ayam, 得到 %s", got[0].ID)
	}
	// 停售的 mie-sarimi 不应出现
	for _, item := range repo.Cheapest(0) {
		if item.ID == "mie-sarimi" {
			t.Error("停售菜品不应进入最便宜列表")
		}
	}
}

func TestCatalogRejectsBadData(t *testing.T) {
	if _, err := buildMenuItem(menuItemDoc{ID: "x", Category: "snack", Stock: 1}); err == nil {
		t.Error("非法分类应报错")
	}
	if _, err := buildMenuItem(menuItemDoc{ID: "x", Category: "makanan", Stock: "???"}); err == nil {
		t.Error("非法库存应报错")
	}
	if _, err := buildMenuItem(menuItemDoc{ID: "x", Category: "makanan", Stock: 1, Price: -1}); err == nil {
		t.Error("负价格应报错")
	}
}
