package repositories

import (
	"fmt"
	"sort"

	"warung-backend/models"

	"github.com/spf13/viper"
)

// MenuRepository 菜单目录仓库：只读静态数据源，核心逻辑绝不改写它
type MenuRepository interface {
	All() []models.MenuItem
	FindByID(id string) (*models.MenuItem, error)
	FindByCategory(category models.Category) []models.MenuItem
	BestSellers() []models.MenuItem
	Cheapest(n int) []models.MenuItem
}

// 目录文件里的原始形状，库存字段允许数字或无限哨兵（"-"/"Banyak"/"∞"）
// 哨兵只在这一层转换一次，进内存后全是 models.Stock
type toppingDoc struct {
	ID         string  `mapstructure:"id"`
	Name       string  `mapstructure:"name"`
	Price      float64 `mapstructure:"price"`
	Stock      any     `mapstructure:"stock"`
	AutoSelect bool    `mapstructure:"auto_select"`
	Main       bool    `mapstructure:"main"`
}

type menuItemDoc struct {
	ID                  string       `mapstructure:"id"`
	Name                string       `mapstructure:"name"`
	Price               float64      `mapstructure:"price"`
	Category            string       `mapstructure:"category"`
	Image               string       `mapstructure:"image"`
	Description         string       `mapstructure:"description"`
	Available           bool         `mapstructure:"available"`
	BestSeller          bool         `mapstructure:"best_seller"`
	Stock               any          `mapstructure:"stock"`
	Toppings            []toppingDoc `mapstructure:"toppings"`
	MinToppingsRequired int          `mapstructure:"min_toppings_required"`
}

type memMenuRepository struct {
	items []models.MenuItem // 加载后只读，无需加锁
	byID  map[string]int
}

// NewMenuRepositoryFromFile 用 viper 读目录文件，加载时做一次性校验与归一化
func NewMenuRepositoryFromFile(path string) (MenuRepository, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取菜单目录失败: %v", err)
	}

	var docs struct {
		Items []menuItemDoc `mapstructure:"items"`
	}
	if err := v.Unmarshal(&docs); err != nil {
		return nil, fmt.Errorf("解析菜单目录失败: %v", err)
	}

	repo := &memMenuRepository{byID: make(map[string]int, len(docs.Items))}
	for _, doc := range docs.Items {
		item, err := buildMenuItem(doc)
		if err != nil {
			return nil, err
		}
		if _, dup := repo.byID[item.ID]; dup {
			return nil, fmt.Errorf("菜单 ID 重复: %s", item.ID)
		}
		repo.byID[item.ID] = len(repo.items)
		repo.items = append(repo.items, item)
	}
	return repo, nil
}

func buildMenuItem(doc menuItemDoc) (models.MenuItem, error) {
	stock, err := models.ParseStock(doc.Stock)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("菜品 %s 库存非法: %v", doc.ID, err)
	}
	category := models.Category(doc.Category)
	if !category.Valid() {
		return models.MenuItem{}, fmt.Errorf("菜品 %s 分类非法: %s", doc.ID, doc.Category)
	}
	if doc.Price < 0 {
		return models.MenuItem{}, fmt.Errorf("菜品 %s 价格不能为负", doc.ID)
	}

	item := models.MenuItem{
		ID:                  doc.ID,
		Name:                doc.Name,
		Price:               doc.Price,
		Category:            category,
		Image:               doc.Image,
		Description:         doc.Description,
		Available:           doc.Available,
		BestSeller:          doc.BestSeller,
		Stock:               stock,
		MinToppingsRequired: doc.MinToppingsRequired,
	}
	for _, td := range doc.Toppings {
		ts, err := models.ParseStock(td.Stock)
		if err != nil {
			return models.MenuItem{}, fmt.Errorf("配料 %s/%s 库存非法: %v", doc.ID, td.ID, err)
		}
		if td.Price < 0 {
			return models.MenuItem{}, fmt.Errorf("配料 %s/%s 价格不能为负", doc.ID, td.ID)
		}
		item.Toppings = append(item.Toppings, models.Topping{
			ID:         td.ID,
			Name:       td.Name,
			Price:      td.Price,
			Stock:      ts,
			AutoSelect: td.AutoSelect,
			Main:       td.Main,
		})
	}
	return item, nil
}

func (r *memMenuRepository) All() []models.MenuItem {
	out := make([]models.MenuItem, len(r.items))
	copy(out, r.items)
	return out
}

func (r *memMenuRepository) FindByID(id string) (*models.MenuItem, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("菜单里没有该菜品: %s", id)
	}
	item := r.items[i]
	return &item, nil
}

func (r *memMenuRepository) FindByCategory(category models.Category) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range r.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// BestSellers 招牌菜：只取在售的
func (r *memMenuRepository) BestSellers() []models.MenuItem {
	var out []models.MenuItem
	for _, item := range r.items {
		if item.BestSeller && item.Available {
			out = append(out, item)
		}
	}
	return out
}

// Cheapest 最便宜的 n 个在售菜品
func (r *memMenuRepository) Cheapest(n int) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range r.items {
		if item.Available {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
