package handlers

import (
	"math"
	"net/http"
	"strconv"

	"warung-backend/models"
	"warung-backend/repositories"
	"warung-backend/services"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	Repo  repositories.MenuRepository
	Carts *services.CartService
}

// NewMenuHandler 构造函数，强制注入 Repository
func NewMenuHandler(repo repositories.MenuRepository, carts *services.CartService) *MenuHandler {
	return &MenuHandler{Repo: repo, Carts: carts}
}

// GetMenu 获取菜单，支持 ?category=makanan|minuman
func (h *MenuHandler) GetMenu(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusOK, h.Repo.All())
		return
	}
	cat := models.Category(category)
	if !cat.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分类参数非法"})
		return
	}
	c.JSON(http.StatusOK, h.Repo.FindByCategory(cat))
}

// GetBestSellers 招牌菜
func (h *MenuHandler) GetBestSellers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repo.BestSellers())
}

// GetCheapest 低价菜，?limit 默认 6
func (h *MenuHandler) GetCheapest(c *gin.Context) {
	limit := 6
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit 参数非法"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, h.Repo.Cheapest(limit))
}

// 配料的展示视图：定义 + 剩余库存（无限量时 remaining 为 null）
type toppingView struct {
	models.Topping
	Remaining *float64 `json:"remaining"`
}

// 深链编辑参数解析结果（edit=1&itemId=&quantity=&topping_<id>=<qty>）
type editPrefill struct {
	LineID   string                    `json:"line_id,omitempty"`
	Quantity int                       `json:"quantity"`
	Toppings []models.ToppingSelection `json:"toppings"`
}

// GetMenuItem 菜品详情
// 普通模式：剩余库存 = 目录上限 - 购物车同菜品占用
// 编辑模式（edit=1）：菜品剩余量不算被编辑的那一行；配料按目录全量算（线上老行为，先保持）
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	item, err := h.Repo.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "菜品不存在"})
		return
	}

	sid := sessionID(c)
	isEdit := c.Query("edit") == "1"

	resp := gin.H{"item": item}

	excludeLine := ""
	var prefill *editPrefill
	if isEdit {
		prefill = h.parseEditParams(c, *item, sid)
		excludeLine = prefill.LineID
	}

	remaining := item.Stock.Normalized()
	if sid != "" {
		remaining = h.Carts.RemainingForItem(sid, *item, excludeLine)
	}
	resp["remaining_stock"] = clampForDisplay(remaining)

	if len(item.Toppings) > 0 {
		views := make([]toppingView, 0, len(item.Toppings))
		for _, t := range item.Toppings {
			rem := t.Stock.Normalized()
			if sid != "" {
				rem = h.Carts.ToppingRemaining(sid, *item, t, isEdit)
			}
			views = append(views, toppingView{Topping: t, Remaining: clampForDisplay(rem)})
		}
		resp["toppings"] = views
	}
	if prefill != nil {
		resp["edit"] = prefill
	}

	c.JSON(http.StatusOK, resp)
}

// parseEditParams 优先用购物车里的行回填；行找不到就按 URL 参数回填
func (h *MenuHandler) parseEditParams(c *gin.Context, item models.MenuItem, sid string) *editPrefill {
	lineID := c.Query("itemId")
	if sid != "" && lineID != "" {
		if line, ok := h.Carts.FindLine(sid, lineID); ok {
			sels := make([]models.ToppingSelection, 0, len(line.SelectedToppings))
			for _, t := range line.SelectedToppings {
				qty := t.Quantity
				if qty <= 0 {
					qty = 1
				}
				sels = append(sels, models.ToppingSelection{ID: t.ID, Quantity: qty})
			}
			return &editPrefill{LineID: lineID, Quantity: line.Quantity, Toppings: sels}
		}
	}

	qty := 1
	if n, err := strconv.Atoi(c.Query("quantity")); err == nil && n > 1 {
		qty = n
	}
	sels := []models.ToppingSelection{}
	for _, t := range item.Toppings {
		raw := c.Query("topping_" + t.ID)
		if raw == "" {
			continue
		}
		tq, err := strconv.Atoi(raw)
		if err != nil || tq < 1 {
			tq = 1
		}
		sels = append(sels, models.ToppingSelection{ID: t.ID, Quantity: tq})
	}
	return &editPrefill{LineID: lineID, Quantity: qty, Toppings: sels}
}

// clampForDisplay 展示用：负数截到 0，无限量返回 null
func clampForDisplay(remaining float64) *float64 {
	if math.IsInf(remaining, 1) {
		return nil
	}
	v := math.Max(0, remaining)
	return &v
}
