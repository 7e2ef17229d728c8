package handlers

import (
	"math"
	"net/http"

	"warung-backend/logic"
	"warung-backend/models"
	"warung-backend/repositories"
	"warung-backend/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts *services.CartService
	Menu  repositories.MenuRepository
}

func NewCartHandler(carts *services.CartService, menu repositories.MenuRepository) *CartHandler {
	return &CartHandler{Carts: carts, Menu: menu}
}

// GetCart 获取当前购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Carts.State(sid))
}

// AddItem 加入购物车
// 引擎端对超库存是静默丢弃，所以 handler 负责提前探测并把原因告诉前端
func (h *CartHandler) AddItem(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item, err := h.Menu.FindByID(req.MenuItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "菜品不存在"})
		return
	}
	if !item.Available {
		c.JSON(http.StatusConflict, gin.H{"error": "菜品暂不可点"})
		return
	}

	tops, err := resolveToppings(*item, req.Toppings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(tops) < item.MinToppingsRequired {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "配料数量不满足最低要求",
			"required": item.MinToppingsRequired,
		})
		return
	}

	remaining := h.Carts.RemainingForItem(sid, *item, "")
	if float64(quantity) > remaining {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "库存不足",
			"remaining": math.Max(0, remaining),
		})
		return
	}

	state := h.Carts.Dispatch(sid, logic.AddItem{
		MenuItem: *item,
		Toppings: tops,
		Quantity: quantity,
	})
	c.JSON(http.StatusCreated, state)
}

// UpdateQuantity 改数量，<=0 等价删除
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	lineID := c.Param("id")

	var req models.UpdateQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	line, found := h.Carts.FindLine(sid, lineID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "购物车里没有这一行"})
		return
	}

	if req.Quantity > 0 {
		// 剩余量按"其他行"算，不含自己
		remaining := h.Carts.RemainingForItem(sid, line.MenuItem, lineID)
		if float64(req.Quantity) > remaining {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "库存不足",
				"remaining": math.Max(0, remaining),
			})
			return
		}
	}

	state := h.Carts.Dispatch(sid, logic.UpdateQuantity{LineID: lineID, Quantity: req.Quantity})
	c.JSON(http.StatusOK, state)
}

// UpdateNotes 行备注，不影响价格
func (h *CartHandler) UpdateNotes(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	lineID := c.Param("id")

	var req models.UpdateNotesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if _, found := h.Carts.FindLine(sid, lineID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "购物车里没有这一行"})
		return
	}

	state := h.Carts.Dispatch(sid, logic.UpdateNotes{LineID: lineID, Notes: req.Notes})
	c.JSON(http.StatusOK, state)
}

// EditItem 整行替换（编辑已点单流程），不与其他行合并
// 注意：这里沿用线上行为，按目录【全量】库存校验，不扣其他行占用
// 与 AddItem / UpdateQuantity 的口径不一致，疑似缺陷，暂保持（见 DESIGN.md）
func (h *CartHandler) EditItem(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	lineID := c.Param("id")

	var req models.EditItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if _, found := h.Carts.FindLine(sid, lineID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "购物车里没有这一行"})
		return
	}
	item, err := h.Menu.FindByID(req.MenuItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "菜品不存在"})
		return
	}

	tops, err := resolveToppings(*item, req.Toppings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(tops) < item.MinToppingsRequired {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "配料数量不满足最低要求",
			"required": item.MinToppingsRequired,
		})
		return
	}

	if float64(req.Quantity) > item.Stock.Normalized() {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "库存不足",
			"remaining": item.Stock.RemainingClamped(0),
		})
		return
	}

	state := h.Carts.Dispatch(sid, logic.EditItem{
		LineID:   lineID,
		MenuItem: *item,
		Toppings: tops,
		Quantity: req.Quantity,
	})
	c.JSON(http.StatusOK, state)
}

// RemoveItem 删除一行
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	state := h.Carts.Dispatch(sid, logic.RemoveItem{LineID: c.Param("id")})
	c.JSON(http.StatusOK, state)
}

// ClearCart 清空
func (h *CartHandler) ClearCart(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Carts.Dispatch(sid, logic.ClearCart{}))
}

// resolveToppings 把前端提交的配料选择对到目录定义上，带上选购数量
// 配料 ID 不在菜品定义里视为参数错误
func resolveToppings(item models.MenuItem, sels []models.ToppingSelection) ([]models.Topping, error) {
	tops := make([]models.Topping, 0, len(sels))
	for _, sel := range sels {
		def, ok := item.FindTopping(sel.ID)
		if !ok {
			return nil, &unknownToppingError{itemID: item.ID, toppingID: sel.ID}
		}
		qty := sel.Quantity
		if qty <= 0 {
			qty = 1
		}
		def.Quantity = qty
		tops = append(tops, def)
	}
	return tops, nil
}

type unknownToppingError struct {
	itemID    string
	toppingID string
}

func (e *unknownToppingError) Error() string {
	return "菜品 " + e.itemID + " 没有配料 " + e.toppingID
}
