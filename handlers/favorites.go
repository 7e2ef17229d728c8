package handlers

import (
	"net/http"

	"warung-backend/repositories"
	"warung-backend/services"

	"github.com/gin-gonic/gin"
)

type FavoritesHandler struct {
	Favorites *services.FavoritesService
	Menu      repositories.MenuRepository
}

func NewFavoritesHandler(favorites *services.FavoritesService, menu repositories.MenuRepository) *FavoritesHandler {
	return &FavoritesHandler{Favorites: favorites, Menu: menu}
}

// List 当前会话的收藏夹
func (h *FavoritesHandler) List(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.Favorites.List(sid)})
}

// Toggle 在不在收藏夹决定加还是删，重复加是幂等的
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}

	var req struct {
		MenuItemID string `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	item, err := h.Menu.FindByID(req.MenuItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "菜品不存在"})
		return
	}

	favorited := h.Favorites.Toggle(sid, *item)
	c.JSON(http.StatusOK, gin.H{
		"favorited": favorited,
		"items":     h.Favorites.List(sid),
	})
}

// Remove 按菜品 ID 移除
func (h *FavoritesHandler) Remove(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	h.Favorites.Remove(sid, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"items": h.Favorites.List(sid)})
}

// Clear 清空收藏夹
func (h *FavoritesHandler) Clear(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	h.Favorites.Clear(sid)
	c.JSON(http.StatusOK, gin.H{"items": h.Favorites.List(sid)})
}
