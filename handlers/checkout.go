package handlers

import (
	"net/http"

	"warung-backend/config"
	"warung-backend/models"
	"warung-backend/services"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	Carts *services.CartService
	Shop  *services.ShopService
	cfg   config.ShopConfig
}

func NewCheckoutHandler(carts *services.CartService, shop *services.ShopService, cfg config.ShopConfig) *CheckoutHandler {
	return &CheckoutHandler{Carts: carts, Shop: shop, cfg: cfg}
}

// Checkout 结账：把最终购物车排成订单文案，给出 WhatsApp 深链
// 营业状态不允许下单时直接 403，不碰购物车
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	shopState := h.Shop.State()
	if !shopState.CanOrder {
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "店铺打烊中，暂不接单",
			"notice": shopState.NoticeWhenClosed,
		})
		return
	}

	cart := h.Carts.State(sid)
	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "购物车是空的"})
		return
	}

	message := services.BuildOrderMessage(cart, req.CustomerName)
	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"whatsapp_url": services.WhatsAppURL(h.cfg.WhatsApp, message),
		"total":        cart.Total,
	})
}
