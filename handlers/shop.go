package handlers

import (
	"net/http"

	"warung-backend/config"
	"warung-backend/models"
	"warung-backend/services"
	"warung-backend/utils"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	Shop *services.ShopService
	cfg  config.ShopConfig
}

func NewShopHandler(shop *services.ShopService, cfg config.ShopConfig) *ShopHandler {
	return &ShopHandler{Shop: shop, cfg: cfg}
}

// GetStatus 营业状态 + 联系信息
func (h *ShopHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state": h.Shop.State(),
		"contact": gin.H{
			"name":             h.cfg.Name,
			"whatsapp":         h.cfg.WhatsApp,
			"whatsapp_display": utils.FormatWhatsAppNumber(h.cfg.WhatsApp),
		},
	})
}

// SetOverride 人工开关：open / closed / 空串(跟随排班)，需要店主登录
func (h *ShopHandler) SetOverride(c *gin.Context) {
	var req models.SetOverrideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if !req.Mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode 只能是 open / closed / 空"})
		return
	}
	c.JSON(http.StatusOK, h.Shop.SetOverride(req.Mode))
}

// SetForceClosed 停业总闸（会话级，配置里的全局闸另算且优先）
func (h *ShopHandler) SetForceClosed(c *gin.Context) {
	var req models.SetForceClosedReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	c.JSON(http.StatusOK, h.Shop.SetForceClosed(*req.ForceClosed))
}

// SetNotice 闭店提示语
func (h *ShopHandler) SetNotice(c *gin.Context) {
	var req models.SetNoticeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	c.JSON(http.StatusOK, h.Shop.SetNotice(req.Notice))
}
