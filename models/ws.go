package models

// WSMessage 推送给前端的统一包装结构
type WSMessage struct {
	Type string `json:"type"` // 例如 "SHOP_STATUS"
	Data any    `json:"data"`
}

const (
	WSTypeShopStatus = "SHOP_STATUS"
)
