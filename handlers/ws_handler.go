package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"warung-backend/models"
	"warung-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs 升级连接并接入 Hub；连上先推一次当前营业状态，之后跟着状态变化推
func ServeWs(hub *services.Hub, shop *services.ShopService, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Upgrade Error:", err)
		return
	}

	client := &services.Client{Hub: hub, Conn: conn, Send: make(chan []byte, 256)}
	client.Hub.Register <- client

	// 初始状态直接写进该客户端自己的队列，不走广播
	initial, _ := json.Marshal(models.WSMessage{
		Type: models.WSTypeShopStatus,
		Data: shop.State(),
	})
	client.Send <- initial

	// 启动读写协程
	go client.WritePump()
	go client.ReadPump()
}
