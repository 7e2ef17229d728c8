package services

import (
	"encoding/json"
	"log"
	"warung-backend/models"

	"github.com/gorilla/websocket"
)

// Client 是连接与 Hub 之间的桥梁
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte // 每个客户端独立的待发送消息队列
}

// Hub 维护所有活跃客户端并广播营业状态变化
type Hub struct {
	Clients    map[*Client]bool
	broadcast  chan []byte  // 待广播的消息管道
	Register   chan *Client // 注册请求管道
	Unregister chan *Client // 注销请求管道
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Println("📱 新客户端已连接")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Println("👋 客户端已断开")
			}
		case message := <-h.broadcast:
			// 分发给所有客户端，发不动的直接踢掉，不阻塞广播管道
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

func (h *Hub) Broadcast(payload models.WSMessage) {
	message, _ := json.Marshal(payload)
	h.broadcast <- message
}

// BroadcastShopStatus 营业状态推送（TICK 变化、人工开关都走这里）
func (h *Hub) BroadcastShopStatus(state models.ShopState) {
	h.Broadcast(models.WSMessage{
		Type: models.WSTypeShopStatus,
		Data: state,
	})
}

/* ---------- Client 相关方法 ---------- */

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	// 此处主要用于监听心跳或客户端主动关闭信号
	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		c.Conn.Close()
	}()
	for message := range c.Send {
		c.Conn.WriteMessage(websocket.TextMessage, message)
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
