package handlers

import "github.com/gin-gonic/gin"

// 会话标识：前端生成一个 uuid 放在 X-Session-ID 头里带过来
// 购物车、收藏夹都按它隔离（对应一个浏览器会话的 localStorage）
const sessionHeader = "X-Session-ID"

func sessionID(c *gin.Context) string {
	return c.GetHeader(sessionHeader)
}

// requireSession 没带会话头直接 400
func requireSession(c *gin.Context) (string, bool) {
	sid := sessionID(c)
	if sid == "" {
		c.JSON(400, gin.H{"error": "缺少 " + sessionHeader + " 请求头"})
		return "", false
	}
	return sid, true
}
