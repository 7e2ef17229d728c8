package models

import "time"

// Snapshot 键值快照表：key -> JSON 文档
// 对应前端 localStorage 的角色，只是落地方便，不承诺持久性
// 约定键：cart:<session> / favorites:<session> / shop
type Snapshot struct {
	Key       string    `gorm:"primaryKey;type:varchar(128)" json:"key"`
	Value     []byte    `gorm:"type:blob" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	SnapshotKeyShop = "shop"
)

func CartSnapshotKey(sessionID string) string {
	return "cart:" + sessionID
}

func FavoritesSnapshotKey(sessionID string) string {
	return "favorites:" + sessionID
}
