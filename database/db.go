package database

import (
	"fmt"
	"warung-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// InitDB 打开本地 sqlite 文件（扮演 localStorage 的角色，图方便，不承诺持久性）
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %v", err)
	}

	// 自动迁移表结构
	err = db.AutoMigrate(
		&models.Snapshot{},
		&models.Owner{},
	)
	if err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %v", err)
	}
	fmt.Println("✅ 数据库初始化完成，表结构已就绪")
	return db, nil
}
