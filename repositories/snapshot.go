package repositories

import (
	"encoding/json"
	"fmt"

	"warung-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository 键值快照仓库：对应前端 localStorage
// 写入是状态转移之后的旁路动作（write-after），失败不回滚状态
type SnapshotRepository interface {
	Save(key string, value any) error
	// Load 反序列化到 out；键不存在返回 (false, nil)
	Load(key string, out any) (bool, error)
	Delete(key string) error
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("快照序列化失败 [%s]: %v", key, err)
	}
	snap := models.Snapshot{Key: key, Value: data}
	// 存在则更新，不存在则插入
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&snap).Error
}

func (r *snapshotRepository) Load(key string, out any) (bool, error) {
	var snap models.Snapshot
	if err := r.db.First(&snap, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(snap.Value, out); err != nil {
		// 坏快照当不存在处理，由上层落到安全默认值
		return false, fmt.Errorf("快照解析失败 [%s]: %v", key, err)
	}
	return true, nil
}

func (r *snapshotRepository) Delete(key string) error {
	return r.db.Delete(&models.Snapshot{}, "key = ?", key).Error
}
