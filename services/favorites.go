package services

import (
	"log"
	"sync"

	"warung-backend/models"
	"warung-backend/repositories"
)

// FavoritesService 收藏夹：按会话存菜品快照集合，按 ID 去重
// 与库存、价格完全无关，操作全部幂等
type FavoritesService struct {
	snapshots repositories.SnapshotRepository

	mu       sync.Mutex
	sessions map[string]*favoritesSession
}

type favoritesSession struct {
	mu    sync.Mutex
	items []models.MenuItem
}

func NewFavoritesService(snapshots repositories.SnapshotRepository) *FavoritesService {
	return &FavoritesService{
		snapshots: snapshots,
		sessions:  make(map[string]*favoritesSession),
	}
}

func (s *FavoritesService) session(sessionID string) *favoritesSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		return sess
	}

	var loaded []models.MenuItem
	ok, err := s.snapshots.Load(models.FavoritesSnapshotKey(sessionID), &loaded)
	if err != nil {
		log.Printf("⚠️ 收藏夹快照损坏 [%s]，清空处理: %v", sessionID, err)
	}
	items := []models.MenuItem{}
	if ok && err == nil && loaded != nil {
		items = dedupeByID(loaded)
	}

	sess := &favoritesSession{items: items}
	s.sessions[sessionID] = sess
	return sess
}

// dedupeByID 快照里混进重复 ID 时保留先出现的
func dedupeByID(items []models.MenuItem) []models.MenuItem {
	seen := make(map[string]bool, len(items))
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}

func (s *FavoritesService) persist(sessionID string, items []models.MenuItem) {
	if err := s.snapshots.Save(models.FavoritesSnapshotKey(sessionID), items); err != nil {
		log.Printf("⚠️ 收藏夹快照保存失败 [%s]: %v", sessionID, err)
	}
}

func (s *FavoritesService) List(sessionID string) []models.MenuItem {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]models.MenuItem, len(sess.items))
	copy(out, sess.items)
	return out
}

func (s *FavoritesService) IsFavorite(sessionID, id string) bool {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	for _, it := range sess.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Add 已存在时不动（幂等）
func (s *FavoritesService) Add(sessionID string, item models.MenuItem) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	for _, it := range sess.items {
		if it.ID == item.ID {
			sess.mu.Unlock()
			return
		}
	}
	sess.items = append(sess.items, item)
	items := sess.items
	sess.mu.Unlock()
	s.persist(sessionID, items)
}

func (s *FavoritesService) Remove(sessionID, id string) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	next := make([]models.MenuItem, 0, len(sess.items))
	for _, it := range sess.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	sess.items = next
	sess.mu.Unlock()
	s.persist(sessionID, next)
}

// Toggle 在不在集合里决定加还是删，返回操作后是否已收藏
func (s *FavoritesService) Toggle(sessionID string, item models.MenuItem) bool {
	if s.IsFavorite(sessionID, item.ID) {
		s.Remove(sessionID, item.ID)
		return false
	}
	s.Add(sessionID, item)
	return true
}

func (s *FavoritesService) Clear(sessionID string) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	sess.items = []models.MenuItem{}
	sess.mu.Unlock()
	s.persist(sessionID, []models.MenuItem{})
}
