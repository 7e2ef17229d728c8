package services

import (
	"log"
	"sync"

	"warung-backend/logic"
	"warung-backend/models"
	"warung-backend/repositories"
)

// CartService 按会话持有购物车状态单元
// 每个会话一把锁：动作完整执行完才轮到下一个，等价于前端单事件循环的保证
// 状态转移之后旁路落快照（write-after），失败不影响转移结果
type CartService struct {
	snapshots repositories.SnapshotRepository

	mu       sync.Mutex
	sessions map[string]*cartSession
}

type cartSession struct {
	mu    sync.Mutex
	state models.CartState
}

func NewCartService(snapshots repositories.SnapshotRepository) *CartService {
	return &CartService{
		snapshots: snapshots,
		sessions:  make(map[string]*cartSession),
	}
}

// session 惰性创建会话单元，首次访问时从快照恢复（坏快照退空车）
func (s *CartService) session(sessionID string) *cartSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		return sess
	}

	var loaded models.CartState
	ok, err := s.snapshots.Load(models.CartSnapshotKey(sessionID), &loaded)
	if err != nil {
		log.Printf("⚠️ 购物车快照损坏 [%s]，退回空车: %v", sessionID, err)
	}
	state := models.EmptyCart()
	if ok && err == nil {
		// 经 reducer 的 LoadCart 做防御校验
		state = logic.Reduce(models.EmptyCart(), logic.LoadCart{State: loaded})
	}

	sess := &cartSession{state: state}
	s.sessions[sessionID] = sess
	return sess
}

// Dispatch 对会话应用一个动作，返回新状态
func (s *CartService) Dispatch(sessionID string, action logic.CartAction) models.CartState {
	sess := s.session(sessionID)
	sess.mu.Lock()
	sess.state = logic.Reduce(sess.state, action)
	next := sess.state
	sess.mu.Unlock()

	if err := s.snapshots.Save(models.CartSnapshotKey(sessionID), next); err != nil {
		log.Printf("⚠️ 购物车快照保存失败 [%s]: %v", sessionID, err)
	}
	return next
}

func (s *CartService) State(sessionID string) models.CartState {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// FindLine 按行 ID 查购物车行
func (s *CartService) FindLine(sessionID, lineID string) (models.CartLineItem, bool) {
	state := s.State(sessionID)
	for _, line := range state.Items {
		if line.ID == lineID {
			return line, true
		}
	}
	return models.CartLineItem{}, false
}

// RemainingForItem 菜品剩余库存（原始值，可为负），可排除某一行（改数量时不算自己）
// 引擎内部还会再校一遍；这里供 handler 提前探测，好给用户一个理由
func (s *CartService) RemainingForItem(sessionID string, item models.MenuItem, excludeLineID string) float64 {
	state := s.State(sessionID)
	committed := 0
	for _, line := range state.Items {
		if line.MenuItem.ID == item.ID && line.ID != excludeLineID {
			committed += line.Quantity
		}
	}
	return item.Stock.Remaining(committed)
}

// ToppingRemaining 配料展示用剩余库存（截到 0）
// editMode 时按目录全量库存算，不扣购物车占用——沿用线上行为（见 DESIGN.md，疑似缺陷但保持原样）
func (s *CartService) ToppingRemaining(sessionID string, item models.MenuItem, topping models.Topping, editMode bool) float64 {
	if editMode {
		return topping.Stock.RemainingClamped(0)
	}
	state := s.State(sessionID)
	used := 0
	for _, line := range state.Items {
		if line.MenuItem.ID != item.ID {
			continue
		}
		for _, t := range line.SelectedToppings {
			if t.ID == topping.ID {
				qty := t.Quantity
				if qty <= 0 {
					qty = 1
				}
				used += qty
			}
		}
	}
	return topping.Stock.RemainingClamped(used)
}
