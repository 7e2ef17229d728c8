package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"warung-backend/config"
	"warung-backend/models"
	"warung-backend/repositories"
)

// ShopService 营业状态机
// 状态不是枚举迁移，而是纯函数派生：每次输入变更和每分钟 TICK 都从
// (全局停业闸, 人工开关, 排班) 重新算出 isOpenEffective / canOrder。
// 排班用固定参考时区评估，跟访问者本地时区无关
type ShopService struct {
	cfg       config.ShopConfig
	loc       *time.Location
	snapshots repositories.SnapshotRepository
	hub       *Hub
	now       func() time.Time // 测试时注入假钟

	mu      sync.RWMutex
	state   models.ShopState
	running int32
}

func NewShopService(cfg config.ShopConfig, snapshots repositories.SnapshotRepository, hub *Hub) (*ShopService, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &ShopService{
		cfg:       cfg,
		loc:       loc,
		snapshots: snapshots,
		hub:       hub,
		now:       time.Now,
		state: models.ShopState{
			NoticeWhenClosed: cfg.ClosedNotice,
		},
	}, nil
}

/* ---------- 纯派生逻辑 ---------- */

// scheduleOpen 排班判定：周一到周六，小时落在 [open, close)
func scheduleOpen(t time.Time, openHour, closeHour int) bool {
	wd := t.Weekday()
	if wd == time.Sunday {
		return false
	}
	h := t.Hour()
	return h >= openHour && h < closeHour
}

// deriveEffective 合成最终开/关
// 优先级：全局停业闸 > 人工 closed > 人工 open > 排班
// canOrder 目前与 isOpenEffective 同值，独立返回以备将来策略分叉
func deriveEffective(globalForceClosed bool, st models.ShopState, schedOpen bool) (isOpen bool, canOrder bool) {
	if globalForceClosed || st.ForceClosed {
		return false, false
	}
	switch st.Override {
	case models.OverrideOpen:
		return true, true
	case models.OverrideClosed:
		return false, false
	default:
		return schedOpen, schedOpen
	}
}

/* ---------- 状态变更 ---------- */

// apply 串行应用一个变更并重新派生，返回新状态
func (s *ShopService) apply(mutate func(*models.ShopState)) models.ShopState {
	s.mu.Lock()
	prevOpen := s.state.IsOpenEffective
	mutate(&s.state)

	sched := scheduleOpen(s.now().In(s.loc), s.cfg.OpenHour, s.cfg.CloseHour)
	s.state.IsOpenBySchedule = sched
	s.state.IsOpenEffective, s.state.CanOrder = deriveEffective(s.cfg.ForceClosed, s.state, sched)
	s.state.UpdatedAt = s.now().UnixMilli()
	next := s.state
	s.mu.Unlock()

	// 落盘是旁路动作，失败只记日志
	if err := s.snapshots.Save(models.SnapshotKeyShop, next); err != nil {
		log.Printf("⚠️ 营业状态快照保存失败: %v", err)
	}
	if s.hub != nil && prevOpen != next.IsOpenEffective {
		s.hub.BroadcastShopStatus(next)
	}
	return next
}

// Tick 重算一遍（定时器和加载后都走这里）
func (s *ShopService) Tick() models.ShopState {
	return s.apply(func(*models.ShopState) {})
}

func (s *ShopService) SetOverride(mode models.OverrideMode) models.ShopState {
	st := s.apply(func(st *models.ShopState) { st.Override = mode })
	if s.hub != nil {
		s.hub.BroadcastShopStatus(st)
	}
	return st
}

func (s *ShopService) SetForceClosed(force bool) models.ShopState {
	st := s.apply(func(st *models.ShopState) { st.ForceClosed = force })
	if s.hub != nil {
		s.hub.BroadcastShopStatus(st)
	}
	return st
}

func (s *ShopService) SetNotice(notice string) models.ShopState {
	return s.apply(func(st *models.ShopState) { st.NoticeWhenClosed = notice })
}

func (s *ShopService) State() models.ShopState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

/* ---------- 调度 ---------- */

// Start 启动分钟级定时重算：先立刻算一次，对齐到下个整分钟再算，之后每 60 秒一次
// ctx 取消即停，不泄漏定时器
func (s *ShopService) Start(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return
	}

	s.hydrate()
	s.Tick()
	log.Printf("🚀 营业状态机启动 [时区:%s 营业:%d-%d点]", s.cfg.Timezone, s.cfg.OpenHour, s.cfg.CloseHour)

	go func() {
		defer atomic.StoreInt32(&s.running, 0)

		first := time.NewTimer(s.untilNextMinute())
		defer first.Stop()
		select {
		case <-ctx.Done():
			log.Println("🔔 营业状态机收到退出信号")
			return
		case <-first.C:
		}
		s.Tick()

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("🔔 营业状态机收到退出信号")
				return
			case <-ticker.C:
				s.Tick()
			}
		}
	}()
}

func (s *ShopService) untilNextMinute() time.Duration {
	now := s.now()
	return time.Minute - time.Duration(now.Second())*time.Second - time.Duration(now.Nanosecond())
}

// hydrate 从快照恢复输入字段；派生字段一律不信，交给随后的 Tick 重算
func (s *ShopService) hydrate() {
	var loaded models.ShopState
	ok, err := s.snapshots.Load(models.SnapshotKeyShop, &loaded)
	if err != nil {
		log.Printf("⚠️ 营业状态快照损坏，按默认值启动: %v", err)
		return
	}
	if !ok {
		return
	}
	if !loaded.Override.Valid() {
		loaded.Override = models.OverrideNone
	}
	s.mu.Lock()
	s.state.Override = loaded.Override
	s.state.ForceClosed = loaded.ForceClosed
	if loaded.NoticeWhenClosed != "" {
		s.state.NoticeWhenClosed = loaded.NoticeWhenClosed
	}
	s.mu.Unlock()
}
