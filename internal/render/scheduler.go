package render

import (
	"sort"
	"sync"
	"time"

	"github.com/dujiao-next/storefront/internal/logger"

	"go.uber.org/zap"
)

// Scheduler 一次性延迟回调，不可取消
type Scheduler interface {
	After(d time.Duration, fn func())
}

type manualTask struct {
	due time.Duration
	seq int
	fn  func()
}

// ManualScheduler 由调用方推进时间的调度器，回调在 Advance 的调用方中串行执行
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []manualTask
}

// NewManualScheduler 创建手动调度器
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After 登记回调
func (s *ManualScheduler) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending = append(s.pending, manualTask{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance 推进时间并执行到期回调（含执行中新登记且已到期的回调）
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	ran := 0
	for {
		task, ok := s.popDue(target)
		if !ok {
			break
		}
		task.fn()
		ran++
	}
	s.mu.Lock()
	if s.now < target {
		s.now = target
	}
	s.mu.Unlock()
	return ran
}

// Flush 执行全部待处理回调
func (s *ManualScheduler) Flush() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return ran
		}
		latest := s.now
		for _, task := range s.pending {
			if task.due > latest {
				latest = task.due
			}
		}
		step := latest - s.now
		s.mu.Unlock()
		ran += s.Advance(step)
	}
}

// Pending 待执行回调数
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *ManualScheduler) popDue(target time.Duration) (manualTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return manualTask{}, false
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].due != s.pending[j].due {
			return s.pending[i].due < s.pending[j].due
		}
		return s.pending[i].seq < s.pending[j].seq
	})
	next := s.pending[0]
	if next.due > target {
		return manualTask{}, false
	}
	s.pending = s.pending[1:]
	s.now = next.due
	return next, true
}

// SettleScheduler 按插槽合并延迟回调；debounce 关闭时每次触发独立执行
type SettleScheduler struct {
	inner    Scheduler
	debounce bool
	mu       sync.Mutex
	gen      map[string]uint64
}

// NewSettleScheduler 创建合并调度器
func NewSettleScheduler(inner Scheduler, debounce bool) *SettleScheduler {
	return &SettleScheduler{inner: inner, debounce: debounce, gen: make(map[string]uint64)}
}

// Trigger 登记 key 的延迟回调；开启合并时只执行最后一次触发
func (s *SettleScheduler) Trigger(key string, d time.Duration, fn func()) {
	if s == nil || s.inner == nil || fn == nil {
		return
	}
	if !s.debounce {
		s.inner.After(d, fn)
		return
	}
	s.mu.Lock()
	s.gen[key]++
	mine := s.gen[key]
	s.mu.Unlock()
	s.inner.After(d, func() {
		s.mu.Lock()
		latest := s.gen[key] == mine
		s.mu.Unlock()
		if latest {
			fn()
		}
	})
}

// Refresher 重新填充后延迟刷新轮播组件，失败被吞掉
type Refresher struct {
	settle *SettleScheduler
	hook   WidgetRefresher
	delay  time.Duration
	log    *zap.SugaredLogger
}

// NewRefresher 创建刷新器，hook 为空时不做任何事
func NewRefresher(settle *SettleScheduler, hook WidgetRefresher, delay time.Duration, log *zap.SugaredLogger) *Refresher {
	return &Refresher{settle: settle, hook: hook, delay: delay, log: logger.OrDefault(log, "refresher")}
}

// Schedule 登记插槽的刷新信号
func (r *Refresher) Schedule(slot string, c Container) {
	if r == nil || r.hook == nil || c == nil {
		return
	}
	r.settle.Trigger(slot, r.delay, func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Debugw("widget_refresh_panicked", "slot", slot, "panic", rec)
			}
		}()
		if err := r.hook.Refresh(c); err != nil {
			r.log.Debugw("widget_refresh_failed", "slot", slot, "error", err)
		}
	})
}
