package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// 通知类型常量
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// 通知条目的默认保留时长
const defaultNotificationTTL = 3 * time.Second

// Notification 表示一条进程级通知（对应界面上的toast）
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// InterfaceNotificationService 定义通知服务接口
type InterfaceNotificationService interface {
	Publish(title, description, notifyType string) Notification
	Active() []Notification
	Subscribe() (<-chan Notification, func())
	Close()
}

// NotificationService 是进程级的发布/订阅通知中心。
// 条目有固定的保留时长，到期由后台清理协程移除。
type NotificationService struct {
	mu          sync.RWMutex
	entries     map[string]Notification
	subscribers map[int]chan Notification
	nextSubID   int
	ttl         time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewNotificationService 创建一个新的通知服务并启动清理协程
func NewNotificationService() InterfaceNotificationService {
	s := &NotificationService{
		entries:     make(map[string]Notification),
		subscribers: make(map[int]chan Notification),
		ttl:         defaultNotificationTTL,
		stop:        make(chan struct{}),
	}

	go s.janitor()
	return s
}

// janitor 定期清理过期的通知条目
func (s *NotificationService) janitor() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, n := range s.entries {
				if n.ExpiresAt.Before(now) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Publish 发布一条通知并推送给所有订阅者
func (s *NotificationService) Publish(title, description, notifyType string) Notification {
	if notifyType != NotificationError {
		notifyType = NotificationSuccess
	}

	now := time.Now()
	n := Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Type:        notifyType,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}

	s.mu.Lock()
	s.entries[n.ID] = n
	for _, ch := range s.subscribers {
		// 订阅者来不及消费时丢弃，不阻塞发布方
		select {
		case ch <- n:
		default:
		}
	}
	s.mu.Unlock()

	return n
}

// Active 返回当前未过期的通知条目
func (s *NotificationService) Active() []Notification {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.entries))
	for _, n := range s.entries {
		if n.ExpiresAt.After(now) {
			active = append(active, n)
		}
	}
	return active
}

// Subscribe 订阅后续发布的通知，返回取消函数
func (s *NotificationService) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 16)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Close 停止清理协程并关闭所有订阅
func (s *NotificationService) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})

	s.mu.Lock()
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
	s.mu.Unlock()
}
