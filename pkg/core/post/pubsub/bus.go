// Package pubsub 进程内的新帖广播总线。
// 不落盘、不重放历史、不保证送达——连接晚于发布的订阅者收不到该条，
// 消费过慢的订阅者会被丢帧，属于纯尽力而为的进程内扇出。
package pubsub

import (
	"sync"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"social-wall/pkg/core/post/model"
)

const defaultSubscriberBuffer = 16

type Bus struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	buffer int
	closed bool
}

// Subscriber 单个订阅者句柄，持有专属通道
type Subscriber struct {
	ch   chan model.Post
	bus  *Bus
	once sync.Once
}

// C 订阅通道，订阅被关闭（本端Close或总线关停）后该通道关闭
func (s *Subscriber) C() <-chan model.Post {
	return s.ch
}

// Close 注销订阅并释放通道，幂等
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		if _, ok := s.bus.subs[s]; ok {
			delete(s.bus.subs, s)
			close(s.ch)
		}
	})
}

func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Bus{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
	}
}

// Subscribe 注册新订阅者，只会收到此刻之后发布的帖子
func (b *Bus) Subscribe() *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscriber{
		ch:  make(chan model.Post, b.buffer),
		bus: b,
	}
	if b.closed {
		// 总线已关停，返回已关闭的空订阅，调用方按正常断开处理
		close(sub.ch)
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Publish 向当前所有订阅者投递，发布方永不阻塞。
// 持锁投递保证并发发布对所有订阅者呈现同一顺序；
// 订阅者缓冲已满时丢弃该帧
func (b *Bus) Publish(post model.Post) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for sub := range b.subs {
		select {
		case sub.ch <- post:
		default:
			hlog.Warnf("pubsub: subscriber too slow, dropping post %s", post.ID)
		}
	}
}

// Close 关停总线并关闭所有订阅通道，进程退出时调用
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
}

// SubscriberCount 当前活跃订阅数，健康检查用
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
