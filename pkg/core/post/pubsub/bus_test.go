package pubsub

import (
	"testing"
	"time"

	"social-wall/pkg/core/post/model"
)

func post(id string) model.Post {
	return model.Post{ID: id, Username: "alice", Body: "hello", CreatedAt: time.Now()}
}

func TestSubscriberReceivesPublishedPost(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	sub := bus.Subscribe()
	defer sub.Close()

	bus.Publish(post("p-1"))

	select {
	case got := <-sub.C():
		if got.ID != "p-1" {
			t.Fatalf("Expected p-1, got %s", got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for published post")
	}
}

func TestLateSubscriberDoesNotReplayHistory(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	bus.Publish(post("p-1"))

	sub := bus.Subscribe()
	defer sub.Close()

	select {
	case got := <-sub.C():
		t.Fatalf("Late subscriber must not receive %s", got.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishOrderPreserved(t *testing.T) {
	bus := NewBus(8)
	defer bus.Close()

	sub := bus.Subscribe()
	defer sub.Close()

	ids := []string{"p-1", "p-2", "p-3", "p-4"}
	for _, id := range ids {
		bus.Publish(post(id))
	}

	for _, want := range ids {
		select {
		case got := <-sub.C():
			if got.ID != want {
				t.Fatalf("Expected %s, got %s", want, got.ID)
			}
		case <-time.After(time.Second):
			t.Fatalf("Timed out waiting for %s", want)
		}
	}
}

func TestCloseReleasesRegistration(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	sub := bus.Subscribe()
	if count := bus.SubscriberCount(); count != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", count)
	}

	sub.Close()
	sub.Close() // 幂等

	if count := bus.SubscriberCount(); count != 0 {
		t.Fatalf("Expected 0 subscribers after close, got %d", count)
	}

	// 通道应已关闭
	if _, ok := <-sub.C(); ok {
		t.Fatal("Expected closed channel after Close")
	}

	// 向已注销的订阅发布不应panic
	bus.Publish(post("p-1"))
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus(2)
	defer bus.Close()

	sub := bus.Subscribe()
	defer sub.Close()

	// 缓冲2帧，第3帧应被丢弃且发布方不阻塞
	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(post("p-1"))
		bus.Publish(post("p-2"))
		bus.Publish(post("p-3"))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish must never block on a slow subscriber")
	}

	got := []string{(<-sub.C()).ID, (<-sub.C()).ID}
	if got[0] != "p-1" || got[1] != "p-2" {
		t.Fatalf("Expected buffered p-1, p-2, got %v", got)
	}
}

func TestBusCloseClosesSubscribers(t *testing.T) {
	bus := NewBus(4)
	sub := bus.Subscribe()

	bus.Close()

	if _, ok := <-sub.C(); ok {
		t.Fatal("Expected subscriber channel closed after bus shutdown")
	}

	// 关停后的订阅立即拿到已关闭通道
	late := bus.Subscribe()
	if _, ok := <-late.C(); ok {
		t.Fatal("Expected closed channel for post-shutdown subscriber")
	}
}
