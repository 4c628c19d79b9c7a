package notify

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func TestHubDeliversToSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ch, cancel := hub.Subscribe("user-1")
	defer cancel()

	hub.Push("user-1", map[string]string{"title": "hello"})

	select {
	case data := <-ch:
		var got map[string]string
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["title"] != "hello" {
			t.Errorf("title = %q, want %q", got["title"], "hello")
		}
	default:
		t.Fatal("expected buffered event")
	}
}

func TestHubIsolatesUsers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ch, cancel := hub.Subscribe("user-1")
	defer cancel()

	hub.Push("user-2", map[string]string{"title": "other"})

	select {
	case <-ch:
		t.Fatal("event leaked to wrong user")
	default:
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())

	_, cancel := hub.Subscribe("user-1")
	if got := hub.Subscribers("user-1"); got != 1 {
		t.Fatalf("subscribers = %d, want 1", got)
	}

	cancel()
	cancel() // idempotent

	if got := hub.Subscribers("user-1"); got != 0 {
		t.Errorf("subscribers after cancel = %d, want 0", got)
	}

	// push after cancel must not panic
	hub.Push("user-1", map[string]string{"title": "late"})
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ch, cancel := hub.Subscribe("user-1")
	defer cancel()

	for i := 0; i < 20; i++ {
		hub.Push("user-1", map[string]int{"seq": i})
	}

	// buffer holds 8; the rest are dropped, never blocked
	count := 0
	for {
		select {
		case <-ch:
			count++
			continue
		default:
		}
		break
	}
	if count != 8 {
		t.Errorf("buffered events = %d, want 8", count)
	}
}
