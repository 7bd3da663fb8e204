package mq

import (
	"context"
	"testing"
)

func TestPublishContextOutlivesRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Handlers emit from goroutines that outlive the request, so the
	// publish context must not report the request's cancellation.
	if err := publishContext(ctx).Err(); err != nil {
		t.Fatalf("publish context reports %v after request cancellation", err)
	}
}

func TestPublishContextKeepsValues(t *testing.T) {
	type key string
	ctx := context.WithValue(context.Background(), key("k"), "v")

	if got := publishContext(ctx).Value(key("k")); got != "v" {
		t.Fatalf("publish context lost value, got %v", got)
	}
}
