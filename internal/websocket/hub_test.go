package chatws

import (
	"sync"
	"testing"
)

func TestClientTrySendAfterClose(t *testing.T) {
	client := NewClient(NewHub(), nil, "42")

	if !client.trySend([]byte("first")) {
		t.Fatalf("expected send to a fresh client to succeed")
	}

	client.closeSend()

	if client.trySend([]byte("late")) {
		t.Fatalf("expected send after close to be rejected")
	}

	// Closing twice must be a no-op, not a panic.
	client.closeSend()
}

func TestClientTrySendRejectsWhenBufferFull(t *testing.T) {
	client := NewClient(NewHub(), nil, "42")

	for i := 0; i < cap(client.send); i++ {
		if !client.trySend([]byte("fill")) {
			t.Fatalf("expected send %d to fit in the buffer", i)
		}
	}
	if client.trySend([]byte("overflow")) {
		t.Fatalf("expected send to a full buffer to be rejected")
	}
}

func TestClientConcurrentSendAndClose(t *testing.T) {
	client := NewClient(NewHub(), nil, "42")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				client.trySend([]byte("payload"))
			}
		}()
	}
	client.closeSend()
	wg.Wait()
}
