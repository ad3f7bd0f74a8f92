package bridge

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"picon/internal/model"
)

func newTestBridge(t *testing.T) *Bridge {
	t.Helper()
	b, err := New(context.Background(), 10, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// drain polls like the UI tick until a message arrives.
func drain(t *testing.T, b *Bridge) Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msg, ok := b.DrainOne(); ok {
			return msg
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no message drained")
	return nil
}

// go test -v --run TestNewCapacity
func TestNewCapacity(t *testing.T) {
	if _, err := New(context.Background(), 1, zap.NewNop()); err == nil {
		t.Error("capacity below the number of kinds should be rejected")
	}
}

// go test -v --run TestRequestDeduplicates
func TestRequestDeduplicates(t *testing.T) {
	b := newTestBridge(t)

	gate := make(chan struct{})
	var calls atomic.Int32
	b.Register(KindLatest, func(ctx context.Context) (Message, error) {
		calls.Add(1)
		<-gate
		return LatestResult{Snapshot: &model.Snapshot{}}, nil
	})

	if !b.Request(KindLatest) {
		t.Fatal("first request should start a worker")
	}
	if b.Request(KindLatest) {
		t.Fatal("second request while in flight should be dropped")
	}
	if !b.InFlight(KindLatest) || b.InFlight(KindStats) {
		t.Fatal("unexpected in-flight flags")
	}
	close(gate)

	msg := drain(t, b)
	if _, ok := msg.(LatestResult); !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if b.InFlight(KindLatest) {
		t.Error("flag should clear once the result is drained")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := b.DrainOne(); ok {
		t.Error("expected exactly one message")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one worker, got %d", n)
	}
}

// go test -v --run TestDrainOneEmpty
func TestDrainOneEmpty(t *testing.T) {
	b := newTestBridge(t)
	if msg, ok := b.DrainOne(); ok || msg != nil {
		t.Errorf("empty channel returned %v", msg)
	}
}

// go test -v --run TestFailureClearsFlag
func TestFailureClearsFlag(t *testing.T) {
	b := newTestBridge(t)
	boom := errors.New("connection refused")
	b.Register(KindStats, func(ctx context.Context) (Message, error) {
		return nil, boom
	})

	b.Request(KindStats)
	msg := drain(t, b)

	f, ok := msg.(Failure)
	if !ok || f.Origin != KindStats || !errors.Is(f, boom) {
		t.Fatalf("unexpected message %#v", msg)
	}
	if b.InFlight(KindStats) {
		t.Error("failure should clear the flag")
	}
	if !b.Request(KindStats) {
		t.Error("a new request should be accepted after a failure")
	}
}

// go test -v --run TestPanicRecovered
func TestPanicRecovered(t *testing.T) {
	b := newTestBridge(t)
	b.Register(KindLatest, func(ctx context.Context) (Message, error) {
		panic("decoder exploded")
	})

	b.Request(KindLatest)
	msg := drain(t, b)
	if f, ok := msg.(Failure); !ok || f.Origin != KindLatest {
		t.Fatalf("expected failure, got %#v", msg)
	}
	if b.InFlight(KindLatest) {
		t.Error("flag should clear after a panic")
	}
}

// go test -v --run TestMismatchedResult
func TestMismatchedResult(t *testing.T) {
	b := newTestBridge(t)
	b.Register(KindStats, func(ctx context.Context) (Message, error) {
		return LatestResult{}, nil
	})

	b.Request(KindStats)
	msg := drain(t, b)
	if msg.Kind() != KindStats {
		t.Fatalf("message kind %s", msg.Kind())
	}
	if _, ok := msg.(Failure); !ok {
		t.Errorf("expected failure, got %T", msg)
	}
}

// go test -v --run TestKindsIndependent
func TestKindsIndependent(t *testing.T) {
	b := newTestBridge(t)
	b.Register(KindLatest, func(ctx context.Context) (Message, error) {
		return LatestResult{}, nil
	})
	b.Register(KindStats, func(ctx context.Context) (Message, error) {
		return StatsResult{}, nil
	})

	if !b.Request(KindLatest) || !b.Request(KindStats) {
		t.Fatal("each kind should get its own worker")
	}

	seen := map[Kind]bool{}
	seen[drain(t, b).Kind()] = true
	seen[drain(t, b).Kind()] = true
	if !seen[KindLatest] || !seen[KindStats] {
		t.Errorf("unexpected kinds %v", seen)
	}
}

// go test -v --run TestRequestUnregistered
func TestRequestUnregistered(t *testing.T) {
	b := newTestBridge(t)
	if b.Request(KindStats) || b.InFlight(KindStats) {
		t.Error("unregistered kind must not be marked in flight")
	}
}
