package ingest

import (
	"sync"
	"testing"

	"github.com/hawkeye-data/grid.report/internal/telem"
)

type countStats struct {
	mu             sync.Mutex
	received       int
	bytes          int
	queueDropped   int
	forwardDropped int
}

func (c *countStats) AddReceived(n int) {
	c.mu.Lock()
	c.received++
	c.bytes += n
	c.mu.Unlock()
}

func (c *countStats) AddQueueDropped() {
	c.mu.Lock()
	c.queueDropped++
	c.mu.Unlock()
}

func (c *countStats) AddForwardDropped() {
	c.mu.Lock()
	c.forwardDropped++
	c.mu.Unlock()
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	stats := &countStats{}
	q := NewQueue(4, stats)

	for i := byte(0); i < 10; i++ {
		q.Push(telem.RawDatagram{Data: []byte{i}})
	}
	q.Close()

	var got []byte
	for d := range q.Chan() {
		got = append(got, d.Data[0])
	}
	if len(got) != 4 {
		t.Fatalf("queue held %d datagrams, want 4", len(got))
	}
	// The newest four survive.
	for i, b := range got {
		if want := byte(6 + i); b != want {
			t.Errorf("slot %d = %d, want %d", i, b, want)
		}
	}
	if stats.queueDropped != 6 {
		t.Errorf("queueDropped = %d, want 6", stats.queueDropped)
	}
}

func TestQueuePushNeverBlocks(t *testing.T) {
	q := NewQueue(1, nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			q.Push(telem.RawDatagram{Data: []byte{byte(i)}})
		}
		close(done)
	}()
	<-done // would hang here if Push could block
}

func TestQueueDefaultCapacity(t *testing.T) {
	q := NewQueue(0, nil)
	if cap(q.ch) != 256 {
		t.Errorf("default capacity = %d, want 256", cap(q.ch))
	}
}
