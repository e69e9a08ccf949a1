package pipeline

import (
	"context"
	"sync"
)

// Channel is a bounded, multi-producer/multi-consumer FIFO carrying Payload
// values between two stages. Its capacity is fixed at construction and is
// the pipeline's only source of backpressure: once the buffer is full,
// Send blocks the caller until a receiver drains it.
type Channel struct {
	c    chan Payload
	once sync.Once
}

// NewChannel allocates a Channel with room for capacity in-flight payloads.
// capacity must be >= 1.
func NewChannel(capacity int) *Channel {
	if capacity < 1 {
		panic("pipeline: channel capacity must be >= 1")
	}
	return &Channel{c: make(chan Payload, capacity)}
}

// Send blocks while the channel is full. It returns ErrClosed if ctx is
// cancelled before the payload can be delivered; send never succeeds after
// CloseSend.
func (ch *Channel) Send(ctx context.Context, p Payload) error {
	select {
	case ch.c <- p:
		return nil
	case <-ctx.Done():
		return ErrClosed
	}
}

// Recv blocks while the channel is empty. ok is false once the channel has
// been closed and fully drained (end-of-stream) or ctx has been cancelled.
func (ch *Channel) Recv(ctx context.Context) (p Payload, ok bool) {
	select {
	case p, ok = <-ch.c:
		return p, ok
	case <-ctx.Done():
		return nil, false
	}
}

// Full reports whether the channel's buffer is saturated at the instant of
// the call. It exists only as a cheap hint for backpressure metrics and is
// inherently racy: a stage should never branch on it for correctness.
func (ch *Channel) Full() bool { return len(ch.c) == cap(ch.c) }

// CloseSend idempotently signals that no further sends will occur. Blocked
// Recv calls wake once the buffered payloads ahead of them have drained. A
// channel observed as closed stays closed; CloseSend is safe to call more
// than once.
func (ch *Channel) CloseSend() {
	ch.once.Do(func() { close(ch.c) })
}
