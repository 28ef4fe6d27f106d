package channel

import (
	"fmt"
	"sync"

	"github.com/kevink2022/channels/ring"
)

// Direction identifies which operation a blocking/non-blocking call or a
// SelectCase proposes.
type Direction int

const (
	DirSend Direction = iota
	DirRecv
)

func (d Direction) String() string {
	if d == DirSend {
		return "SEND"
	}
	return "RECV"
}

// Channel is a buffered FIFO of opaque values with thread-safe send and
// receive, blocking and non-blocking, plus an explicit close/destroy
// lifecycle.
type Channel struct {
	mu sync.Mutex

	buf         *ring.Buffer[interface{}]
	sendWaiters *waitQueue
	recvWaiters *waitQueue
	closed      bool
}

// Create allocates a channel with a buffer of exactly size slots. size
// must be > 0: zero-capacity (unbuffered, rendezvous) channels are out of
// scope; this module rejects size<=0 rather than inferring rendezvous
// semantics for it.
func Create(size int) (*Channel, error) {
	if size <= 0 {
		return nil, fmt.Errorf("channel: size must be > 0, got %d", size)
	}
	return &Channel{
		buf:         ring.New[interface{}](size),
		sendWaiters: newWaitQueue(),
		recvWaiters: newWaitQueue(),
	}, nil
}

// Len reports the number of buffered values currently held.
func (ch *Channel) Len() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.buf.Len()
}

// Cap reports the fixed buffer capacity the channel was created with.
// Capacity is immutable for the life of the channel, so no lock is
// needed.
func (ch *Channel) Cap() int {
	return ch.buf.Capacity()
}

// String renders a snapshot of the channel's internal state, for
// debugging and tests.
func (ch *Channel) String() string {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return fmt.Sprintf("Channel{len=%d cap=%d closed=%v sendWaiters=%d recvWaiters=%d}",
		ch.buf.Len(), ch.buf.Capacity(), ch.closed, ch.sendWaiters.len(), ch.recvWaiters.len())
}

// peekImmediate reports, without mutating anything, whether an immediate
// operation of the given direction would succeed right now. ch.mu must
// already be held.
func (ch *Channel) peekImmediate(dir Direction) Status {
	if ch.closed {
		return StatusClosedError
	}
	switch dir {
	case DirSend:
		if ch.buf.Full() {
			return StatusFull
		}
		return StatusSuccess
	case DirRecv:
		if ch.buf.Empty() {
			return StatusEmpty
		}
		return StatusSuccess
	default:
		panic("channel: invalid direction")
	}
}

// commitSend performs the mutation side of a send already known to be
// possible (peekImmediate returned StatusSuccess) and cascades the
// wakeup pump. ch.mu must already be held.
func (ch *Channel) commitSend(v interface{}) {
	ch.buf.Add(v)
	ch.wakeRecv()
}

// commitRecv is commitSend's receive counterpart.
func (ch *Channel) commitRecv() interface{} {
	v := ch.buf.Remove()
	ch.wakeSend()
	return v
}

// tryImmediate is the unsafe (lock-already-held) core shared by the
// non-blocking operations and the fast path of the blocking operations,
// neither of which has a Request registered on any other channel yet, so
// there is nothing else that could race to claim the outcome. ch.mu must
// already be held.
func (ch *Channel) tryImmediate(dir Direction, sendValue interface{}) (Status, interface{}) {
	st := ch.peekImmediate(dir)
	if st != StatusSuccess {
		return st, nil
	}
	switch dir {
	case DirSend:
		ch.commitSend(sendValue)
		return StatusSuccess, nil
	case DirRecv:
		return StatusSuccess, ch.commitRecv()
	default:
		panic("channel: invalid direction")
	}
}

// wakeRecv is half of the wakeup pump: called after a successful send
// just made the buffer non-empty, it serves exactly one live receive
// waiter by performing the receive on its behalf. The popped entry's
// Request may also be registered on other channels (a select spanning
// several cases), so another channel's wakeSend/wakeRecv could be racing
// to claim the same Request right now; the buffer is only ever touched
// after winning that race, so a loser never removes a value with nowhere
// for it to go. ch.mu must be held.
func (ch *Channel) wakeRecv() {
	for {
		entry := ch.recvWaiters.popLive()
		if entry == nil {
			return
		}
		if !entry.request.claim(StatusSuccess, entry.index) {
			entry.request.releaseRef()
			continue
		}
		v := ch.buf.Remove()
		deliverRecv(entry.request, entry.index, v)
		entry.request.post()
		entry.request.releaseRef()
		trace("wakeRecv served index=%d", entry.index)
		return
	}
}

// wakeSend is the symmetric half: called after a successful receive just
// made the buffer non-full, it serves exactly one live send waiter,
// claiming the Request before touching the buffer for the same reason
// wakeRecv does. ch.mu must be held.
func (ch *Channel) wakeSend() {
	for {
		entry := ch.sendWaiters.popLive()
		if entry == nil {
			return
		}
		if !entry.request.claim(StatusSuccess, entry.index) {
			entry.request.releaseRef()
			continue
		}
		ch.buf.Add(sendValueOf(entry.request, entry.index))
		entry.request.post()
		entry.request.releaseRef()
		trace("wakeSend served index=%d", entry.index)
		return
	}
}

// deliverRecv writes v to the slot a receive Request expects it in,
// resolving the dual meaning of Request.data: a direct
// *interface{} slot for a single blocking receive, or the select
// operation list indexed by the serving channel's position for a select.
func deliverRecv(req *Request, index int, v interface{}) {
	if req.kind == KindSelect {
		req.data.([]SelectCase)[index].recvResult = v
		return
	}
	if slot, ok := req.data.(*interface{}); ok {
		*slot = v
	}
}

// sendValueOf resolves the value a send Request wants transmitted, the
// send-side counterpart of deliverRecv.
func sendValueOf(req *Request, index int) interface{} {
	if req.kind == KindSelect {
		return req.data.([]SelectCase)[index].Send
	}
	return req.data
}

// NonBlockingSend attempts to enqueue data without blocking. Returns
// StatusClosedError if closed, StatusFull if the buffer has no room, or
// StatusSuccess.
func (ch *Channel) NonBlockingSend(data interface{}) Status {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	st, _ := ch.tryImmediate(DirSend, data)
	return st
}

// NonBlockingReceive attempts to dequeue a value without blocking.
// Returns StatusClosedError if closed, StatusEmpty if the buffer holds
// nothing, or StatusSuccess with the value.
func (ch *Channel) NonBlockingReceive() (interface{}, Status) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	st, v := ch.tryImmediate(DirRecv, nil)
	return v, st
}

// Send blocks until data is deposited, the channel closes, or an
// unrecoverable error occurs. Never returns StatusFull — a full buffer
// suspends the caller instead.
func (ch *Channel) Send(data interface{}) Status {
	ch.mu.Lock()
	st, _ := ch.tryImmediate(DirSend, data)
	if st == StatusSuccess || st == StatusClosedError {
		ch.mu.Unlock()
		return st
	}

	req := acquireRequest(KindBlockingSend, data)
	ch.sendWaiters.enqueue(0, req)
	ch.mu.Unlock()

	trace("Send blocked on full channel")
	status, _ := req.wait()
	return status
}

// Receive blocks until a value is available, the channel closes, or an
// unrecoverable error occurs. Never returns StatusEmpty — an empty buffer
// suspends the caller instead.
func (ch *Channel) Receive() (interface{}, Status) {
	ch.mu.Lock()
	st, v := ch.tryImmediate(DirRecv, nil)
	if st == StatusSuccess || st == StatusClosedError {
		ch.mu.Unlock()
		return v, st
	}

	var slot interface{}
	req := acquireRequest(KindBlockingRecv, &slot)
	ch.recvWaiters.enqueue(0, req)
	ch.mu.Unlock()

	trace("Receive blocked on empty channel")
	status, _ := req.wait()
	if status != StatusSuccess {
		return nil, status
	}
	return slot, status
}

// Close marks the channel closed and wakes every currently queued
// send/receive/select waiter with StatusClosedError.
// A second Close returns StatusClosedError without side effects.
func (ch *Channel) Close() Status {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return StatusClosedError
	}
	ch.closed = true

	sendEntries := ch.sendWaiters.drainAll()
	recvEntries := ch.recvWaiters.drainAll()
	ch.mu.Unlock()

	trace("Close draining %d send waiters, %d recv waiters", len(sendEntries), len(recvEntries))
	for _, e := range sendEntries {
		e.request.complete(StatusClosedError, e.index)
		e.request.releaseRef()
	}
	for _, e := range recvEntries {
		e.request.complete(StatusClosedError, e.index)
		e.request.releaseRef()
	}
	return StatusSuccess
}

// Destroy releases a closed channel's resources. It is StatusGenError on
// a nil channel and StatusDestroyError if the channel has not been
// closed yet — the caller must Close first.
func (ch *Channel) Destroy() Status {
	if ch == nil {
		return StatusGenError
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if !ch.closed {
		return StatusDestroyError
	}
	return StatusSuccess
}
