package channel

import "github.com/elliotchance/orderedmap"

// queueEntry is a channel-side reference to a Request plus the caller's
// position within its operation list — 0 for a plain blocking caller,
// the case index for a select.
type queueEntry struct {
	index   int
	request *Request
}

// waitQueue is the per-channel, per-direction FIFO of blocked callers.
// It is backed by orderedmap.OrderedMap keyed by a monotonically
// increasing sequence number rather than a hand-rolled linked list: every
// Set key is strictly greater than the last, so Set always appends at the
// tail, and Front/Delete give O(1) FIFO pop with O(1) removal by key.
//
// waitQueue is not safe for concurrent use on its own; every call here is
// made with the owning Channel's mu held.
type waitQueue struct {
	entries *orderedmap.OrderedMap
	nextSeq int64
}

func newWaitQueue() *waitQueue {
	return &waitQueue{entries: orderedmap.NewOrderedMap()}
}

func (q *waitQueue) empty() bool {
	return q.entries.Len() == 0
}

func (q *waitQueue) len() int {
	return q.entries.Len()
}

// enqueue adds an entry for request at the tail, provided request is
// still valid — a no-op otherwise, preserving the invariant that a queue
// entry is never enqueued referring to an invalid Request.
func (q *waitQueue) enqueue(index int, request *Request) {
	if !request.tryAddRef() {
		return
	}
	seq := q.nextSeq
	q.nextSeq++
	q.entries.Set(seq, &queueEntry{index: index, request: request})
}

// popLive pops entries from the head, discarding any whose Request has
// already gone invalid (served by some other channel or by close), until
// it finds one still valid or the queue drains. This is the tie-break
// rule: a channel's FIFO order is preserved among live waiters by
// skipping stale heads rather than reordering around them.
// The caller is responsible for completing and releasing the returned
// entry's Request.
func (q *waitQueue) popLive() *queueEntry {
	for {
		front := q.entries.Front()
		if front == nil {
			return nil
		}
		key := front.Key
		entry := front.Value.(*queueEntry)
		q.entries.Delete(key)

		entry.request.mu.Lock()
		valid := entry.request.valid
		entry.request.mu.Unlock()

		if valid {
			return entry
		}
		entry.request.releaseRef()
	}
}

// drainAll pops every entry, live or stale, discarding stale ones along
// the way and returning the live ones in FIFO order. Used by Close, which
// must empty both queues rather than stop at the first successful serve:
// close wakes every waiter, not just one per event.
func (q *waitQueue) drainAll() []*queueEntry {
	var live []*queueEntry
	for {
		front := q.entries.Front()
		if front == nil {
			return live
		}
		key := front.Key
		entry := front.Value.(*queueEntry)
		q.entries.Delete(key)

		entry.request.mu.Lock()
		valid := entry.request.valid
		entry.request.mu.Unlock()

		if valid {
			live = append(live, entry)
		} else {
			entry.request.releaseRef()
		}
	}
}
