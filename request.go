package channel

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// RequestKind distinguishes a single-channel blocking caller from a Select
// caller.
type RequestKind int

const (
	KindBlockingSend RequestKind = iota
	KindBlockingRecv
	KindSelect
)

// Request is the shared coordination record created by one blocking
// caller, single-channel or Select. Exactly one agent — the channel that
// serves it, close's drain, or the select scan itself — observes
// valid==true and flips it to false while holding mu; that agent alone
// writes status/selectedIndex and posts sem.
//
// data carries the payload: the value for a single send, a *interface{}
// slot to write into for a single receive, or the []SelectCase operation
// list for a select — the slot a select case writes to depends on which
// index within that list gets served.
type Request struct {
	data interface{}
	kind RequestKind

	mu            sync.Mutex
	sem           *semaphore.Weighted
	refs          int
	valid         bool
	selectedIndex int
	status        Status
}

// reset reinitializes a Request (fresh or recycled via requestPool, see
// requestpool.go) to references=1 (the owning caller) and an unposted
// semaphore: the single unit of weight is acquired immediately so a
// later wait() blocks until claim/post releases it back. wait() gives
// its own acquired unit straight back before returning (see wait below),
// so the semaphore is always found fully released by the time a
// recycled Request reaches reset again — acquiring here never blocks on
// a pooled object.
func (r *Request) reset(kind RequestKind, data interface{}) {
	if r.sem == nil {
		r.sem = semaphore.NewWeighted(1)
	}
	_ = r.sem.Acquire(context.Background(), 1)
	r.data = data
	r.kind = kind
	r.refs = 1
	r.valid = true
	r.selectedIndex = 0
	r.status = 0
}

// tryAddRef increments the reference count iff the Request is still
// valid; a no-op otherwise — an enqueue attempt against an invalid
// Request must never add a reference.
func (r *Request) tryAddRef() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.valid {
		return false
	}
	r.refs++
	return true
}

// claim serves the Request if it is still valid: records the outcome and
// flips valid false, but does not yet wake the owner. Returns false if
// some other agent already completed it — the validity flip is the
// single serialization point of the whole system. Callers that must
// perform side effects (a buffer mutation) conditional on actually
// winning the Request do so between a successful claim and the matching
// post, so a lost race never leaves a mutation with nowhere to go.
func (r *Request) claim(status Status, selectedIndex int) bool {
	r.mu.Lock()
	if !r.valid {
		r.mu.Unlock()
		return false
	}
	r.valid = false
	r.status = status
	r.selectedIndex = selectedIndex
	r.mu.Unlock()
	return true
}

// post wakes the owner. Must only be called after a successful claim.
func (r *Request) post() {
	r.sem.Release(1)
}

// complete is claim immediately followed by post, for callers with
// nothing to gate between the two (Close's drain, the reference-count
// edge case in releaseRef below). Returns claim's result.
func (r *Request) complete(status Status, selectedIndex int) bool {
	if !r.claim(status, selectedIndex) {
		return false
	}
	r.post()
	return true
}

// releaseRef drops one reference. At zero, the Request is returned to
// requestPool for reuse. If dropping a queue entry's reference leaves
// only the owner outstanding while the Request is still unserved, it is
// force-completed with CLOSED_ERROR so the owner cannot sleep forever.
// Every pop in this package already completes a live Request before
// dropping its reference, so in practice this is a defensive invariant,
// not the primary wakeup path — see DESIGN.md.
func (r *Request) releaseRef() {
	r.mu.Lock()
	r.refs--
	refs, valid := r.refs, r.valid
	r.mu.Unlock()

	if refs == 0 {
		releaseRequestToPool(r)
		return
	}
	if refs == 1 && valid {
		r.complete(StatusClosedError, 0)
	}
}

// wait blocks until the Request is completed, reads its outcome, drops
// the owner's own reference, and returns the outcome.
func (r *Request) wait() (Status, int) {
	_ = r.sem.Acquire(context.Background(), 1)
	// Give the unit straight back: reset's pre-acquire consumed it to
	// model "unposted", post's Release gave it back to model "posted",
	// and the Acquire above just consumed that post to wake us. Holding
	// it any longer would leave the semaphore fully-used (cur==1) for
	// the life of this Request, so the next reset on a pooled reuse of
	// the same *semaphore.Weighted would block forever trying to
	// pre-acquire an already-exhausted semaphore.
	r.sem.Release(1)

	r.mu.Lock()
	status, idx := r.status, r.selectedIndex
	r.mu.Unlock()

	r.releaseRef()
	return status, idx
}
