package channel

import "sync"

// requestPool recycles *Request allocations across blocking calls: Get
// reuses a completed Request's memory, New covers the miss path.
var requestPool = sync.Pool{
	New: func() interface{} {
		return &Request{}
	},
}

// acquireRequest gets a Request from the pool (or allocates one) and
// initializes it for a new blocking call.
func acquireRequest(kind RequestKind, data interface{}) *Request {
	r := requestPool.Get().(*Request)
	r.reset(kind, data)
	return r
}

// releaseRequestToPool returns a fully-dereferenced Request to the pool.
// Called only from Request.releaseRef once refs has reached zero.
func releaseRequestToPool(r *Request) {
	requestPool.Put(r)
}
