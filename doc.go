// Package channel implements a thread-safe, in-process message-passing
// channel: buffered (capacity > 0) send/receive with blocking and
// non-blocking variants, an explicit close/destroy lifecycle, and a
// multi-way Select that completes exactly one of several proposed
// send-or-receive operations across distinct channels.
//
// A Channel owns a bounded ring buffer, a mutex, and two FIFO waiter
// queues (one per direction); a Request is the reference-counted
// coordination record shared by one blocking caller (single-channel or
// Select) and every queue entry registered on its behalf; Select walks
// its operation list once, serving or registering each one, then sleeps
// on the Request's semaphore until exactly one channel completes it.
package channel
