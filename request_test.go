package channel

import "testing"

func TestRequestCompleteIsSerializedToOneWinner(t *testing.T) {
	r := acquireRequest(KindBlockingRecv, new(interface{}))
	if !r.complete(StatusSuccess, 0) {
		t.Fatal("first complete() should succeed")
	}
	if r.complete(StatusClosedError, 0) {
		t.Fatal("second complete() should be a no-op and report failure")
	}
	status, idx := r.wait()
	if status != StatusSuccess || idx != 0 {
		t.Fatalf("wait() = %v, %d; want SUCCESS, 0 (first completion wins)", status, idx)
	}
}

func TestRequestTryAddRefFailsOnceInvalid(t *testing.T) {
	r := acquireRequest(KindBlockingRecv, new(interface{}))
	r.complete(StatusSuccess, 0)
	if r.tryAddRef() {
		t.Fatal("tryAddRef() on a completed Request should fail")
	}
	r.wait()
}

func TestRequestReleaseRefReturnsToPoolAtZero(t *testing.T) {
	r := acquireRequest(KindBlockingRecv, new(interface{}))
	if !r.tryAddRef() {
		t.Fatal("tryAddRef should succeed on a fresh Request")
	}
	r.complete(StatusSuccess, 0)

	// Owner's wait() drops the owner's ref; the extra ref from tryAddRef
	// above keeps refs at 1 until released explicitly.
	status, _ := r.wait()
	if status != StatusSuccess {
		t.Fatalf("wait() status = %v, want SUCCESS", status)
	}
	r.releaseRef() // drops the last outstanding reference
}
