package channel

import (
	"testing"
	"time"
)

func TestOrDoneFiresOnFirstReadyInput(t *testing.T) {
	a, _ := Create(1)
	b, _ := Create(1)
	c, _ := Create(1)

	out := OrDone(a, b, c)

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = b.Send("winner")
	}()

	v, st := out.Receive()
	if st != StatusSuccess || v != "winner" {
		t.Fatalf("OrDone Receive = %v, %v; want winner, SUCCESS", v, st)
	}
}

func TestOrDoneSingleChannelIsPassthrough(t *testing.T) {
	a, _ := Create(1)
	if OrDone(a) != a {
		t.Fatal("OrDone with one channel should return it unchanged")
	}
}
