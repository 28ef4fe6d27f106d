package channel

// OrDone fans in any number of channels into one: the returned channel's
// first Receive unblocks as soon as any input channel either delivers a
// value or closes, whichever happens first. A delivered value is buffered
// on the returned channel (Receive yields StatusSuccess and that value);
// a closed input closes the returned channel (Receive yields
// StatusClosedError). It is the select-based "or-done" fan-in
// pattern, adapted to run on this package's own Select coordinator
// instead of native Go channels and goroutine-per-pair recursion.
//
// OrDone panics if channels is empty; a single channel is returned
// unchanged since there is nothing to fan in.
func OrDone(channels ...*Channel) *Channel {
	switch len(channels) {
	case 0:
		panic("channel: OrDone requires at least one channel")
	case 1:
		return channels[0]
	}

	out, err := Create(1)
	if err != nil {
		panic(err)
	}

	go func() {
		cases := make([]SelectCase, len(channels))
		for i, c := range channels {
			cases[i] = SelectCase{Channel: c, Dir: DirRecv}
		}
		_, v, st := Select(cases)
		if st == StatusSuccess {
			out.NonBlockingSend(v)
			return
		}
		_ = out.Close()
	}()

	return out
}
