package channel

// SelectCase proposes one send-or-receive operation against Channel, as
// an element of a Select call's operation list.
type SelectCase struct {
	// Channel is the channel this case proposes an operation against.
	Channel *Channel
	// Dir is DirSend or DirRecv.
	Dir Direction
	// Send is the value to transmit when Dir is DirSend. Ignored for
	// DirRecv.
	Send interface{}

	// recvResult holds the value delivered to this case when it is the
	// one selected and Dir is DirRecv. Written internally by whichever
	// channel serves the case; read back out via Select's return value.
	recvResult interface{}
}

// Select waits until exactly one of cases becomes possible and performs
// it, atomically with respect to the whole set. It returns the index of
// the case that fired, the value received (nil for a send case or on
// error), and the outcome status.
//
// Lowest-index channel wins ties during the initial scan; after
// suspension, the first channel to serve wins. A CLOSED_ERROR on any
// participating channel — during the scan or later — is terminal for
// the whole select and is reported with that channel's index.
func Select(cases []SelectCase) (index int, value interface{}, status Status) {
	if len(cases) == 0 {
		return 0, nil, StatusGenError
	}

	req := acquireRequest(KindSelect, cases)

scan:
	for i := range cases {
		req.mu.Lock()
		valid := req.valid
		req.mu.Unlock()
		if !valid {
			// Some other channel already completed this request while
			// we were working on an earlier case in the scan.
			break scan
		}

		c := &cases[i]
		c.Channel.mu.Lock()

		// Peek only — don't touch the buffer until this case has won
		// the race to claim req. An earlier case in this same scan may
		// already be registered on another channel's waiter queue, and
		// that channel's wakeSend/wakeRecv can claim req concurrently;
		// mutating this channel's buffer before winning that race would
		// remove or insert a value with nowhere left to deliver it.
		st := c.Channel.peekImmediate(c.Dir)
		if st == StatusSuccess || st == StatusClosedError {
			if !req.claim(st, i) {
				// Lost the race: some other channel already completed
				// req. This channel's state is untouched.
				c.Channel.mu.Unlock()
				break scan
			}
			if st == StatusSuccess {
				switch c.Dir {
				case DirSend:
					c.Channel.commitSend(c.Send)
				case DirRecv:
					c.recvResult = c.Channel.commitRecv()
				}
			}
			req.post()
			c.Channel.mu.Unlock()
			break scan
		}

		switch c.Dir {
		case DirSend:
			c.Channel.sendWaiters.enqueue(i, req)
		case DirRecv:
			c.Channel.recvWaiters.enqueue(i, req)
		}
		c.Channel.mu.Unlock()
	}

	trace("Select registered across %d cases, waiting", len(cases))
	status, idx := req.wait()
	if status == StatusSuccess && idx >= 0 && idx < len(cases) && cases[idx].Dir == DirRecv {
		return idx, cases[idx].recvResult, status
	}
	return idx, nil, status
}
