package wasi

import (
	"time"
)

// clockRemaining computes how far in the future a clock subscription's
// deadline lies. A negative duration means the deadline has already passed.
// Durations are comparable across clock domains even though the clocks'
// absolute values are not.
func (m *Host) clockRemaining(sub *subscription) (time.Duration, Errno) {
	var now uint64
	switch sub.clockID {
	case ClockidRealtime:
		now = uint64(time.Now().UnixNano())
	case ClockidMonotonic:
		now = uint64(time.Since(m.start))
	default:
		return 0, ErrnoNotsup
	}

	deadline := sub.timeout
	if sub.clockFlags&subclockflagAbstime == 0 {
		deadline = now + sub.timeout
	}
	return time.Duration(int64(deadline) - int64(now)), ErrnoSuccess
}

// Concurrently poll for the occurrence of a set of events.
//
// This host never blocks the guest: each call is a single readiness pass
// over the subscriptions. File descriptor subscriptions report whatever is
// ready right now; if nothing is and the earliest clock deadline has passed,
// exactly one clock event is delivered. A call may well return zero events,
// in which case the embedder is expected to re-enter the guest when new
// input arrives or the deadline expires.
func (m *Host) pollOneoff(pin pointer, pout pointer, pnsubscriptions size) (rv size, err Errno) {
	if pnsubscriptions == 0 {
		return 0, ErrnoInval
	}

	nevents := size(0)
	deliver := func(e event) {
		e.store(m.mem, pout+nevents*eventSize)
		nevents++
	}

	// Track the clock subscription with the earliest deadline.
	var clockSub *subscription
	var clockRemaining time.Duration

	subs := make([]subscription, pnsubscriptions)
	for i := range subs {
		sub := &subs[i]
		sub.load(m.mem, pin+size(i)*subscriptionSize)

		switch sub.tag {
		case eventtypeClock:
			remaining, errno := m.clockRemaining(sub)
			if errno != ErrnoSuccess {
				return 0, errno
			}
			if clockSub == nil || remaining < clockRemaining {
				clockSub, clockRemaining = sub, remaining
			}

		case eventtypeFdRead, eventtypeFdWrite:
			f, errno := m.files.get(sub.subscribedFd, RightPollFdReadwrite)
			if errno != ErrnoSuccess {
				deliver(event{userdata: sub.userdata, errno: errno, typ: sub.tag})
				continue
			}

			var nbytes uint64
			var flags Eventrwflags
			var ready bool
			if sub.tag == eventtypeFdRead {
				nbytes, flags, ready = f.handle.PollRead()
			} else {
				nbytes, flags, ready = f.handle.PollWrite()
			}
			if ready {
				deliver(event{
					userdata: sub.userdata,
					typ:      sub.tag,
					nbytes:   nbytes,
					flags:    flags,
				})
			}

		default:
			return 0, ErrnoInval
		}
	}

	// The deadline is re-read after the descriptor pass so a slow probe
	// cannot miss an expiry that happened mid-call.
	if nevents == 0 && clockSub != nil {
		remaining, errno := m.clockRemaining(clockSub)
		if errno != ErrnoSuccess {
			return 0, errno
		}
		if remaining <= 0 {
			deliver(event{userdata: clockSub.userdata, typ: eventtypeClock})
		}
	}

	return nevents, ErrnoSuccess
}
