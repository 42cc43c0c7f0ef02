package narrator

import (
	"context"
	"log/slog"
	"sync"
)

// Queue is the narration queue: the single entry point UI collaborators use
// to speak. Requests drain strictly in FIFO order through the playback
// channel, one at a time; at most one drain loop runs at any moment.
//
// One Queue exists for the app's lifetime. Close runs the same teardown
// path as Stop.
type Queue struct {
	channel *Channel
	log     *slog.Logger

	mu       sync.Mutex
	pending  []entry
	draining bool
	cancel   context.CancelFunc
	closed   bool
}

// entry is one queued request; done (when set) is closed once the request
// has finalized or been discarded by Stop.
type entry struct {
	req  Request
	done chan struct{}
}

// NewQueue creates the narration queue. logger nil means slog.Default.
func NewQueue(channel *Channel, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		channel: channel,
		log:     logger.With("component", "narrator.queue"),
	}
}

// Speak appends the requests to the tail of the queue and ensures a drain
// loop is running. A multi-request call is a batch: its internal order is
// never split by a concurrent Speak. The returned channel is closed when
// the last of these requests has finalized (or been discarded by Stop);
// errors are never surfaced.
func (q *Queue) Speak(reqs ...Request) <-chan struct{} {
	done := make(chan struct{})
	if len(reqs) == 0 {
		close(done)
		return done
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		close(done)
		return done
	}

	for i, req := range reqs {
		e := entry{req: req}
		if i == len(reqs)-1 {
			e.done = done
		}
		q.pending = append(q.pending, e)
	}

	start := !q.draining
	var ctx context.Context
	if start {
		q.draining = true
		ctx, q.cancel = context.WithCancel(context.Background())
	}
	queued := len(q.pending)
	q.mu.Unlock()

	q.log.Debug("narration queued", "count", len(reqs), "pending", queued)

	if start {
		go q.drain(ctx)
	}
	return done
}

// drain plays pending requests head-first until the queue is empty.
// Only one drain loop exists at a time; Speak during a drain just extends
// the tail and this loop picks it up.
func (q *Queue) drain(ctx context.Context) {
	for {
		q.mu.Lock()
		if ctx.Err() != nil {
			// Stopped. Requests enqueued after the Stop are still owed a
			// drain loop with a fresh context.
			var next context.Context
			if len(q.pending) > 0 {
				next, q.cancel = context.WithCancel(context.Background())
			} else {
				q.draining = false
			}
			q.mu.Unlock()
			if next != nil {
				go q.drain(next)
			}
			return
		}
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		e := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.channel.Play(ctx, e.req)

		if e.done != nil {
			close(e.done)
		}
	}
}

// Stop synchronously clears all pending requests, aborts any in-flight
// playback via the channel's cancellation hook, and forces status to idle.
// Idempotent; safe to call when nothing is playing.
func (q *Queue) Stop() {
	q.mu.Lock()
	dropped := q.pending
	q.pending = nil
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.mu.Unlock()

	q.channel.Interrupt()
	q.channel.status.set(StatusIdle)

	for _, e := range dropped {
		if e.done != nil {
			close(e.done)
		}
	}

	if len(dropped) > 0 {
		q.log.Debug("narration stopped", "dropped", len(dropped))
	}
}

// Status returns the current voice status.
func (q *Queue) Status() Status {
	return q.channel.Status()
}

// OnStatusChange registers a subscriber for status transitions. Used by the
// UI boundary to broadcast state.
func (q *Queue) OnStatusChange(fn func(Status)) {
	q.channel.status.subscribe(fn)
}

// SetListening flips the listening leg of the voice status. It is owned by
// the speech-input collaborator; speaking always wins, so the transition
// only applies from (or back to) idle.
func (q *Queue) SetListening(on bool) {
	if on {
		q.channel.status.swap(StatusIdle, StatusListening)
	} else {
		q.channel.status.swap(StatusListening, StatusIdle)
	}
}

// Pending returns the number of queued requests not yet started.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close tears the queue down at app unmount: same path as Stop, after
// which Speak becomes a no-op.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.Stop()
}
