package narrator_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/bhartiamulya/EduToon/pkg/audio"
	"github.com/bhartiamulya/EduToon/pkg/clips"
	"github.com/bhartiamulya/EduToon/pkg/narrator"
	"github.com/bhartiamulya/EduToon/pkg/synth"
)

func newChannel(t *testing.T, out audio.Output, engine *synth.Mock, gestures *narrator.Gestures) *narrator.Channel {
	t.Helper()

	registry, err := clips.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	speaker := synth.New(synth.WithEngine(engine))
	return narrator.NewChannel(registry, out, speaker, gestures, nil)
}

func TestChannelClipPlayback(t *testing.T) {
	fake := audio.NewFake()
	mock := synth.NewMock()
	ch := newChannel(t, fake, mock, nil)

	ch.Play(context.Background(), narrator.ClipRequest(clips.KeyWelcome))

	if fake.StartCount() != 1 {
		t.Fatalf("expected 1 playback, got %d", fake.StartCount())
	}
	if mock.CallCount() != 0 {
		t.Errorf("healthy clip must not reach synthesis, got %d calls", mock.CallCount())
	}
	if st := ch.Status(); st != narrator.StatusIdle {
		t.Errorf("expected idle after playback, got %s", st)
	}
}

func TestChannelFallback(t *testing.T) {
	t.Run("failed clip degrades to synthesized fallback", func(t *testing.T) {
		fake := audio.NewFake()
		fake.Errs = []error{errors.New("device gone")}
		mock := synth.NewMock()
		ch := newChannel(t, fake, mock, nil)

		ch.Play(context.Background(), narrator.ClipRequest(clips.KeyGreatJob))

		want := []string{clips.Line(clips.KeyGreatJob)}
		if got := mock.Texts(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected fallback %v, got %v", want, got)
		}
	})

	t.Run("empty fallback degrades silently", func(t *testing.T) {
		fake := audio.NewFake()
		fake.Errs = []error{errors.New("device gone")}
		mock := synth.NewMock()
		ch := newChannel(t, fake, mock, nil)

		ch.Play(context.Background(), narrator.Request{Key: clips.KeyGreatJob})

		if mock.CallCount() != 0 {
			t.Errorf("empty fallback must not invoke synthesis, got %d calls", mock.CallCount())
		}
		if st := ch.Status(); st != narrator.StatusIdle {
			t.Errorf("expected idle, got %s", st)
		}
	})

	t.Run("unknown key speaks the fallback text", func(t *testing.T) {
		fake := audio.NewFake()
		mock := synth.NewMock()
		ch := newChannel(t, fake, mock, nil)

		ch.Play(context.Background(), narrator.Request{Key: "no_such_clip", FallbackText: "hello there"})

		if got := mock.Texts(); !reflect.DeepEqual(got, []string{"hello there"}) {
			t.Errorf("expected fallback text, got %v", got)
		}
		if fake.StartCount() != 0 {
			t.Errorf("unknown key must not start playback, got %d", fake.StartCount())
		}
	})
}

func TestChannelGatedPlayback(t *testing.T) {
	fake := audio.NewFake()
	mock := synth.NewMock()
	gate := audio.NewGate(fake, true, nil)
	gestures := narrator.NewGestures()
	ch := newChannel(t, gate, mock, gestures)

	playDone := make(chan struct{})
	go func() {
		ch.Play(context.Background(), narrator.ClipRequest(clips.KeyTapToStart))
		close(playDone)
	}()

	t.Run("denied playback holds, does not fall back", func(t *testing.T) {
		waitFor(t, func() bool { return gestures.Waiting() == 1 })

		if st := ch.Status(); st != narrator.StatusSpeaking {
			t.Errorf("held request must stay speaking, got %s", st)
		}
		if mock.CallCount() != 0 {
			t.Errorf("gated playback must not fall back to synthesis, got %d calls", mock.CallCount())
		}
		if fake.StartCount() != 0 {
			t.Errorf("nothing should have played yet, got %d", fake.StartCount())
		}
	})

	t.Run("gesture without unlock re-arms the wait", func(t *testing.T) {
		// The gate is still locked: the retry fails again and the request
		// goes back to waiting for the next gesture.
		gestures.Notify()
		waitFor(t, func() bool { return gestures.Waiting() == 1 })
		if fake.StartCount() != 0 {
			t.Errorf("locked gate must keep refusing, got %d starts", fake.StartCount())
		}
	})

	t.Run("unlock plus gesture retries exactly once", func(t *testing.T) {
		gate.Unlock()
		gestures.Notify()
		waitDone(t, playDone)

		if fake.StartCount() != 1 {
			t.Errorf("expected exactly one playback after unlock, got %d", fake.StartCount())
		}
		if mock.CallCount() != 0 {
			t.Errorf("recovered clip must not reach synthesis, got %d calls", mock.CallCount())
		}
		if st := ch.Status(); st != narrator.StatusIdle {
			t.Errorf("expected idle after recovery, got %s", st)
		}
	})
}

func TestChannelGestureDuringDeniedStart(t *testing.T) {
	// The unlock tap can land while the denied start attempt is still in
	// flight; the held request must still wake on it instead of waiting
	// for a gesture that already happened.
	gestures := narrator.NewGestures()
	inner := audio.NewFake()
	denied := false
	out := &audio.Fake{StartFunc: func(pcm []byte, format audio.Format) (audio.Playback, error) {
		if !denied {
			denied = true
			gestures.Notify()
			return nil, audio.ErrNotAllowed
		}
		return inner.Start(pcm, format)
	}}
	ch := newChannel(t, out, synth.NewMock(), gestures)

	playDone := make(chan struct{})
	go func() {
		ch.Play(context.Background(), narrator.ClipRequest(clips.KeyWelcome))
		close(playDone)
	}()
	waitDone(t, playDone)

	if inner.StartCount() != 1 {
		t.Errorf("expected the retry to play the clip, got %d starts", inner.StartCount())
	}
	if st := ch.Status(); st != narrator.StatusIdle {
		t.Errorf("expected idle after recovery, got %s", st)
	}
}

func TestChannelInterrupt(t *testing.T) {
	t.Run("stops an active playback", func(t *testing.T) {
		fake := &audio.Fake{} // hand-driven playbacks
		ch := newChannel(t, fake, synth.NewMock(), nil)

		playDone := make(chan struct{})
		go func() {
			ch.Play(context.Background(), narrator.ClipRequest(clips.KeyWelcome))
			close(playDone)
		}()
		waitFor(t, func() bool { return fake.StartCount() == 1 })

		ch.Interrupt()
		waitDone(t, playDone)

		if pb := fake.Starts()[0]; !pb.Stopped() {
			t.Error("interrupt should stop the sounding playback")
		}
	})

	t.Run("releases a gated wait", func(t *testing.T) {
		gate := audio.NewGate(audio.NewFake(), true, nil)
		gestures := narrator.NewGestures()
		ch := newChannel(t, gate, synth.NewMock(), gestures)

		playDone := make(chan struct{})
		go func() {
			ch.Play(context.Background(), narrator.ClipRequest(clips.KeyWelcome))
			close(playDone)
		}()
		waitFor(t, func() bool { return gestures.Waiting() == 1 })

		ch.Interrupt()
		waitDone(t, playDone)

		if n := gestures.Waiting(); n != 0 {
			t.Errorf("interrupt should unsubscribe the gesture waiter, got %d", n)
		}
	})

	t.Run("is safe when idle and after natural completion", func(t *testing.T) {
		fake := audio.NewFake()
		ch := newChannel(t, fake, synth.NewMock(), nil)

		ch.Interrupt()
		ch.Play(context.Background(), narrator.ClipRequest(clips.KeyWelcome))
		ch.Interrupt()
		ch.Interrupt()

		if pb := fake.Starts()[0]; pb.Stopped() {
			t.Error("interrupt after completion must not count as a stop")
		}
	})
}

func TestChannelNewRequestPreemptsOldSound(t *testing.T) {
	fake := &audio.Fake{}
	ch := newChannel(t, fake, synth.NewMock(), nil)

	first := make(chan struct{})
	go func() {
		ch.Play(context.Background(), narrator.ClipRequest(clips.KeyWelcome))
		close(first)
	}()
	waitFor(t, func() bool { return fake.StartCount() == 1 })

	// A direct second Play must tear down the first sound before starting.
	second := make(chan struct{})
	go func() {
		ch.Play(context.Background(), narrator.ClipRequest(clips.KeyGoodbye))
		close(second)
	}()
	waitFor(t, func() bool { return fake.StartCount() == 2 })

	starts := fake.Starts()
	if !starts[0].Stopped() {
		t.Error("starting a new request must stop the previous sound")
	}
	starts[1].Finish()
	waitDone(t, first)
	waitDone(t, second)
}

func TestChannelTextOnly(t *testing.T) {
	t.Run("synthesizes when capable", func(t *testing.T) {
		mock := synth.NewMock()
		ch := newChannel(t, audio.NewFake(), mock, nil)

		ch.Play(context.Background(), narrator.TextRequest("count with me"))

		if got := mock.Texts(); !reflect.DeepEqual(got, []string{"count with me"}) {
			t.Errorf("expected synthesized text, got %v", got)
		}
	})

	t.Run("no capability resolves idle to idle", func(t *testing.T) {
		mock := synth.NewMock()
		mock.Unavailable = true
		ch := newChannel(t, audio.NewFake(), mock, nil)

		var mu sync.Mutex
		var started bool
		ch.SetCallbacks(func() {
			mu.Lock()
			started = true
			mu.Unlock()
		}, nil)

		ch.Play(context.Background(), narrator.TextRequest("nobody hears this"))

		mu.Lock()
		defer mu.Unlock()
		if started {
			t.Error("text with no synthesis must not enter the speaking state")
		}
		if st := ch.Status(); st != narrator.StatusIdle {
			t.Errorf("expected idle, got %s", st)
		}
		if mock.CallCount() != 0 {
			t.Errorf("unavailable engine must not be invoked, got %d calls", mock.CallCount())
		}
	})
}

func TestChannelCallbacks(t *testing.T) {
	mock := synth.NewMock()
	ch := newChannel(t, audio.NewFake(), mock, nil)

	var mu sync.Mutex
	var events []string
	ch.SetCallbacks(
		func() { mu.Lock(); events = append(events, "start"); mu.Unlock() },
		func() { mu.Lock(); events = append(events, "end"); mu.Unlock() },
	)

	ch.Play(context.Background(), narrator.ClipRequest(clips.KeyCelebrate))

	mu.Lock()
	defer mu.Unlock()
	if want := []string{"start", "end"}; !reflect.DeepEqual(events, want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}
