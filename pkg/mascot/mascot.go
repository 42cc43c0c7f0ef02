// Package mascot maps narration phases onto mascot expressions for the
// animation layer. The binder is stateless: it only reacts to the two
// transitions the playback channel reports, plus an explicit celebrate
// trigger whose duration the caller controls.
package mascot

import "log/slog"

// Expression is the mascot face requested from the animation layer.
type Expression string

const (
	// ExpressionIdle is the resting face.
	ExpressionIdle Expression = "idle"

	// ExpressionTalking is shown while narration is sounding.
	ExpressionTalking Expression = "talking"

	// ExpressionCelebrate is a one-shot celebratory face; the caller
	// decides when to return to idle.
	ExpressionCelebrate Expression = "celebrate"
)

// Sink receives expression changes; typically the websocket broadcast to
// the animation layer.
type Sink func(Expression)

// Binder is the thin side-effect between the narration engine and the
// mascot animation.
type Binder struct {
	sink Sink
	log  *slog.Logger
}

// NewBinder creates a binder emitting into sink. logger nil means
// slog.Default.
func NewBinder(sink Sink, logger *slog.Logger) *Binder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binder{sink: sink, log: logger.With("component", "mascot.binder")}
}

// PlaybackStarted is wired to the playback channel's start callback.
func (b *Binder) PlaybackStarted() {
	b.express(ExpressionTalking)
}

// PlaybackEnded is wired to the playback channel's end callback.
func (b *Binder) PlaybackEnded() {
	b.express(ExpressionIdle)
}

// Celebrate emits the one-shot celebratory expression. It does not time
// the return to idle; the triggering game logic owns that delay.
func (b *Binder) Celebrate() {
	b.express(ExpressionCelebrate)
}

func (b *Binder) express(e Expression) {
	b.log.Debug("mascot expression", "expression", e)
	if b.sink != nil {
		b.sink(e)
	}
}
