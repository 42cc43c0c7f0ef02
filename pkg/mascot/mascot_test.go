package mascot_test

import (
	"reflect"
	"testing"

	"github.com/bhartiamulya/EduToon/pkg/mascot"
)

func TestBinder(t *testing.T) {
	var seen []mascot.Expression
	b := mascot.NewBinder(func(e mascot.Expression) {
		seen = append(seen, e)
	}, nil)

	t.Run("follows narration phases", func(t *testing.T) {
		b.PlaybackStarted()
		b.PlaybackEnded()

		want := []mascot.Expression{mascot.ExpressionTalking, mascot.ExpressionIdle}
		if !reflect.DeepEqual(seen, want) {
			t.Errorf("expected %v, got %v", want, seen)
		}
	})

	t.Run("celebrate is a one-shot", func(t *testing.T) {
		seen = nil
		b.Celebrate()

		if !reflect.DeepEqual(seen, []mascot.Expression{mascot.ExpressionCelebrate}) {
			t.Errorf("expected celebrate, got %v", seen)
		}
	})
}

func TestBinderNilSink(t *testing.T) {
	b := mascot.NewBinder(nil, nil)
	b.PlaybackStarted()
	b.PlaybackEnded()
	b.Celebrate()
}
