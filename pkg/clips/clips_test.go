package clips_test

import (
	"testing"

	"github.com/bhartiamulya/EduToon/pkg/clips"
)

func TestRegistry(t *testing.T) {
	registry, err := clips.NewRegistry()
	if err != nil {
		t.Fatalf("registry construction failed: %v", err)
	}

	t.Run("every declared key resolves", func(t *testing.T) {
		for _, key := range clips.Keys() {
			clip, ok := registry.Lookup(key)
			if !ok {
				t.Errorf("key %q did not resolve", key)
				continue
			}
			if len(clip.PCM) == 0 {
				t.Errorf("key %q has empty audio", key)
			}
			if clip.Format != clips.PCMFormat {
				t.Errorf("key %q has format %+v, want %+v", key, clip.Format, clips.PCMFormat)
			}
		}
	})

	t.Run("count matches the declared set", func(t *testing.T) {
		if registry.Count() != len(clips.Keys()) {
			t.Errorf("expected %d clips, got %d", len(clips.Keys()), registry.Count())
		}
	})

	t.Run("unknown keys do not resolve", func(t *testing.T) {
		if _, ok := registry.Lookup("definitely_not_a_clip"); ok {
			t.Error("unknown key should not resolve")
		}
	})
}

func TestKeysAndLines(t *testing.T) {
	t.Run("every key has a fallback line", func(t *testing.T) {
		for _, key := range clips.Keys() {
			if clips.Line(key) == "" {
				t.Errorf("key %q has no fallback line", key)
			}
		}
	})

	t.Run("validity follows the declared set", func(t *testing.T) {
		for _, key := range clips.Keys() {
			if !clips.Valid(key) {
				t.Errorf("declared key %q reported invalid", key)
			}
		}
		if clips.Valid("nope") {
			t.Error("undeclared key reported valid")
		}
		if clips.Line("nope") != "" {
			t.Error("undeclared key should have no line")
		}
	})
}
