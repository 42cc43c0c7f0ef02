package clips

import (
	"embed"
	"fmt"

	"github.com/bhartiamulya/EduToon/pkg/audio"
)

//go:embed data/*.wav
var embedded embed.FS

// PCMFormat is the format all bundled recordings share. Recordings are
// normalized at build time; NewRegistry rejects anything else.
var PCMFormat = audio.Format{SampleRate: 22050, Channels: 1, BitDepth: 16}

// Clip is a decoded, playable recording.
type Clip struct {
	Key    Key
	PCM    []byte
	Format audio.Format
}

// Registry maps voice keys to decoded clips. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	clips map[Key]Clip
}

// NewRegistry loads and validates every embedded clip. An error here means
// the build itself is broken (a declared key without a playable recording),
// so callers should treat it as fatal.
func NewRegistry() (*Registry, error) {
	r := &Registry{clips: make(map[Key]Clip, len(lines))}

	for _, key := range Keys() {
		data, err := embedded.ReadFile(fmt.Sprintf("data/%s.wav", key))
		if err != nil {
			return nil, fmt.Errorf("clip %q has no recording: %w", key, err)
		}

		pcm, format, err := audio.DecodeWAV(data)
		if err != nil {
			return nil, fmt.Errorf("clip %q is not playable: %w", key, err)
		}
		if format != PCMFormat {
			return nil, fmt.Errorf("clip %q has format %+v, want %+v", key, format, PCMFormat)
		}

		r.clips[key] = Clip{Key: key, PCM: pcm, Format: format}
	}

	return r, nil
}

// Lookup resolves a key to its clip. ok is false only for keys outside the
// declared set; every declared key resolves.
func (r *Registry) Lookup(key Key) (Clip, bool) {
	clip, ok := r.clips[key]
	return clip, ok
}

// Count returns the number of loaded clips.
func (r *Registry) Count() int {
	return len(r.clips)
}
