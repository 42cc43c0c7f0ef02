package audio

import (
	"bytes"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Device plays PCM audio on the system audio device via oto.
// One Device owns the oto context; individual playbacks are cheap.
type Device struct {
	ctx    *oto.Context
	format Format
	log    *slog.Logger
}

// NewDevice opens the system audio device for the given format.
// Returns an error if the device is unavailable; callers on headless hosts
// should fall back to NewSilent.
func NewDevice(format Format, logger *slog.Logger) (*Device, error) {
	if logger == nil {
		logger = slog.Default()
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	logger.Debug("audio device ready",
		"sample_rate", format.SampleRate,
		"channels", format.Channels,
	)
	return &Device{ctx: ctx, format: format, log: logger}, nil
}

// Start begins playback of the PCM buffer. The device context has a fixed
// format; clips in a different format are resampled at build time, not here.
func (d *Device) Start(pcm []byte, format Format) (Playback, error) {
	if len(pcm) == 0 {
		return nil, ErrBadData
	}

	player := d.ctx.NewPlayer(bytes.NewReader(pcm))
	pb := &devicePlayback{player: player, done: make(chan struct{})}
	player.Play()

	go pb.wait()
	return pb, nil
}

type devicePlayback struct {
	player *oto.Player
	once   sync.Once
	done   chan struct{}
}

// wait polls the player until it drains, then finalizes.
func (p *devicePlayback) wait() {
	for p.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	p.finish()
}

func (p *devicePlayback) finish() {
	p.once.Do(func() {
		p.player.Close()
		close(p.done)
	})
}

func (p *devicePlayback) Done() <-chan struct{} {
	return p.done
}

func (p *devicePlayback) Stop() {
	p.player.Pause()
	p.finish()
}

var _ Output = (*Device)(nil)
