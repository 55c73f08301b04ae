// Package audio plays a local track and turns what is playing into a rhythm
// level for the scene.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
)

// ErrUnsupported is returned for files that have no decoder.
var ErrUnsupported = errors.New("audio: unsupported file type")

type decodeFunc func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

func decoderFor(path string) (decodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(rc) }, nil
	case ".mp3":
		return mp3.Decode, nil
	case ".flac":
		return func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(rc) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Player owns the speaker and the currently playing track.
type Player struct {
	ringSize  int
	bandCount int
	smoothing float64

	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *tap
	paused   bool
	initDone bool

	bands []float64
}

// NewPlayer creates an idle player.
func NewPlayer(ringSize, bandCount int, smoothing float64) *Player {
	return &Player{ringSize: ringSize, bandCount: bandCount, smoothing: smoothing}
}

// OpenDialog asks for a file and plays it. Cancelling is not an error.
func (p *Player) OpenDialog() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, p.Load(filename)
}

// Load decodes path and starts playing it, replacing any current track.
func (p *Player) Load(path string) error {
	decode, err := decoderFor(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return err
	}

	t := newTap(streamer, p.ringSize)
	ctrl := &beep.Ctrl{Streamer: t}

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
	default:
		speaker.Clear()
	}
	p.closeLocked()

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.paused = false

	// the callback runs under the speaker lock, so release the track elsewhere
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		go p.finished(streamer)
	})))
	return nil
}

func (p *Player) finished(streamer beep.StreamSeekCloser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == streamer {
		p.closeLocked()
	}
}

// TogglePause pauses or resumes the current track.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Playing reports whether a track is loaded and not paused.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streamer != nil && !p.paused
}

// Update refreshes the band levels from recent samples and returns the
// overall rhythm level. It returns 0 while nothing plays.
func (p *Player) Update() float64 {
	p.mu.Lock()
	t, paused := p.tap, p.paused
	p.mu.Unlock()
	if t == nil || paused {
		p.bands = Bands(nil, p.bandCount, nil, p.smoothing)
		return 0
	}
	p.bands = Bands(t.snapshot(2048), p.bandCount, p.bands, p.smoothing)
	return Level(p.bands)
}

// Bands returns the last computed band levels.
func (p *Player) Bands() []float64 {
	return p.bands
}

// Progress returns the playback position and track length.
func (p *Player) Progress() (pos, total time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	pos = p.format.SampleRate.D(p.streamer.Position())
	total = p.format.SampleRate.D(p.streamer.Len())
	speaker.Unlock()
	return pos, total
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		speaker.Clear()
	}
	p.closeLocked()
}

func (p *Player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
}
