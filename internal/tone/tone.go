package tone

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/sectors/internal/config"
)

// ErrDisabled is returned by New when the tone is switched off in the config.
var ErrDisabled = errors.New("tone disabled")

// decaySteps is how many time constants the envelope falls over the tone.
const decaySteps = 5.0

// Generator returns a bounded sine tone at freq Hz, dur long, with an
// exponentially decaying envelope starting at volume.
func Generator(sr beep.SampleRate, freq float64, dur time.Duration, volume float64) beep.Streamer {
	total := sr.N(dur)
	tau := float64(total) / decaySteps
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(sr)
			v := volume * math.Exp(-float64(pos)/tau) * math.Sin(2*math.Pi*freq*t)
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}

// Player plays the tap tone on the shared speaker.
type Player struct {
	sr    beep.SampleRate
	cfg   config.ToneConfig
	scope *Scope
}

// New initializes the speaker. The speaker is never closed; it lives as long
// as the program. scope may be nil.
func New(cfg config.ToneConfig, scope *Scope) (*Player, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Player{sr: sr, cfg: cfg, scope: scope}, nil
}

// Play starts one tone and returns immediately.
func (p *Player) Play() error {
	var s beep.Streamer = Generator(p.sr, p.cfg.Frequency, p.cfg.Duration, p.cfg.Volume)
	if p.scope != nil {
		s = p.scope.Wrap(s)
	}
	speaker.Play(s)
	return nil
}
