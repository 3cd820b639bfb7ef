package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Waveform selects the shape of a note
type Waveform int

const (
	Sine Waveform = iota
	Square
	Saw
)

// sample returns the waveform value at phase in [0, 1)
func (w Waveform) sample(phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Note is one enveloped tone
type Note struct {
	Freq    float64
	Wave    Waveform
	Length  time.Duration
	Attack  time.Duration // Linear fade-in from silence
	Release time.Duration // Linear fade-out ending at Length
}

// voice streams a Note sample by sample and ends after its length
type voice struct {
	step    float64 // Phase increment per sample
	wave    Waveform
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewVoice returns a streamer playing n at rate
func NewVoice(n Note, rate beep.SampleRate) beep.Streamer {
	return &voice{
		step:    n.Freq / float64(rate),
		wave:    n.Wave,
		total:   rate.N(n.Length),
		attack:  min(rate.N(n.Attack), rate.N(n.Length)),
		release: rate.N(n.Release),
	}
}

// gain is the envelope level at the current position
func (v *voice) gain() float64 {
	if v.pos < v.attack {
		return float64(v.pos) / float64(v.attack)
	}
	if left := v.total - v.pos; v.release > 0 && left < v.release {
		return float64(left) / float64(v.release)
	}
	return 1
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && v.pos < v.total {
		val := v.wave.sample(v.phase) * v.gain()
		samples[n] = [2]float64{val, val}

		_, v.phase = math.Modf(v.phase + v.step)
		v.pos++
		n++
	}
	return n, n > 0
}

func (v *voice) Err() error { return nil }

// scaled applies a linear gain through effects.Volume, which works in log2
// space; zero or less is silent
func scaled(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Synthesize builds the streamer for c. Nil for unknown cues.
func Synthesize(c Cue, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	play := func(n Note) beep.Streamer { return NewVoice(n, rate) }

	var s beep.Streamer
	switch c {
	case CueVisit:
		s = play(Note{Freq: 660, Wave: Sine, Length: visitDuration, Attack: visitAttack, Release: visitRelease})
	case CuePath:
		s = beep.Mix(
			scaled(play(Note{Freq: 880, Wave: Sine, Length: pathDuration, Attack: pathAttack, Release: pathRelease}), 0.7),
			scaled(play(Note{Freq: 1760, Wave: Sine, Length: pathDuration, Attack: pathAttack, Release: pathRelease / 2}), 0.3),
		)
	case CueFound:
		s = beep.Seq(
			play(Note{Freq: 987.77, Wave: Square, Length: foundNote1Duration, Attack: foundAttack, Release: foundNote1Release}),
			play(Note{Freq: 1318.51, Wave: Square, Length: foundNote2Duration, Attack: foundAttack, Release: foundNote2Release}),
		)
	case CueNotFound:
		s = play(Note{Freq: 90, Wave: Saw, Length: failDuration, Attack: failAttack, Release: failRelease})
	case CueReject:
		s = play(Note{Freq: 120, Wave: Saw, Length: rejectDuration, Attack: rejectAttack, Release: rejectRelease})
	default:
		return nil
	}
	return scaled(s, cfg.MasterVolume*cfg.cueVolume(c))
}
