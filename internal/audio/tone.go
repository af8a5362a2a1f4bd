package audio

import (
	"fmt"
	"io"
	"math"
)

// Waveform 波形类型
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
)

// Tone describes one synthesized note.
// A zero Frequency produces silence of the given duration (a rest).
type Tone struct {
	Frequency float64  // Hz
	Duration  float64  // seconds
	Volume    float64  // 0.0 ~ 1.0
	Wave      Waveform // waveform shape
}

// fadeSeconds 每个音符首尾的淡入淡出时长，避免爆音
const fadeSeconds = 0.005

// Synthesize renders the tones one after another into 16-bit signed
// little-endian stereo PCM, the format Ebitengine's audio.Player expects.
//
// Parameters:
//   - sampleRate: output sample rate in Hz (must be > 0)
//   - tones: note sequence
//
// Returns:
//   - []byte: interleaved L/R PCM bytes (4 bytes per frame)
//   - error: invalid sample rate or tone parameters
func Synthesize(sampleRate int, tones ...Tone) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	total := 0
	for i, tone := range tones {
		if tone.Duration < 0 || tone.Frequency < 0 {
			return nil, fmt.Errorf("invalid tone %d: frequency=%.1f duration=%.3f", i, tone.Frequency, tone.Duration)
		}
		total += frameCount(sampleRate, tone.Duration)
	}

	out := make([]byte, 0, total*4)
	for _, tone := range tones {
		frames := frameCount(sampleRate, tone.Duration)
		fade := int(float64(sampleRate) * fadeSeconds)
		volume := clamp01(tone.Volume)

		for i := 0; i < frames; i++ {
			var v float64
			if tone.Frequency > 0 {
				phase := math.Mod(float64(i)*tone.Frequency/float64(sampleRate), 1.0)
				v = sample(tone.Wave, phase) * volume * envelope(i, frames, fade)
			}
			s := int16(v * math.MaxInt16)
			// 左右声道写入相同样本
			out = append(out, byte(s), byte(s>>8), byte(s), byte(s>>8))
		}
	}
	return out, nil
}

func frameCount(sampleRate int, seconds float64) int {
	return int(float64(sampleRate) * seconds)
}

// sample 计算单周期内 phase (0~1) 处的波形值 (-1~1)
func sample(wave Waveform, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope 线性淡入淡出
func envelope(i, frames, fade int) float64 {
	if fade <= 0 {
		return 1
	}
	if i < fade {
		return float64(i) / float64(fade)
	}
	if remaining := frames - 1 - i; remaining < fade {
		return float64(remaining) / float64(fade)
	}
	return 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Stream wraps synthesized PCM bytes as an io.ReadSeeker with a known length.
type Stream struct {
	data   []byte
	offset int64
}

// NewStream creates a stream over PCM data.
func NewStream(data []byte) *Stream {
	return &Stream{data: data}
}

// Read reads PCM data into p.
// Implements io.Reader interface.
func (s *Stream) Read(p []byte) (n int, err error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}

	n = copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
// Implements io.Seeker interface.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	s.offset = newOffset
	return newOffset, nil
}

// Length returns the total length of the PCM data in bytes.
func (s *Stream) Length() int64 {
	return int64(len(s.data))
}
