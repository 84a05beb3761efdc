// Package audio implements the C3 Preprocessor: container validation,
// decoding, downmixing, resampling and peak normalization into the mono
// 16kHz float32 handle the rest of the core assumes.
package audio

import "fmt"

// Handle is a tagged audio value: either a path-backed reference or decoded
// samples in memory. Represented as an interface + type switch rather than
// a sum-type struct, the same tagged-construction idiom an engine-type
// selector switch uses to pick a concrete implementation.
type Handle interface {
	AudioHandle()
}

// PathHandle references an on-disk audio file, not yet decoded.
type PathHandle struct {
	Path       string
	SampleRate int
	Channels   int
}

func (PathHandle) AudioHandle() {}

// SamplesHandle holds decoded PCM samples in memory.
type SamplesHandle struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

func (SamplesHandle) AudioHandle() {}

const (
	// TargetSampleRate is the sample rate every handle is resampled to.
	TargetSampleRate = 16000
	// TargetChannels is the channel count every handle is downmixed to.
	TargetChannels = 1
	// MinDurationMS is the minimum audio duration accepted; shorter clips
	// fail fast with ErrTooShort rather than being passed to ASR.
	MinDurationMS = 80
	// TargetPeakDBFS is the peak amplitude normalize targets.
	TargetPeakDBFS = -1.0
)

// Sentinel errors for the three named failure modes of §4.3.
var (
	ErrUnsupportedFormat = fmt.Errorf("unsupported audio format")
	ErrEmptyAudio        = fmt.Errorf("empty audio: zero frames after decode")
	ErrTooShort          = fmt.Errorf("audio shorter than minimum duration")
)
