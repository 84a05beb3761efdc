package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Preprocessor is the C3 plugin contract.
type Preprocessor interface {
	Setup(ctx context.Context) error
	Teardown(ctx context.Context) error
	ProcessAudio(ctx context.Context, h Handle) (Handle, error)
}

// StandardPreprocessor implements decode -> downmix -> resample ->
// normalize, guaranteeing the mono/16kHz/float32-in-[-1,1] handle the rest
// of the core assumes.
type StandardPreprocessor struct {
	DisablePeakNormalize bool
}

// NewStandardPreprocessor builds the default preprocessor.
func NewStandardPreprocessor() *StandardPreprocessor {
	return &StandardPreprocessor{}
}

func (p *StandardPreprocessor) Setup(ctx context.Context) error    { return nil }
func (p *StandardPreprocessor) Teardown(ctx context.Context) error { return nil }

// ProcessAudio validates and decodes h, then downmixes, resamples and
// (unless disabled) peak-normalizes it into a mono 16kHz SamplesHandle.
func (p *StandardPreprocessor) ProcessAudio(ctx context.Context, h Handle) (Handle, error) {
	samples, sampleRate, channels, err := p.decode(ctx, h)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrEmptyAudio
	}

	durationMS := float64(len(samples)) / float64(channels) / float64(sampleRate) * 1000
	if durationMS < MinDurationMS {
		return nil, fmt.Errorf("%w: %.1fms < %dms", ErrTooShort, durationMS, MinDurationMS)
	}

	mono := downmix(samples, channels)
	resampled := resampleLinear(mono, sampleRate, TargetSampleRate)
	if !p.DisablePeakNormalize {
		resampled = normalizePeak(resampled, TargetPeakDBFS)
	}

	return SamplesHandle{
		Samples:    resampled,
		SampleRate: TargetSampleRate,
		Channels:   TargetChannels,
	}, nil
}

func (p *StandardPreprocessor) decode(ctx context.Context, h Handle) (samples []float32, sampleRate, channels int, err error) {
	switch v := h.(type) {
	case SamplesHandle:
		return v.Samples, v.SampleRate, v.Channels, nil
	case PathHandle:
		if err := ctx.Err(); err != nil {
			return nil, 0, 0, err
		}
		data, err := os.ReadFile(v.Path)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("reading audio file: %w", err)
		}
		return p.decodeBytes(data, v.Path)
	default:
		return nil, 0, 0, fmt.Errorf("%w: unrecognized audio handle type %T", ErrUnsupportedFormat, h)
	}
}

func (p *StandardPreprocessor) decodeBytes(data []byte, hintPath string) ([]float32, int, int, error) {
	if bytes.HasPrefix(data, []byte("RIFF")) {
		return decodeWAV(bytes.NewReader(data))
	}
	if strings.HasSuffix(strings.ToLower(hintPath), ".mp3") || looksLikeMP3(data) {
		return decodeMP3(bytes.NewReader(data))
	}
	// Fall back to the file extension when the byte signature doesn't
	// match. A .wav file without a RIFF header still reaches decodeWAV, which
	// rejects it with ErrUnsupportedFormat.
	switch strings.ToLower(filepath.Ext(hintPath)) {
	case ".wav":
		return decodeWAV(bytes.NewReader(data))
	case ".mp3":
		return decodeMP3(bytes.NewReader(data))
	}
	return nil, 0, 0, ErrUnsupportedFormat
}

func looksLikeMP3(data []byte) bool {
	if len(data) < 3 {
		return false
	}
	if bytes.HasPrefix(data, []byte("ID3")) {
		return true
	}
	// MPEG frame sync: 11 set bits.
	return data[0] == 0xFF && (data[1]&0xE0) == 0xE0
}
