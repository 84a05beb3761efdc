package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"
)

// buildTestWAV constructs a minimal 16-bit PCM WAV buffer in memory.
func buildTestWAV(t *testing.T, sampleRate, channels int, pcm []int16) []byte {
	t.Helper()
	var buf bytes.Buffer
	dataSize := uint32(len(pcm) * 2)
	byteRate := uint32(sampleRate * channels * 2)
	blockAlign := uint16(channels * 2)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, blockAlign)
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	for _, s := range pcm {
		binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func TestDecodeWAVMonoRoundTrip(t *testing.T) {
	pcm := make([]int16, 16000) // 1 second at 16kHz
	for i := range pcm {
		pcm[i] = int16(1000)
	}
	raw := buildTestWAV(t, 16000, 1, pcm)

	samples, sr, ch, err := decodeWAV(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decodeWAV: %v", err)
	}
	if sr != 16000 || ch != 1 {
		t.Fatalf("sr=%d ch=%d, want 16000/1", sr, ch)
	}
	if len(samples) != len(pcm) {
		t.Fatalf("len(samples)=%d, want %d", len(samples), len(pcm))
	}
}

func TestProcessAudioDownmixAndTooShort(t *testing.T) {
	p := NewStandardPreprocessor()

	// Stereo, 16kHz, 1ms of audio: should fail as TooShort.
	shortSamples := make([]float32, 16*2) // 16 frames stereo at 16kHz = 1ms
	_, err := p.ProcessAudio(context.Background(), SamplesHandle{
		Samples: shortSamples, SampleRate: 16000, Channels: 2,
	})
	if err == nil {
		t.Fatalf("expected TooShort error, got nil")
	}

	// 200ms stereo at 8kHz: should downmix + resample successfully.
	frames := 8000 * 200 / 1000
	samples := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		samples[i*2] = 0.5
		samples[i*2+1] = -0.5
	}
	h, err := p.ProcessAudio(context.Background(), SamplesHandle{
		Samples: samples, SampleRate: 8000, Channels: 2,
	})
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	sh, ok := h.(SamplesHandle)
	if !ok {
		t.Fatalf("expected SamplesHandle, got %T", h)
	}
	if sh.SampleRate != TargetSampleRate || sh.Channels != TargetChannels {
		t.Fatalf("got sr=%d ch=%d, want %d/%d", sh.SampleRate, sh.Channels, TargetSampleRate, TargetChannels)
	}
}

func TestProcessAudioEmpty(t *testing.T) {
	p := NewStandardPreprocessor()
	_, err := p.ProcessAudio(context.Background(), SamplesHandle{SampleRate: 16000, Channels: 1})
	if err == nil {
		t.Fatalf("expected error for empty audio")
	}
}
