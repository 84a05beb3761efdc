package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// decodeMP3 decodes an MP3 container via github.com/hajimehoshi/go-mp3.
func decodeMP3(r io.Reader) (samples []float32, sampleRate, channels int, err error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: mp3 decode: %v", ErrUnsupportedFormat, err)
	}

	sampleRate = dec.SampleRate()
	channels = 2 // go-mp3 always emits interleaved 16-bit stereo PCM

	buf := make([]byte, 4096)
	var pcm []byte
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			pcm = append(pcm, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, 0, fmt.Errorf("mp3 decode: %w", err)
		}
	}

	if len(pcm) == 0 {
		return nil, sampleRate, channels, ErrEmptyAudio
	}

	n := len(pcm) / 2
	samples = make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
		samples[i] = float32(v) / 32768.0
	}

	return samples, sampleRate, channels, nil
}
