package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// decodeWAV parses a RIFF/WAVE container holding 16-bit PCM, the format the
// teacher's own session.WAVWriter emits. Unlike that writer this function
// parses rather than produces the container.
func decodeWAV(r io.Reader) (samples []float32, sampleRate, channels int, err error) {
	var riffHeader [12]byte
	if _, err := io.ReadFull(r, riffHeader[:]); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: short RIFF header: %v", ErrUnsupportedFormat, err)
	}
	if string(riffHeader[0:4]) != "RIFF" || string(riffHeader[8:12]) != "WAVE" {
		return nil, 0, 0, fmt.Errorf("%w: not a RIFF/WAVE container", ErrUnsupportedFormat)
	}

	var bitsPerSample uint16
	var dataSize uint32
	var haveFmt, haveData bool

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r, chunkHeader[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, 0, 0, fmt.Errorf("reading chunk header: %w", err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, 0, 0, fmt.Errorf("reading fmt chunk: %w", err)
			}
			if len(body) < 16 {
				return nil, 0, 0, fmt.Errorf("%w: fmt chunk too short", ErrUnsupportedFormat)
			}
			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			if audioFormat != 1 {
				return nil, 0, 0, fmt.Errorf("%w: non-PCM audio format %d", ErrUnsupportedFormat, audioFormat)
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample = binary.LittleEndian.Uint16(body[14:16])
			haveFmt = true
		case "data":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, 0, 0, fmt.Errorf("reading data chunk: %w", err)
			}
			dataSize = chunkSize
			samples, err = pcm16ToFloat32(body)
			if err != nil {
				return nil, 0, 0, err
			}
			haveData = true
		default:
			// Skip unknown chunks (padded to even length per RIFF spec).
			skip := int64(chunkSize)
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, 0, 0, fmt.Errorf("skipping chunk %q: %w", chunkID, err)
			}
		}
	}

	if !haveFmt {
		return nil, 0, 0, fmt.Errorf("%w: missing fmt chunk", ErrUnsupportedFormat)
	}
	if bitsPerSample != 16 {
		return nil, 0, 0, fmt.Errorf("%w: expected 16-bit PCM, got %d-bit", ErrUnsupportedFormat, bitsPerSample)
	}
	if !haveData || dataSize == 0 {
		return nil, sampleRate, channels, ErrEmptyAudio
	}

	return samples, sampleRate, channels, nil
}

func pcm16ToFloat32(data []byte) ([]float32, error) {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	n := len(data) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
		out[i] = float32(v) / 32768.0
	}
	return out, nil
}
