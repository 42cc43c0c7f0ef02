package audio

import (
	"encoding/binary"
	"fmt"
)

// DecodeWAV strips the RIFF container from a WAV file and returns the raw
// PCM payload with its format. Only uncompressed PCM is supported, which is
// all the bundled clips use.
func DecodeWAV(wav []byte) ([]byte, Format, error) {
	if len(wav) < 44 {
		return nil, Format{}, fmt.Errorf("%w: too short (%d bytes)", ErrBadData, len(wav))
	}

	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, Format{}, fmt.Errorf("%w: missing RIFF header", ErrBadData)
	}

	var format Format
	var pcm []byte

	// Walk chunks to find "fmt " and "data".
	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		body := pos + 8

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 || body+16 > len(wav) {
				return nil, Format{}, fmt.Errorf("%w: truncated fmt chunk", ErrBadData)
			}
			audioFormat := binary.LittleEndian.Uint16(wav[body : body+2])
			if audioFormat != 1 { // PCM
				return nil, Format{}, fmt.Errorf("%w: unsupported encoding %d", ErrBadData, audioFormat)
			}
			format.Channels = int(binary.LittleEndian.Uint16(wav[body+2 : body+4]))
			format.SampleRate = int(binary.LittleEndian.Uint32(wav[body+4 : body+8]))
			format.BitDepth = int(binary.LittleEndian.Uint16(wav[body+14 : body+16]))

		case "data":
			end := body + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			pcm = wav[body:end]
		}

		pos = body + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	if format.SampleRate == 0 {
		return nil, Format{}, fmt.Errorf("%w: fmt chunk not found", ErrBadData)
	}
	if pcm == nil {
		return nil, Format{}, fmt.Errorf("%w: data chunk not found", ErrBadData)
	}

	return pcm, format, nil
}
