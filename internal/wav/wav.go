// Package wav wraps raw PCM bytes in a standalone WAV container.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
)

// HeaderSize is the size of the canonical WAV header in bytes.
const HeaderSize = 44

// formatPCM is the audio format code for uncompressed PCM.
const formatPCM = 1

// FromPCM prepends a canonical 44-byte WAV header to raw PCM bytes. The
// payload is carried through unmodified; multi-byte header fields are
// little-endian.
func FromPCM(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	dataSize := len(pcm)
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	header := make([]byte, HeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	return append(header, pcm...)
}

// EncodeReader reads the PCM source in full and returns it as a WAV file.
// If the source cannot be read completely, nothing is emitted.
func EncodeReader(r io.Reader, sampleRate, channels, bitsPerSample int) ([]byte, error) {
	pcm, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pcm source: %w", err)
	}
	return FromPCM(pcm, sampleRate, channels, bitsPerSample), nil
}

// Info describes the format advertised by a WAV header.
type Info struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// ReadInfo parses the header of a WAV file and returns its declared format.
func ReadInfo(data []byte) (Info, error) {
	dec := gowav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return Info{}, fmt.Errorf("invalid WAV file")
	}
	return Info{
		SampleRate:    int(dec.SampleRate),
		Channels:      int(dec.NumChans),
		BitsPerSample: int(dec.BitDepth),
	}, nil
}
