package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"testing/iotest"
)

func TestFromPCMHeaderLayout(t *testing.T) {
	pcm := make([]byte, 4800) // 100ms of 24kHz mono 16-bit
	out := FromPCM(pcm, 24000, 1, 16)

	if len(out) != HeaderSize+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", HeaderSize+len(pcm), len(out))
	}

	if string(out[0:4]) != "RIFF" {
		t.Errorf("expected RIFF marker, got %q", out[0:4])
	}
	if got, want := binary.LittleEndian.Uint32(out[4:8]), uint32(36+len(pcm)); got != want {
		t.Errorf("file size: expected %d, got %d", want, got)
	}
	if string(out[8:12]) != "WAVE" {
		t.Errorf("expected WAVE marker, got %q", out[8:12])
	}
	if string(out[12:16]) != "fmt " {
		t.Errorf("expected fmt marker, got %q", out[12:16])
	}
	if got := binary.LittleEndian.Uint32(out[16:20]); got != 16 {
		t.Errorf("subchunk1 size: expected 16, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[20:22]); got != 1 {
		t.Errorf("audio format: expected 1 (PCM), got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[22:24]); got != 1 {
		t.Errorf("channels: expected 1, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[24:28]); got != 24000 {
		t.Errorf("sample rate: expected 24000, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[28:32]); got != 48000 {
		t.Errorf("byte rate: expected 48000, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[32:34]); got != 2 {
		t.Errorf("block align: expected 2, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[34:36]); got != 16 {
		t.Errorf("bits per sample: expected 16, got %d", got)
	}
	if string(out[36:40]) != "data" {
		t.Errorf("expected data marker, got %q", out[36:40])
	}
	if got, want := binary.LittleEndian.Uint32(out[40:44]), uint32(len(pcm)); got != want {
		t.Errorf("data size: expected %d, got %d", want, got)
	}
}

func TestFromPCMPayloadPassthrough(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0x7F, 0x00, 0x80}
	out := FromPCM(pcm, 24000, 1, 16)
	if !bytes.Equal(out[HeaderSize:], pcm) {
		t.Errorf("payload mutated: expected % x, got % x", pcm, out[HeaderSize:])
	}
}

func TestFromPCMEmptyPayload(t *testing.T) {
	out := FromPCM(nil, 24000, 1, 16)
	if len(out) != HeaderSize {
		t.Fatalf("expected bare header, got %d bytes", len(out))
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != 0 {
		t.Errorf("data size: expected 0, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[4:8]); got != 36 {
		t.Errorf("file size: expected 36, got %d", got)
	}
}

func TestEncodeReader(t *testing.T) {
	pcm := []byte{0x10, 0x20, 0x30, 0x40}
	out, err := EncodeReader(bytes.NewReader(pcm), 24000, 1, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, FromPCM(pcm, 24000, 1, 16)) {
		t.Error("EncodeReader output differs from FromPCM")
	}
}

func TestEncodeReaderFailure(t *testing.T) {
	readErr := errors.New("device gone")
	out, err := EncodeReader(iotest.ErrReader(readErr), 24000, 1, 16)
	if !errors.Is(err, readErr) {
		t.Errorf("expected wrapped read error, got %v", err)
	}
	if out != nil {
		t.Errorf("expected no output on read failure, got %d bytes", len(out))
	}
}

func TestReadInfoRoundTrip(t *testing.T) {
	out := FromPCM(make([]byte, 480), 24000, 1, 16)
	info, err := ReadInfo(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SampleRate != 24000 {
		t.Errorf("expected sample rate 24000, got %d", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("expected 1 channel, got %d", info.Channels)
	}
	if info.BitsPerSample != 16 {
		t.Errorf("expected 16 bits, got %d", info.BitsPerSample)
	}
}

func TestReadInfoRejectsGarbage(t *testing.T) {
	if _, err := ReadInfo([]byte("definitely not a wav file")); err == nil {
		t.Error("expected error for non-WAV input")
	}
}
