package delimited

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    []byte
	}{
		{"empty", []byte{}, []byte{0x00, 0x00}},
		{"one byte", []byte{0xAB}, []byte{0x01, 0x00, 0xAB}},
		{"three bytes", []byte{1, 2, 3}, []byte{0x03, 0x00, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.payload)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestEncode_LittleEndianPrefix(t *testing.T) {
	payload := make([]byte, 0x0125)

	frame, err := Encode(payload)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if frame[0] != 0x25 || frame[1] != 0x01 {
		t.Errorf("prefix = %02x %02x, want 25 01", frame[0], frame[1])
	}
	if len(frame) != HeaderSize+len(payload) {
		t.Errorf("len(frame) = %d, want %d", len(frame), HeaderSize+len(payload))
	}
}

func TestEncode_MaxPayload(t *testing.T) {
	frame, err := Encode(make([]byte, MaxPayloadSize))
	if err != nil {
		t.Fatalf("Encode(max) error = %v", err)
	}
	if frame[0] != 0xFF || frame[1] != 0xFF {
		t.Errorf("prefix = %02x %02x, want ff ff", frame[0], frame[1])
	}
}

func TestEncode_Overflow(t *testing.T) {
	_, err := Encode(make([]byte, MaxPayloadSize+1))
	if !errors.Is(err, ErrLengthOverflow) {
		t.Errorf("Encode(max+1) error = %v, want ErrLengthOverflow", err)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x00},
		[]byte("GLOBAL"),
		bytes.Repeat([]byte{0x5A}, 300),
		bytes.Repeat([]byte{0xFF}, MaxPayloadSize),
	}

	for _, payload := range payloads {
		frame, err := Encode(payload)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		got, consumed, err := Decode(frame)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("Decode() payload mismatch for len %d", len(payload))
		}
		if consumed != len(frame) {
			t.Errorf("Decode() consumed = %d, want %d", consumed, len(frame))
		}
	}
}

func TestDecode_TrailingBytesIgnored(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	frame, _ := Encode(payload)

	suffixes := [][]byte{
		{0x00},
		{1, 2, 3},
		bytes.Repeat([]byte{0xEE}, 1000),
	}

	for _, suffix := range suffixes {
		buf := append(append([]byte{}, frame...), suffix...)

		got, consumed, err := Decode(buf)
		if err != nil {
			t.Fatalf("Decode() with %d trailing bytes error = %v", len(suffix), err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("Decode() = %x, want %x", got, payload)
		}
		if consumed != len(frame) {
			t.Errorf("Decode() consumed = %d, want %d", consumed, len(frame))
		}
	}
}

func TestDecode_Truncated(t *testing.T) {
	frame, _ := Encode([]byte{1, 2, 3, 4, 5})

	tests := []struct {
		name string
		buf  []byte
	}{
		{"nil", nil},
		{"one byte", []byte{0x05}},
		{"header only", frame[:HeaderSize]},
		{"missing last byte", frame[:len(frame)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.buf)
			if !errors.Is(err, ErrTruncatedFrame) {
				t.Errorf("Decode() error = %v, want ErrTruncatedFrame", err)
			}
		})
	}
}

func TestDecode_HighByteWeight(t *testing.T) {
	// 0x0100 = 256 bytes declared; a low-byte-only reading would see 0.
	buf := append([]byte{0x00, 0x01}, bytes.Repeat([]byte{7}, 256)...)

	got, consumed, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 256 {
		t.Errorf("len(payload) = %d, want 256", len(got))
	}
	if consumed != 258 {
		t.Errorf("consumed = %d, want 258", consumed)
	}
}
