package delimited

import (
	"errors"
	"fmt"
)

const (
	// HeaderSize is the size of the length prefix in bytes.
	HeaderSize = 2

	// MaxPayloadSize is the largest payload a frame can carry.
	MaxPayloadSize = 0xFFFF
)

var (
	// ErrLengthOverflow is returned when a payload does not fit the 2-byte prefix.
	ErrLengthOverflow = errors.New("delimited: payload exceeds 65535 bytes")

	// ErrTruncatedFrame is returned when the buffer is shorter than the declared frame.
	ErrTruncatedFrame = errors.New("delimited: not enough bytes to decode frame")
)

// Encode prepends the length prefix to payload.
func Encode(payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: got %d", ErrLengthOverflow, len(payload))
	}

	frame := make([]byte, HeaderSize+len(payload))
	frame[0] = byte(len(payload))
	frame[1] = byte(len(payload) >> 8)
	copy(frame[HeaderSize:], payload)

	return frame, nil
}

// Decode returns the payload of the frame at the start of buf and the
// number of bytes the frame occupies. Anything after the frame is left
// untouched.
//
// The returned payload aliases buf.
func Decode(buf []byte) (payload []byte, consumed int, err error) {
	if len(buf) < HeaderSize {
		return nil, 0, fmt.Errorf("%w: missing length prefix", ErrTruncatedFrame)
	}

	length := PayloadLength(buf)
	if len(buf) < length+HeaderSize {
		return nil, 0, fmt.Errorf("%w: need %d, have %d", ErrTruncatedFrame, length+HeaderSize, len(buf))
	}

	return buf[HeaderSize : HeaderSize+length], HeaderSize + length, nil
}

// PayloadLength reads the declared payload length from a frame header.
// buf must hold at least HeaderSize bytes.
func PayloadLength(buf []byte) int {
	return int(buf[0]) | int(buf[1])<<8
}
