// Package delimited frames serialized messages for transport.
//
// A frame is a 2-byte little-endian length prefix followed by exactly
// that many payload bytes:
//
//	+--------+--------+------------------+
//	| len lo | len hi | payload (len B)  |
//	+--------+--------+------------------+
//
// The codec knows nothing about the payload schema. Bytes following a
// complete frame are ignored by Decode, so receivers may hand over
// over-allocated buffers.
package delimited
