// Package endian provides byte order utilities for serializing signal chunk
// payloads and fit result records.
//
// It combines the ByteOrder and AppendByteOrder interfaces from the standard
// encoding/binary package into a unified EndianEngine interface, and adds
// float64-slice helpers for the fixed-width numeric payloads used by the
// signal chunk store and the result blob codec.
//
// All functions and methods in this package are safe for concurrent use. The
// returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian,
// making it fully compatible with existing Go code while providing access to
// both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine, the default for all
// persisted hyperspy payloads.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendFloat64 appends the IEEE 754 bit pattern of v to buf using the given
// engine and returns the extended slice.
func AppendFloat64(engine EndianEngine, buf []byte, v float64) []byte {
	return engine.AppendUint64(buf, math.Float64bits(v))
}

// Float64 decodes one float64 from the first 8 bytes of data.
func Float64(engine EndianEngine, data []byte) float64 {
	return math.Float64frombits(engine.Uint64(data))
}

// AppendFloat64Slice appends every element of values to buf and returns the
// extended slice. The payload occupies exactly 8*len(values) bytes.
func AppendFloat64Slice(engine EndianEngine, buf []byte, values []float64) []byte {
	for _, v := range values {
		buf = engine.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

// DecodeFloat64Slice decodes count float64 values from data into a newly
// allocated slice. The caller must guarantee len(data) >= 8*count.
func DecodeFloat64Slice(engine EndianEngine, data []byte, count int) []float64 {
	values := make([]float64, count)
	for i := range count {
		values[i] = math.Float64frombits(engine.Uint64(data[i*8:]))
	}

	return values
}
