package model

import (
	"fmt"
	"math"

	"github.com/suvrajeet01/hyperspy/compress"
	"github.com/suvrajeet01/hyperspy/endian"
	"github.com/suvrajeet01/hyperspy/errs"
	"github.com/suvrajeet01/hyperspy/format"
	"github.com/suvrajeet01/hyperspy/internal/hash"
	"github.com/suvrajeet01/hyperspy/internal/pool"
)

// Result blob layout, all integers little-endian:
//
//	magic      uint32
//	version    uint8
//	compress   uint8   format.CompressionType of the record payload
//	navRank    uint16
//	numParams  uint16
//	reserved   uint16
//	navShape   navRank x uint32
//	columnIDs  numParams x uint64   xxhash64 of the parameter labels
//	labels     numParams x (uint16 length + bytes)
//	payloadLen uint32
//	payload    compressed records, one per position in row-major order:
//	           numParams x float64 values, numParams x float64 stderrs,
//	           float64 reduced chi-squared, uint32 iterations,
//	           uint8 converged, uint8 fitted
const (
	resultMagic   uint32 = 0x52505348
	resultVersion uint8  = 1
)

// EncodeResults serializes a result store into a self-describing blob,
// compressing the record payload with the given codec. Parameter labels are
// identified by their xxhash64 column IDs; two labels hashing to the same ID
// are rejected with errs.ErrHashCollision before anything is written.
func EncodeResults(store *ResultStore, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.CodecFor(compression)
	if err != nil {
		return nil, err
	}

	k := store.NumParameters()
	ids := make([]uint64, k)
	seen := make(map[uint64]string, k)
	for i, label := range store.labels {
		id := hash.ID(label)
		if prev, ok := seen[id]; ok && prev != label {
			return nil, fmt.Errorf("%w: labels %q and %q share column id %#x",
				errs.ErrHashCollision, prev, label, id)
		}
		seen[id] = label
		ids[i] = id
	}

	engine := endian.GetLittleEndianEngine()

	recordSize := 16*k + 8 + 4 + 2
	raw := pool.GetByteBuffer()
	defer pool.PutByteBuffer(raw)
	payload := raw.B[:0]
	for flat := 0; flat < store.size; flat++ {
		off := flat * k
		payload = endian.AppendFloat64Slice(engine, payload, store.values[off:off+k])
		payload = endian.AppendFloat64Slice(engine, payload, store.stderrs[off:off+k])
		payload = endian.AppendFloat64(engine, payload, store.chisq[flat])
		payload = engine.AppendUint32(payload, uint32(store.iters[flat]))
		payload = append(payload, boolByte(store.converged[flat]), boolByte(store.fitted[flat]))
	}
	raw.B = payload
	if len(payload) != store.size*recordSize {
		return nil, fmt.Errorf("%w: payload %d bytes, want %d",
			errs.ErrInvalidPayloadSize, len(payload), store.size*recordSize)
	}

	packed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 12+4*len(store.navShape)+8*k+len(packed)+64)
	buf = engine.AppendUint32(buf, resultMagic)
	buf = append(buf, resultVersion, byte(compression))
	buf = engine.AppendUint16(buf, uint16(len(store.navShape)))
	buf = engine.AppendUint16(buf, uint16(k))
	buf = engine.AppendUint16(buf, 0)
	for _, n := range store.navShape {
		buf = engine.AppendUint32(buf, uint32(n))
	}
	for _, id := range ids {
		buf = engine.AppendUint64(buf, id)
	}
	for _, label := range store.labels {
		buf = engine.AppendUint16(buf, uint16(len(label)))
		buf = append(buf, label...)
	}
	buf = engine.AppendUint32(buf, uint32(len(packed)))
	buf = append(buf, packed...)
	return buf, nil
}

// DecodeResults reconstructs a result store from a blob produced by
// EncodeResults. The stored column IDs are verified against the decoded
// labels, so silent label corruption surfaces as errs.ErrHashCollision.
func DecodeResults(data []byte) (*ResultStore, error) {
	engine := endian.GetLittleEndianEngine()

	if len(data) < 12 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}
	if magic := engine.Uint32(data[0:4]); magic != resultMagic {
		return nil, fmt.Errorf("%w: %#x", errs.ErrInvalidMagicNumber, magic)
	}
	if data[4] != resultVersion {
		return nil, fmt.Errorf("%w: blob version %d", errs.ErrUnsupportedVersion, data[4])
	}
	compression := format.CompressionType(data[5])
	codec, err := compress.CodecFor(compression)
	if err != nil {
		return nil, err
	}
	rank := int(engine.Uint16(data[6:8]))
	k := int(engine.Uint16(data[8:10]))
	pos := 12

	if len(data) < pos+4*rank+8*k {
		return nil, fmt.Errorf("%w: truncated at shape table", errs.ErrInvalidHeaderSize)
	}
	navShape := make([]int, rank)
	for i := range navShape {
		navShape[i] = int(engine.Uint32(data[pos : pos+4]))
		pos += 4
	}
	ids := make([]uint64, k)
	for i := range ids {
		ids[i] = engine.Uint64(data[pos : pos+8])
		pos += 8
	}
	labels := make([]string, k)
	for i := range labels {
		if len(data) < pos+2 {
			return nil, fmt.Errorf("%w: truncated at label table", errs.ErrInvalidHeaderSize)
		}
		l := int(engine.Uint16(data[pos : pos+2]))
		pos += 2
		if len(data) < pos+l {
			return nil, fmt.Errorf("%w: truncated label", errs.ErrInvalidHeaderSize)
		}
		labels[i] = string(data[pos : pos+l])
		pos += l
		if hash.ID(labels[i]) != ids[i] {
			return nil, fmt.Errorf("%w: label %q does not match column id %#x",
				errs.ErrHashCollision, labels[i], ids[i])
		}
	}

	if len(data) < pos+4 {
		return nil, fmt.Errorf("%w: truncated at payload length", errs.ErrInvalidHeaderSize)
	}
	packedLen := int(engine.Uint32(data[pos : pos+4]))
	pos += 4
	if len(data) != pos+packedLen {
		return nil, fmt.Errorf("%w: %d payload bytes, header says %d",
			errs.ErrInvalidPayloadSize, len(data)-pos, packedLen)
	}

	payload, err := codec.Decompress(data[pos:])
	if err != nil {
		return nil, err
	}

	store, err := NewResultStore(navShape, labels)
	if err != nil {
		return nil, err
	}
	recordSize := 16*k + 8 + 4 + 2
	if len(payload) != store.size*recordSize {
		return nil, fmt.Errorf("%w: %d record bytes for %d positions",
			errs.ErrInvalidPayloadSize, len(payload), store.size)
	}

	for flat := 0; flat < store.size; flat++ {
		rec := payload[flat*recordSize:]
		off := flat * k
		copy(store.values[off:off+k], endian.DecodeFloat64Slice(engine, rec, k))
		copy(store.stderrs[off:off+k], endian.DecodeFloat64Slice(engine, rec[8*k:], k))
		store.chisq[flat] = endian.Float64(engine, rec[16*k:])
		store.iters[flat] = int(engine.Uint32(rec[16*k+8 : 16*k+12]))
		store.converged[flat] = rec[16*k+12] != 0
		store.fitted[flat] = rec[16*k+13] != 0
		if !store.fitted[flat] {
			// Keep the NaN sentinel views consistent for entries that were
			// never fitted before encoding.
			fillNaN(store.values[off : off+k])
			fillNaN(store.stderrs[off : off+k])
			store.chisq[flat] = math.NaN()
		}
	}
	return store, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
