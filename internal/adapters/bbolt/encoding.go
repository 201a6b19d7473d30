// Binary encoding for timing sample blobs.
//
// Samples dominate a stored run, so they are kept out of the JSON records
// and written as a compact little-endian blob:
//
//	recordCount: uint32
//	per record:
//	  sampleCount: uint32
//	  samples:     [sampleCount]float64 (IEEE-754 bits)
package bbolt

import (
	"encoding/binary"
	"fmt"
	"math"
)

// sampleSize is the byte size of a single encoded sample.
const sampleSize = 8

// encodeSamples encodes one sample sequence per record. A single buffer is
// pre-allocated to avoid repeated growth.
func encodeSamples(sets [][]float64) ([]byte, error) {
	if uint64(len(sets)) > math.MaxUint32 {
		return nil, fmt.Errorf("too many records: %d", len(sets))
	}
	totalSize := 4
	for _, s := range sets {
		totalSize += 4 + len(s)*sampleSize
	}

	buf := make([]byte, totalSize)
	offset := 0
	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(sets)))
	offset += 4

	for _, s := range sets {
		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(s)))
		offset += 4
		for _, v := range s {
			binary.LittleEndian.PutUint64(buf[offset:], math.Float64bits(v))
			offset += sampleSize
		}
	}
	return buf, nil
}

// decodeSamples reverses encodeSamples. Every read is bounds-checked to
// avoid panics on corrupt data.
func decodeSamples(data []byte) ([][]float64, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("sample blob too short: %d bytes", len(data))
	}
	offset := 0
	count := binary.LittleEndian.Uint32(data[offset:])
	offset += 4

	// Each record needs at least its 4-byte count.
	if uint64(count)*4 > uint64(len(data)-offset) {
		return nil, fmt.Errorf("record count %d exceeds blob size %d", count, len(data))
	}
	sets := make([][]float64, count)
	for i := range sets {
		if offset+4 > len(data) {
			return nil, fmt.Errorf("truncated at record %d sample count (offset %d)", i, offset)
		}
		n := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4

		need := n * sampleSize
		if need < 0 || offset+need > len(data) {
			return nil, fmt.Errorf("truncated at record %d samples (offset %d, need %d)", i, offset, need)
		}
		s := make([]float64, n)
		for j := range s {
			s[j] = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
			offset += sampleSize
		}
		sets[i] = s
	}
	if offset != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after samples", len(data)-offset)
	}
	return sets, nil
}
