package checkpoints

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/holiman/uint256"
	"github.com/ronanh/intcomp"
)

// ErrBadSnapshot is returned by ReadFrom on a malformed stream.
var ErrBadSnapshot = errors.New("checkpoints: malformed snapshot")

// WriteTo serializes the trace. Keys and value limbs are written as
// two integer-compressed streams; monotone keys compress particularly
// well.
func (t *Trace) WriteTo(w io.Writer) (int64, error) {
	header := []uint64{uint64(t.size.KeyBits), uint64(t.size.ValueBits), uint64(len(t.checkpoints))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return 0, err
	}
	n := int64(8 * len(header))

	keys := make([]uint64, len(t.checkpoints))
	limbs := make([]uint64, 0, 4*len(t.checkpoints))
	for i := range t.checkpoints {
		keys[i] = t.checkpoints[i].Key
		limbs = append(limbs, t.checkpoints[i].Value[:]...)
	}

	written, err := writeCompressed(w, keys)
	n += written
	if err != nil {
		return n, err
	}
	written, err = writeCompressed(w, limbs)
	n += written
	return n, err
}

// ReadFrom replaces the trace contents, size included, with the
// stream written by WriteTo.
func (t *Trace) ReadFrom(r io.Reader) (int64, error) {
	header := make([]uint64, 3)
	if err := binary.Read(r, binary.LittleEndian, header); err != nil {
		return 0, err
	}
	n := int64(8 * len(header))

	read, keys, err := readCompressed(r)
	n += read
	if err != nil {
		return n, err
	}
	read, limbs, err := readCompressed(r)
	n += read
	if err != nil {
		return n, err
	}

	count := int(header[2])
	if len(keys) != count || len(limbs) != 4*count {
		return n, ErrBadSnapshot
	}

	t.size = Size{KeyBits: uint(header[0]), ValueBits: uint(header[1])}
	t.checkpoints = make([]Checkpoint, count)
	for i := range t.checkpoints {
		t.checkpoints[i].Key = keys[i]
		var v uint256.Int
		copy(v[:], limbs[4*i:4*i+4])
		t.checkpoints[i].Value = v
	}
	return n, nil
}

func writeCompressed(w io.Writer, input []uint64) (int64, error) {
	buffer := intcomp.CompressUint64(input, nil)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(buffer))); err != nil {
		return 0, err
	}
	if err := binary.Write(w, binary.LittleEndian, buffer); err != nil {
		return 8, err
	}
	return 8 + 8*int64(len(buffer)), nil
}

func readCompressed(r io.Reader) (int64, []uint64, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return 0, nil, err
	}
	buffer := make([]uint64, length)
	if err := binary.Read(r, binary.LittleEndian, buffer); err != nil {
		return 8, nil, err
	}
	return 8 + 8*int64(length), intcomp.UncompressUint64(buffer, nil), nil
}
