// Package checkpoints provides an append-only log of (key, value)
// pairs with non-decreasing keys and binary-searchable historical
// lookups, the shape used for vote and balance snapshots.
package checkpoints

import (
	"errors"
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

// ErrUnorderedInsertion is returned by Push when the new key is
// smaller than the current tail key.
var ErrUnorderedInsertion = errors.New("checkpoints: unordered insertion")

// Errors for entries that do not fit the trace's declared bit widths.
var (
	ErrKeyOverflow   = errors.New("checkpoints: key exceeds trace key width")
	ErrValueOverflow = errors.New("checkpoints: value exceeds trace value width")
)

// Size fixes the bit widths of a trace's keys and values. Keys wider
// than 64 bits are capped at 64, the native key representation.
type Size struct {
	KeyBits   uint
	ValueBits uint
}

// Standard sizes, matching the 256-bit packing of one storage word
// per checkpoint.
var (
	S160 = Size{KeyBits: 96, ValueBits: 160}
	S208 = Size{KeyBits: 48, ValueBits: 208}
	S224 = Size{KeyBits: 32, ValueBits: 224}
)

// Checkpoint is a single (key, value) entry.
type Checkpoint struct {
	Key   uint64
	Value uint256.Int
}

// Trace is an ordered checkpoint log. The zero value is not usable;
// call NewTrace.
type Trace struct {
	size        Size
	checkpoints []Checkpoint
}

// NewTrace returns an empty trace with the given size.
func NewTrace(size Size) *Trace {
	return &Trace{size: size}
}

// Size returns the trace's bit widths.
func (t *Trace) Size() Size { return t.size }

// Len returns the number of checkpoints.
func (t *Trace) Len() int { return len(t.checkpoints) }

// At returns the checkpoint at index i. It panics when i is out of
// bounds.
func (t *Trace) At(i int) Checkpoint {
	if i < 0 || i >= len(t.checkpoints) {
		panic(fmt.Sprintf("checkpoints: index %d out of range [0, %d)", i, len(t.checkpoints)))
	}
	return t.checkpoints[i]
}

// Latest returns the tail value, or zero for an empty trace.
func (t *Trace) Latest() uint256.Int {
	if len(t.checkpoints) == 0 {
		return uint256.Int{}
	}
	return t.checkpoints[len(t.checkpoints)-1].Value
}

// LatestCheckpoint returns the tail entry and whether one exists.
func (t *Trace) LatestCheckpoint() (key uint64, value uint256.Int, ok bool) {
	if len(t.checkpoints) == 0 {
		return 0, uint256.Int{}, false
	}
	tail := t.checkpoints[len(t.checkpoints)-1]
	return tail.Key, tail.Value, true
}

// Push appends (key, value). An equal tail key overwrites the tail
// value instead of appending; a smaller key fails with
// ErrUnorderedInsertion and leaves the trace unchanged. It returns the
// previous tail value (zero for an empty trace) and the new one.
func (t *Trace) Push(key uint64, value *uint256.Int) (prev, cur uint256.Int, err error) {
	if err := t.check(key, value); err != nil {
		return uint256.Int{}, uint256.Int{}, err
	}
	cur = *value
	if len(t.checkpoints) == 0 {
		t.checkpoints = append(t.checkpoints, Checkpoint{Key: key, Value: cur})
		return uint256.Int{}, cur, nil
	}
	tail := &t.checkpoints[len(t.checkpoints)-1]
	prev = tail.Value
	switch {
	case key < tail.Key:
		return uint256.Int{}, uint256.Int{}, ErrUnorderedInsertion
	case key == tail.Key:
		tail.Value = cur
	default:
		t.checkpoints = append(t.checkpoints, Checkpoint{Key: key, Value: cur})
	}
	return prev, cur, nil
}

func (t *Trace) check(key uint64, value *uint256.Int) error {
	if t.size.KeyBits < 64 && key>>t.size.KeyBits != 0 {
		return ErrKeyOverflow
	}
	if uint(value.BitLen()) > t.size.ValueBits {
		return ErrValueOverflow
	}
	return nil
}

// LowerLookup returns the value of the first checkpoint with key >=
// key, or zero if there is none.
func (t *Trace) LowerLookup(key uint64) uint256.Int {
	pos := t.lowerBinaryLookup(key, 0, len(t.checkpoints))
	if pos == len(t.checkpoints) {
		return uint256.Int{}
	}
	return t.checkpoints[pos].Value
}

// UpperLookup returns the value of the last checkpoint with key <=
// key, or zero if there is none.
func (t *Trace) UpperLookup(key uint64) uint256.Int {
	pos := t.upperBinaryLookup(key, 0, len(t.checkpoints))
	if pos == 0 {
		return uint256.Int{}
	}
	return t.checkpoints[pos-1].Value
}

// UpperLookupRecent is UpperLookup optimized for keys near the tail:
// on traces longer than 5 entries it first probes len - sqrt(len) and
// restricts the binary search to the matching half.
func (t *Trace) UpperLookupRecent(key uint64) uint256.Int {
	low, high := 0, len(t.checkpoints)
	if high > 5 {
		mid := high - int(math.Sqrt(float64(high)))
		if key < t.checkpoints[mid].Key {
			high = mid
		} else {
			low = mid + 1
		}
	}
	pos := t.upperBinaryLookup(key, low, high)
	if pos == 0 {
		return uint256.Int{}
	}
	return t.checkpoints[pos-1].Value
}

// upperBinaryLookup returns the first index in [low, high) whose key
// is strictly greater than key, or high if there is none.
func (t *Trace) upperBinaryLookup(key uint64, low, high int) int {
	for low < high {
		mid := (low + high) / 2
		if t.checkpoints[mid].Key > key {
			high = mid
		} else {
			low = mid + 1
		}
	}
	return high
}

// lowerBinaryLookup returns the first index in [low, high) whose key
// is greater than or equal to key, or high if there is none.
func (t *Trace) lowerBinaryLookup(key uint64, low, high int) int {
	for low < high {
		mid := (low + high) / 2
		if t.checkpoints[mid].Key < key {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return high
}
