// Package host models the execution environment a contract runs in:
// keyed word storage, transaction context, event emission and calls to
// other contracts. The core packages depend only on the interfaces
// here; the hostsim package provides an in-memory implementation for
// tests.
package host

import (
	"errors"

	"github.com/holiman/uint256"
)

// Errors surfaced by host call operations.
var (
	// ErrNoCode is returned when calling an address with no code.
	ErrNoCode = errors.New("host: no code at address")
	// ErrExecutionReverted is returned when a callee reverts; revert
	// data travels in RevertError.
	ErrExecutionReverted = errors.New("host: execution reverted")
)

// RevertError carries the revert data of a failed call.
type RevertError struct {
	Data []byte
}

func (e *RevertError) Error() string { return "host: execution reverted" }

// Is reports that a RevertError matches ErrExecutionReverted.
func (e *RevertError) Is(target error) bool { return target == ErrExecutionReverted }

// Host is the full environment interface a contract entry point sees.
type Host interface {
	Storage
	Context
	Caller
	Logger
}

// Storage is flat keyed word storage scoped to the executing contract
// instance.
type Storage interface {
	// StorageLoad returns the 32-byte word at slot, zero when never
	// written.
	StorageLoad(slot Hash) Hash
	// StorageStore writes the 32-byte word at slot.
	StorageStore(slot Hash, value Hash)
}

// Context is the transaction-scoped environment.
type Context interface {
	// Self returns the address of the executing contract instance.
	Self() Address
	// Sender returns the caller of the current entry point.
	Sender() Address
	// CallValue returns the value attached to the current call.
	CallValue() *uint256.Int
	// ChainID returns the chain identifier.
	ChainID() uint64
}

// Caller performs calls to other contracts and code introspection.
type Caller interface {
	// HasCode reports whether addr has contract code.
	HasCode(addr Address) bool
	// Call invokes addr with input in the callee's own storage
	// context.
	Call(addr Address, value *uint256.Int, input []byte) ([]byte, error)
	// DelegateCall invokes addr's code in the caller's storage
	// context.
	DelegateCall(addr Address, input []byte) ([]byte, error)
	// StaticCall invokes addr read-only. Precompiles are reached this
	// way.
	StaticCall(addr Address, input []byte) ([]byte, error)
}

// Logger emits events.
type Logger interface {
	// Log records an event with indexed topics and opaque data.
	Log(topics []Hash, data []byte)
}
