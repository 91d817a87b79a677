// Package uups implements the UUPS (ERC-1822) self-upgrade protocol
// on top of the ERC-1967 layout. A Logic value represents one
// deployed implementation; its methods behave differently depending
// on whether they run directly on the implementation or via
// delegation from a proxy, discriminated by a flag slot that only the
// implementation's constructor sets.
package uups

import (
	"errors"
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/holiman/uint256"

	"github.com/consensys/contractlib/crypto/keccak"
	"github.com/consensys/contractlib/host"
	"github.com/consensys/contractlib/proxy/erc1967"
)

// UpgradeInterfaceVersion identifies the upgrade calling convention,
// upgradeToAndCall with data.
const UpgradeInterfaceVersion = "5.0.0"

// LogicFlagSlot marks direct execution on the implementation. Set by
// the implementation constructor, so a proxy's storage always reads
// false. keccak256("uups.proxy.logic.flag") - 1.
var LogicFlagSlot = slotOf("uups.proxy.logic.flag")

// VersionSlot holds the proxy-stored version of the active logic.
// keccak256("uups.proxy.version") - 1.
var VersionSlot = slotOf("uups.proxy.version")

// Call inputs of the protocol methods, exported so implementations
// can dispatch on them.
var (
	// ProxiableUUIDInput is keccak256("proxiableUUID()")[:4].
	ProxiableUUIDInput = selector("proxiableUUID()")
	// SetVersionInput is keccak256("setVersion()")[:4].
	SetVersionInput = selector("setVersion()")
)

// ErrUnauthorizedCallContext is returned when a method runs in the
// wrong context: a proxy-only method directly on the implementation,
// a logic-only method via delegation, or delegation from a proxy that
// does not point at this logic.
var ErrUnauthorizedCallContext = errors.New("uups: unauthorized call context")

// UnsupportedUUIDError reports a candidate implementation whose
// proxiable UUID is not the ERC-1967 implementation slot.
type UnsupportedUUIDError struct {
	Slot host.Hash
}

func (e *UnsupportedUUIDError) Error() string {
	return fmt.Sprintf("uups: unsupported proxiable UUID %s", e.Slot)
}

// InvalidVersionError reports a version regression: the proxy already
// stores a version greater than the incoming logic's.
type InvalidVersionError struct {
	Current semver.Version
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("uups: version regression below %s", e.Current)
}

// Logic is one deployed implementation contract: its address and its
// version.
type Logic struct {
	Addr    host.Address
	Version semver.Version
}

// NewLogic returns the logic descriptor for an implementation
// deployed at addr.
func NewLogic(addr host.Address, version semver.Version) *Logic {
	return &Logic{Addr: addr, Version: version}
}

// Constructor sets the logic flag. It must run exactly once, directly
// on the implementation at deployment, so the flag lands in the
// implementation's own storage and never in a proxy's.
func (l *Logic) Constructor(env host.Storage) {
	one := host.HashFromUint256(uint256.NewInt(1))
	env.StorageStore(LogicFlagSlot, one)
}

// IsLogic reports whether execution reached this code directly, as
// opposed to via a proxy's delegate call.
func (l *Logic) IsLogic(env host.Storage) bool {
	return !env.StorageLoad(LogicFlagSlot).IsZero()
}

// ProxiableUUID returns the ERC-1967 implementation slot. It fails
// with ErrUnauthorizedCallContext when invoked through a proxy, which
// prevents an upgrade to the proxy's own address.
func (l *Logic) ProxiableUUID(env host.Storage) (host.Hash, error) {
	if !l.IsLogic(env) {
		return host.Hash{}, ErrUnauthorizedCallContext
	}
	return erc1967.ImplementationSlot, nil
}

// SetVersion writes the logic's version into the proxy's storage. It
// must run via delegation, and the stored version may never decrease:
// a proxy already past this logic's version fails with
// InvalidVersionError.
func (l *Logic) SetVersion(env host.Host) error {
	if l.IsLogic(env) {
		return ErrUnauthorizedCallContext
	}
	current := storedVersion(env)
	if current.GT(l.Version) {
		return &InvalidVersionError{Current: current}
	}
	env.StorageStore(VersionSlot, encodeVersion(l.Version))
	return nil
}

// StoredVersion returns the version recorded in the executing
// instance's storage, 0.0.0 when unset.
func StoredVersion(env host.Storage) semver.Version {
	return storedVersion(env)
}

// UpgradeToAndCall switches the proxy to newImpl and, when data is
// non-empty, delegate-calls it with data. The call must arrive via a
// proxy pointing at this logic; newImpl must have code and return the
// implementation slot as its proxiable UUID. The new logic's
// setVersion runs last so a version regression reverts the upgrade.
func (l *Logic) UpgradeToAndCall(env host.Host, newImpl host.Address, data []byte) error {
	if err := l.onlyProxy(env); err != nil {
		return err
	}
	if err := checkProxiableUUID(env, newImpl); err != nil {
		return err
	}
	if err := erc1967.UpgradeToAndCall(env, newImpl, data); err != nil {
		return err
	}
	_, err := env.DelegateCall(newImpl, SetVersionInput)
	return err
}

// onlyProxy admits only delegated calls from an ERC-1967 proxy whose
// implementation slot points at this logic and whose stored version
// matches.
func (l *Logic) onlyProxy(env host.Host) error {
	if l.IsLogic(env) {
		return ErrUnauthorizedCallContext
	}
	impl := erc1967.Implementation(env)
	if impl.IsZero() || impl != l.Addr {
		return ErrUnauthorizedCallContext
	}
	if !storedVersion(env).Equals(l.Version) {
		return ErrUnauthorizedCallContext
	}
	return nil
}

func checkProxiableUUID(env host.Caller, newImpl host.Address) error {
	if !env.HasCode(newImpl) {
		return &erc1967.InvalidImplementationError{Implementation: newImpl}
	}
	out, err := env.StaticCall(newImpl, ProxiableUUIDInput)
	if err != nil || len(out) != host.HashLength {
		return &erc1967.InvalidImplementationError{Implementation: newImpl}
	}
	var slot host.Hash
	copy(slot[:], out)
	if slot != erc1967.ImplementationSlot {
		return &UnsupportedUUIDError{Slot: slot}
	}
	return nil
}

// Versions are packed major‖minor‖patch into one storage word, 64
// bits each. Pre-release and build tags are not representable and not
// stored.
func encodeVersion(v semver.Version) host.Hash {
	w := uint256.NewInt(v.Major)
	w.Lsh(w, 64)
	w.Or(w, uint256.NewInt(v.Minor))
	w.Lsh(w, 64)
	w.Or(w, uint256.NewInt(v.Patch))
	return host.HashFromUint256(w)
}

func storedVersion(env host.Storage) semver.Version {
	w := env.StorageLoad(VersionSlot).Uint256()
	patch := w.Uint64()
	w.Rsh(w, 64)
	minor := w.Uint64()
	w.Rsh(w, 64)
	return semver.Version{Major: w.Uint64(), Minor: minor, Patch: patch}
}

func slotOf(label string) host.Hash {
	h := keccak.Sum256([]byte(label))
	v := new(uint256.Int).SetBytes(h[:])
	v.Sub(v, uint256.NewInt(1))
	return host.HashFromUint256(v)
}

func selector(signature string) []byte {
	h := keccak.Sum256([]byte(signature))
	return h[:4]
}
