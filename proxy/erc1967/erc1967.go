// Package erc1967 implements the ERC-1967 proxy storage layout: the
// well-known implementation, admin and beacon slots, the typed
// accessors over them and the upgrade events.
package erc1967

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/consensys/contractlib/crypto/keccak"
	"github.com/consensys/contractlib/host"
)

// Storage slots per ERC-1967, each keccak256 of its label minus one
// so that no hash preimage maps to them.
var (
	// ImplementationSlot holds the current implementation address.
	// keccak256("eip1967.proxy.implementation") - 1.
	ImplementationSlot = slotOf("eip1967.proxy.implementation")
	// AdminSlot holds the admin address.
	// keccak256("eip1967.proxy.admin") - 1.
	AdminSlot = slotOf("eip1967.proxy.admin")
	// BeaconSlot holds the beacon address.
	// keccak256("eip1967.proxy.beacon") - 1.
	BeaconSlot = slotOf("eip1967.proxy.beacon")
)

// Event signature topics.
var (
	// UpgradedTopic is keccak256("Upgraded(address)").
	UpgradedTopic = host.Hash(keccak.Sum256([]byte("Upgraded(address)")))
	// AdminChangedTopic is keccak256("AdminChanged(address,address)").
	AdminChangedTopic = host.Hash(keccak.Sum256([]byte("AdminChanged(address,address)")))
	// BeaconUpgradedTopic is keccak256("BeaconUpgraded(address)").
	BeaconUpgradedTopic = host.Hash(keccak.Sum256([]byte("BeaconUpgraded(address)")))
)

// ImplementationInput is the call input that asks a beacon for its
// implementation address, keccak256("implementation()")[:4].
var ImplementationInput = selector("implementation()")

// InvalidImplementationError reports an implementation address with
// no code behind it.
type InvalidImplementationError struct {
	Implementation host.Address
}

func (e *InvalidImplementationError) Error() string {
	return fmt.Sprintf("erc1967: invalid implementation %s", e.Implementation)
}

// InvalidAdminError reports an attempt to set the zero admin.
type InvalidAdminError struct {
	Admin host.Address
}

func (e *InvalidAdminError) Error() string {
	return fmt.Sprintf("erc1967: invalid admin %s", e.Admin)
}

// InvalidBeaconError reports a beacon address with no code behind it.
type InvalidBeaconError struct {
	Beacon host.Address
}

func (e *InvalidBeaconError) Error() string {
	return fmt.Sprintf("erc1967: invalid beacon %s", e.Beacon)
}

// NonPayableError reports value sent to an upgrade that carries no
// initialization data, where it would be stranded.
type NonPayableError struct{}

func (e *NonPayableError) Error() string { return "erc1967: non-payable upgrade received value" }

// Implementation returns the implementation address stored in the
// executing instance, zero when unset.
func Implementation(env host.Storage) host.Address {
	return env.StorageLoad(ImplementationSlot).Address()
}

// UpgradeToAndCall stores newImpl in the implementation slot, emits
// Upgraded, and when data is non-empty delegate-calls newImpl with it.
// An empty data with a non-zero call value fails with NonPayableError.
func UpgradeToAndCall(env host.Host, newImpl host.Address, data []byte) error {
	if err := setImplementation(env, newImpl); err != nil {
		return err
	}
	env.Log([]host.Hash{UpgradedTopic, newImpl.Hash()}, nil)

	if len(data) == 0 {
		return checkNonPayable(env)
	}
	_, err := env.DelegateCall(newImpl, data)
	return err
}

// Admin returns the admin address, zero when unset.
func Admin(env host.Storage) host.Address {
	return env.StorageLoad(AdminSlot).Address()
}

// ChangeAdmin stores newAdmin in the admin slot and emits
// AdminChanged. The zero address is rejected.
func ChangeAdmin(env host.Host, newAdmin host.Address) error {
	if newAdmin.IsZero() {
		return &InvalidAdminError{Admin: newAdmin}
	}
	env.Log([]host.Hash{AdminChangedTopic, Admin(env).Hash(), newAdmin.Hash()}, nil)
	env.StorageStore(AdminSlot, newAdmin.Hash())
	return nil
}

// Beacon returns the beacon address, zero when unset.
func Beacon(env host.Storage) host.Address {
	return env.StorageLoad(BeaconSlot).Address()
}

// UpgradeBeaconToAndCall stores newBeacon in the beacon slot, emits
// BeaconUpgraded, and when data is non-empty delegate-calls the
// beacon's implementation with it.
func UpgradeBeaconToAndCall(env host.Host, newBeacon host.Address, data []byte) error {
	if err := setBeacon(env, newBeacon); err != nil {
		return err
	}
	env.Log([]host.Hash{BeaconUpgradedTopic, newBeacon.Hash()}, nil)

	if len(data) == 0 {
		return checkNonPayable(env)
	}
	impl, err := beaconImplementation(env, newBeacon)
	if err != nil {
		return err
	}
	_, err = env.DelegateCall(impl, data)
	return err
}

// Fallback delegates an unmatched call to the current implementation,
// propagating return data and reverts verbatim.
func Fallback(env host.Host, calldata []byte) ([]byte, error) {
	return env.DelegateCall(Implementation(env), calldata)
}

func setImplementation(env host.Host, newImpl host.Address) error {
	if !env.HasCode(newImpl) {
		return &InvalidImplementationError{Implementation: newImpl}
	}
	env.StorageStore(ImplementationSlot, newImpl.Hash())
	return nil
}

func setBeacon(env host.Host, newBeacon host.Address) error {
	if !env.HasCode(newBeacon) {
		return &InvalidBeaconError{Beacon: newBeacon}
	}
	env.StorageStore(BeaconSlot, newBeacon.Hash())

	impl, err := beaconImplementation(env, newBeacon)
	if err != nil {
		return err
	}
	if !env.HasCode(impl) {
		return &InvalidImplementationError{Implementation: impl}
	}
	return nil
}

func beaconImplementation(env host.Caller, beacon host.Address) (host.Address, error) {
	out, err := env.StaticCall(beacon, ImplementationInput)
	if err != nil {
		return host.ZeroAddress, err
	}
	if len(out) != host.HashLength {
		return host.ZeroAddress, &InvalidBeaconError{Beacon: beacon}
	}
	var word host.Hash
	copy(word[:], out)
	return word.Address(), nil
}

func checkNonPayable(env host.Context) error {
	if env.CallValue().IsZero() {
		return nil
	}
	return &NonPayableError{}
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
