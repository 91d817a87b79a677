// Package hostsim is an in-memory implementation of the host
// interfaces for tests. It models per-address word storage with
// journaled all-or-nothing commit per entry point, registered Go
// handlers standing in for contract code, captured event logs and the
// ecrecover precompile.
package hostsim

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/consensys/contractlib/crypto/keccak"
	"github.com/consensys/contractlib/host"
	"github.com/consensys/contractlib/logger"
)

// EcrecoverAddress is the ecrecover precompile address, 0x…01.
var EcrecoverAddress = host.Address{19: 0x01}

// Handler is contract code: it receives the host environment of the
// current frame and the calldata, and returns output or an error.
// Returning *host.RevertError carries revert data to the caller.
type Handler func(env host.Host, input []byte) ([]byte, error)

// Event is a captured log record.
type Event struct {
	Emitter host.Address
	Topics  []host.Hash
	Data    []byte
}

type frame struct {
	self   host.Address // storage and Self() context
	code   host.Address // whose handler runs
	sender host.Address
	value  *uint256.Int
	static bool
}

type storageWrite struct {
	addr host.Address
	slot host.Hash
	prev host.Hash
	had  bool
}

// Sim is the in-memory host. It is not safe for concurrent use; the
// modeled execution is single-threaded by contract.
type Sim struct {
	log     zerolog.Logger
	chainID uint64

	storage map[host.Address]map[host.Hash]host.Hash
	code    map[host.Address]Handler

	events  []Event
	journal []storageWrite

	frames []frame
}

// New returns an empty simulator for the given chain id.
func New(chainID uint64) *Sim {
	return &Sim{
		log:     logger.Logger().With().Str("component", "hostsim").Logger(),
		chainID: chainID,
		storage: make(map[host.Address]map[host.Hash]host.Hash),
		code:    make(map[host.Address]Handler),
	}
}

// Register installs code at addr. The address reports HasCode
// afterwards.
func (s *Sim) Register(addr host.Address, h Handler) {
	s.code[addr] = h
}

// Events returns the committed event log in emission order.
func (s *Sim) Events() []Event {
	return s.events
}

// Execute runs a top-level entry point: caller invokes target with
// the given value and calldata. Storage writes and events are
// committed only when the handler succeeds; on error every effect is
// discarded.
func (s *Sim) Execute(caller, target host.Address, value *uint256.Int, input []byte) ([]byte, error) {
	if len(s.frames) != 0 {
		panic("hostsim: nested Execute")
	}
	jSnap := len(s.journal)
	eSnap := len(s.events)

	out, err := s.call(frame{self: target, code: target, sender: caller, value: value}, input)
	if err != nil {
		s.revertTo(jSnap, eSnap)
		s.log.Debug().Err(err).Stringer("target", target).Msg("entry point reverted")
		return out, err
	}
	s.journal = s.journal[:0]
	return out, nil
}

func (s *Sim) call(f frame, input []byte) ([]byte, error) {
	if f.code == EcrecoverAddress {
		return s.ecrecover(input), nil
	}
	h, ok := s.code[f.code]
	if !ok {
		return nil, host.ErrNoCode
	}

	jSnap := len(s.journal)
	eSnap := len(s.events)
	s.frames = append(s.frames, f)
	out, err := h(s, input)
	s.frames = s.frames[:len(s.frames)-1]
	if err != nil {
		s.revertTo(jSnap, eSnap)
	}
	return out, err
}

func (s *Sim) revertTo(jSnap, eSnap int) {
	for i := len(s.journal) - 1; i >= jSnap; i-- {
		w := s.journal[i]
		if w.had {
			s.storage[w.addr][w.slot] = w.prev
		} else {
			delete(s.storage[w.addr], w.slot)
		}
	}
	s.journal = s.journal[:jSnap]
	s.events = s.events[:eSnap]
}

func (s *Sim) top() *frame {
	if len(s.frames) == 0 {
		panic("hostsim: host access outside an entry point")
	}
	return &s.frames[len(s.frames)-1]
}

// StorageLoad implements host.Storage.
func (s *Sim) StorageLoad(slot host.Hash) host.Hash {
	return s.storage[s.top().self][slot]
}

// StorageStore implements host.Storage.
func (s *Sim) StorageStore(slot, value host.Hash) {
	f := s.top()
	if f.static {
		panic("hostsim: storage write in static context")
	}
	m, ok := s.storage[f.self]
	if !ok {
		m = make(map[host.Hash]host.Hash)
		s.storage[f.self] = m
	}
	prev, had := m[slot]
	s.journal = append(s.journal, storageWrite{addr: f.self, slot: slot, prev: prev, had: had})
	m[slot] = value
}

// Self implements host.Context.
func (s *Sim) Self() host.Address { return s.top().self }

// Sender implements host.Context.
func (s *Sim) Sender() host.Address { return s.top().sender }

// CallValue implements host.Context.
func (s *Sim) CallValue() *uint256.Int {
	v := s.top().value
	if v == nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(v)
}

// ChainID implements host.Context.
func (s *Sim) ChainID() uint64 { return s.chainID }

// HasCode implements host.Caller.
func (s *Sim) HasCode(addr host.Address) bool {
	_, ok := s.code[addr]
	return ok || addr == EcrecoverAddress
}

// Call implements host.Caller.
func (s *Sim) Call(addr host.Address, value *uint256.Int, input []byte) ([]byte, error) {
	f := s.top()
	return s.call(frame{self: addr, code: addr, sender: f.self, value: value}, input)
}

// DelegateCall implements host.Caller: addr's code runs with the
// current frame's storage, sender and value.
func (s *Sim) DelegateCall(addr host.Address, input []byte) ([]byte, error) {
	f := s.top()
	return s.call(frame{self: f.self, code: addr, sender: f.sender, value: f.value}, input)
}

// StaticCall implements host.Caller.
func (s *Sim) StaticCall(addr host.Address, input []byte) ([]byte, error) {
	f := s.top()
	return s.call(frame{self: addr, code: addr, sender: f.self, static: true}, input)
}

// Log implements host.Logger.
func (s *Sim) Log(topics []host.Hash, data []byte) {
	f := s.top()
	if f.static {
		panic("hostsim: log in static context")
	}
	ev := Event{Emitter: f.self, Topics: append([]host.Hash(nil), topics...)}
	ev.Data = append(ev.Data, data...)
	s.events = append(s.events, ev)
}

// ecrecover implements the 0x…01 precompile: input is
// hash(32) ‖ v(32) ‖ r(32) ‖ s(32); output is the 32-byte left-padded
// recovered address, or empty output on any failure.
func (s *Sim) ecrecover(input []byte) []byte {
	if len(input) != 128 {
		return nil
	}
	hash := input[:32]
	// v must be 27 or 28, left-padded with zeros
	for _, b := range input[32:63] {
		if b != 0 {
			return nil
		}
	}
	v := input[63]
	if v != 27 && v != 28 {
		return nil
	}

	// compact form: recovery code, then r, then s
	var sig [65]byte
	sig[0] = v
	copy(sig[1:33], input[64:96])
	copy(sig[33:65], input[96:128])

	pub, _, err := dcrecdsa.RecoverCompact(sig[:], hash)
	if err != nil {
		return nil
	}
	return addressFromPubKey(pub)
}

func addressFromPubKey(pub *secp256k1.PublicKey) []byte {
	uncompressed := pub.SerializeUncompressed()
	digest := keccak.Sum256(uncompressed[1:])
	out := make([]byte, 32)
	copy(out[12:], digest[12:])
	return out
}

// SetStorage seeds a storage word outside any entry point, for test
// fixtures.
func (s *Sim) SetStorage(addr host.Address, slot, value host.Hash) {
	m, ok := s.storage[addr]
	if !ok {
		m = make(map[host.Hash]host.Hash)
		s.storage[addr] = m
	}
	m[slot] = value
}

// GetStorage reads a storage word outside any entry point.
func (s *Sim) GetStorage(addr host.Address, slot host.Hash) host.Hash {
	return s.storage[addr][slot]
}
