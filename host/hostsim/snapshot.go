package hostsim

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/consensys/contractlib/host"
)

// snapshot is the serialized world state. Handlers are code, not
// state, and are not part of it.
type snapshot struct {
	ChainID uint64                                     `cbor:"1,keyasint"`
	Storage map[host.Address]map[host.Hash]host.Hash   `cbor:"2,keyasint"`
	Events  []Event                                    `cbor:"3,keyasint"`
}

// DumpState serializes committed storage and events to CBOR. Calling
// it mid-entry-point captures uncommitted writes; dump after Execute
// returns.
func (s *Sim) DumpState() ([]byte, error) {
	return cbor.Marshal(snapshot{
		ChainID: s.chainID,
		Storage: s.storage,
		Events:  s.events,
	})
}

// RestoreState replaces storage and events with a previously dumped
// snapshot. Registered handlers are kept.
func (s *Sim) RestoreState(data []byte) error {
	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.chainID = snap.ChainID
	s.storage = snap.Storage
	if s.storage == nil {
		s.storage = make(map[host.Address]map[host.Hash]host.Hash)
	}
	s.events = snap.Events
	s.journal = s.journal[:0]
	return nil
}
