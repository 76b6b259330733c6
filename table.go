package ike

import (
	"sync"

	"github.com/msgboxio/ikecore/protocol"
)

// tableKey identifies a context. Half open contexts are keyed with a zero
// spiR and the peer address; once both SPIs are known a second key with the
// full pair and no address is added.
type tableKey struct {
	spiI, spiR uint64
	remote     string
	role       Role
}

func halfOpenKey(spiI protocol.Spi, remote string, role Role) tableKey {
	return tableKey{spiI: protocol.SpiToUint64(spiI), remote: remote, role: role}
}

func fullKey(spiI, spiR protocol.Spi, role Role) tableKey {
	return tableKey{spiI: protocol.SpiToUint64(spiI), spiR: protocol.SpiToUint64(spiR), role: role}
}

// Table holds every context the engine knows about. Its lock is only held
// for map operations.
type Table struct {
	mtx  sync.Mutex
	sas  map[tableKey]*SA
	keys map[*SA][]tableKey
	// SPIs we picked, so that they are unique
	local   map[uint64]*SA
	claimed map[*SA][]uint64
}

func NewTable() *Table {
	return &Table{
		sas:     make(map[tableKey]*SA),
		keys:    make(map[*SA][]tableKey),
		local:   make(map[uint64]*SA),
		claimed: make(map[*SA][]uint64),
	}
}

func (t *Table) get(k tableKey) (*SA, bool) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	sa, found := t.sas[k]
	return sa, found
}

// insert adds sa under k unless k is taken, in which case the existing
// context is returned.
func (t *Table) insert(k tableKey, sa *SA) (*SA, bool) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if existing, found := t.sas[k]; found {
		return existing, false
	}
	t.sas[k] = sa
	t.keys[sa] = append(t.keys[sa], k)
	return sa, true
}

// alias adds another key for a context that is still in the table.
func (t *Table) alias(k tableKey, sa *SA) bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if _, live := t.keys[sa]; !live {
		return false
	}
	if _, taken := t.sas[k]; taken {
		return false
	}
	t.sas[k] = sa
	t.keys[sa] = append(t.keys[sa], k)
	return true
}

// claimSpi reserves a locally chosen SPI for sa.
func (t *Table) claimSpi(spi protocol.Spi, sa *SA) bool {
	k := protocol.SpiToUint64(spi)
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if _, taken := t.local[k]; taken {
		return false
	}
	t.local[k] = sa
	t.claimed[sa] = append(t.claimed[sa], k)
	return true
}

// remove drops every key of sa and the SPIs it claimed.
func (t *Table) remove(sa *SA) bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	keys, found := t.keys[sa]
	for _, k := range keys {
		if t.sas[k] == sa {
			delete(t.sas, k)
		}
	}
	delete(t.keys, sa)
	for _, spi := range t.claimed[sa] {
		delete(t.local, spi)
	}
	delete(t.claimed, sa)
	return found
}

// Len is the number of distinct contexts.
func (t *Table) Len() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return len(t.keys)
}

// ForEach runs action on a snapshot, without holding the table lock.
func (t *Table) ForEach(action func(*SA)) {
	t.mtx.Lock()
	var temp []*SA
	for sa := range t.keys {
		temp = append(temp, sa)
	}
	t.mtx.Unlock()
	for _, sa := range temp {
		action(sa)
	}
}

func (t *Table) clear() {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.sas = make(map[tableKey]*SA)
	t.keys = make(map[*SA][]tableKey)
	t.local = make(map[uint64]*SA)
	t.claimed = make(map[*SA][]uint64)
}
