package ike

import (
	"encoding/hex"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/msgboxio/ikecore/state"
)

type Role int

const (
	Initiator Role = iota + 1
	Responder
)

func (r Role) String() string {
	switch r {
	case Initiator:
		return "initiator"
	case Responder:
		return "responder"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// SA is the negotiation context of one IKE SA. The table owns it; all
// fields are guarded by mu.
type SA struct {
	mu     sync.Mutex
	engine *Engine
	logger log.Logger

	role          Role
	spiI, spiR    protocol.Spi
	state         state.State
	remote, local net.Addr
	created       time.Time

	// initiator: what we offered; both: what was agreed
	proposals []protocol.Transforms
	selected  protocol.Transforms
	dhGroup   protocol.DhTransformId

	ni, nr          []byte
	dhPrivate       []byte
	localKe, peerKe []byte
	keys            *crypto.KeySet

	// initiator only
	cookie          []byte
	cookieRounds    int
	retriedKeGroup  bool
	retained        []byte // last request sent; only valid in InitSent
	retries         int
	deadline        time.Time
	timer           *time.Timer
	timerGeneration uint64

	// responder only; the pair answers duplicates for as long as the
	// context lives
	reservedSpi               protocol.Spi
	answeredReq, answeredResp []byte
	// counted in engine.halfOpen until the peer is heard from again or the
	// context goes away
	halfOpenHeld bool

	lingerTimer *time.Timer
	err         error
	record      *EstablishedSA
}

func newSA(e *Engine, role Role, spiI protocol.Spi, remote, local net.Addr) *SA {
	sa := &SA{
		engine:  e,
		role:    role,
		spiI:    append(protocol.Spi{}, spiI...),
		spiR:    append(protocol.Spi{}, zeroSpi...),
		state:   state.Idle,
		remote:  remote,
		local:   local,
		created: time.Now(),
	}
	sa.logger = log.With(e.logger, "spiI", hex.EncodeToString(spiI), "role", role, "remote", remote)
	return sa
}

func (sa *SA) Role() Role { return sa.role }

// SpiI is fixed for the lifetime of the context.
func (sa *SA) SpiI() protocol.Spi { return sa.spiI }

func (sa *SA) SpiR() protocol.Spi {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.spiR
}

func (sa *SA) State() state.State {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.state
}

func (sa *SA) RemoteAddr() net.Addr { return sa.remote }

// Err is the reason the negotiation failed, nil otherwise.
func (sa *SA) Err() error {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.err
}

// Record is what was handed to Callback.Established, nil before that.
func (sa *SA) Record() *EstablishedSA {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.record
}

// Keys is nil until the SA is established.
func (sa *SA) Keys() *crypto.KeySet {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.keys
}

// Transforms is the agreed transform set, nil until agreed.
func (sa *SA) Transforms() protocol.Transforms {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.selected
}

// Deadline of the next retransmission while the request is outstanding.
func (sa *SA) Deadline() (time.Time, bool) {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.deadline, sa.state.Retryable()
}

func (sa *SA) String() string {
	return fmt.Sprintf("%s %x<=>%x", sa.role, []byte(sa.spiI), []byte(sa.SpiR()))
}

// releaseHalfOpen must be called with mu held.
func (sa *SA) releaseHalfOpen() {
	if sa.halfOpenHeld {
		sa.halfOpenHeld = false
		sa.engine.halfOpenDone()
	}
}

// setState must be called with mu held.
func (sa *SA) setState(to state.State) error {
	from := sa.state
	if err := state.Check(from, to); err != nil {
		level.Error(sa.logger).Log("msg", "state change refused", "err", err)
		return err
	}
	sa.state = to
	if from == state.InitSent && to != state.InitSent {
		sa.retained = nil
		sa.deadline = time.Time{}
	}
	level.Debug(sa.logger).Log("msg", "state", "from", from, "to", to)
	return nil
}

// stopTimers must be called with mu held.
func (sa *SA) stopTimers() {
	sa.timerGeneration++
	if sa.timer != nil {
		sa.timer.Stop()
		sa.timer = nil
	}
	if sa.lingerTimer != nil {
		sa.lingerTimer.Stop()
		sa.lingerTimer = nil
	}
}

// terminate moves the context to Failed or Aborted and returns the
// callback to run once mu is released.
func (sa *SA) terminate(to state.State, reason error) func() {
	if sa.state.Terminal() {
		return nil
	}
	if err := sa.setState(to); err != nil {
		return nil
	}
	sa.err = reason
	sa.stopTimers()
	sa.releaseHalfOpen()
	e := sa.engine
	e.metrics.negotiated(sa.role, reason)
	level.Info(sa.logger).Log("msg", "negotiation ended", "state", to, "err", reason)
	return func() { e.cb.Failed(sa, reason) }
}

func (sa *SA) fail(reason error) func() {
	return sa.terminate(state.Failed, reason)
}

// establish must be called with mu held, and with keys in place.
func (sa *SA) establish() func() {
	if err := sa.setState(state.Established); err != nil {
		return nil
	}
	sa.stopTimers()
	sa.record = sa.establishedRecord()
	e := sa.engine
	e.metrics.negotiated(sa.role, nil)
	level.Info(sa.logger).Log("msg", "IKE SA established",
		"spiR", hex.EncodeToString(sa.spiR), "suite", sa.selected,
		"duration", time.Since(sa.created))
	record := sa.record
	return func() { e.cb.Established(sa, record) }
}

// linger keeps the context around to answer duplicates, then removes it.
// Must be called with mu held.
func (sa *SA) linger() {
	e := sa.engine
	sa.lingerTimer = time.AfterFunc(e.cfg.Linger, func() {
		if e.isClosed() {
			return
		}
		e.removeSA(sa)
		level.Debug(sa.logger).Log("msg", "context expired")
	})
}

// deferred is what a handler leaves to be done after mu is released: the
// table is never touched with a context lock held.
type deferred struct {
	alias  *tableKey
	remove bool
	notify func()
}

func (sa *SA) finish(d deferred) {
	e := sa.engine
	if d.alias != nil && !e.table.alias(*d.alias, sa) {
		level.Debug(sa.logger).Log("msg", "context gone before alias was added")
	}
	if d.remove {
		e.removeSA(sa)
	}
	if d.notify != nil {
		d.notify()
	}
}
