package ike

import (
	"net"
	"time"

	"github.com/go-kit/kit/log/level"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/msgboxio/ikecore/state"
	"github.com/pkg/errors"
)

// a responder under load may change its secret once while we retry
const maxCookieRounds = 2

// Initiate starts an IKE_SA_INIT exchange with remote. The returned context
// is in InitSent; the outcome arrives through the Callback.
func (e *Engine) Initiate(remote net.Addr) (*SA, error) {
	if e.isClosed() {
		return nil, errEngineClosed
	}
	proposals, err := e.policy.Lookup(remote)
	if err != nil {
		return nil, err
	}
	var sa *SA
	for {
		spi, err := makeSpi(e.rand)
		if err != nil {
			return nil, errors.Wrap(ErrCryptoFailure, err.Error())
		}
		sa = newSA(e, Initiator, spi, remote, nil)
		if e.table.claimSpi(spi, sa) {
			break
		}
	}
	sa.proposals = proposals
	if _, inserted := e.table.insert(halfOpenKey(sa.spiI, addrKey(remote), Initiator), sa); !inserted {
		e.table.remove(sa)
		return nil, errors.Errorf("initiator spi %x already in use", []byte(sa.spiI))
	}
	e.metrics.Contexts.Set(float64(e.table.Len()))

	sa.mu.Lock()
	err = sa.start()
	var d deferred
	if err != nil {
		// reported to the caller, not the callback
		sa.fail(err)
		d.remove = true
	}
	sa.mu.Unlock()
	sa.finish(d)
	if err != nil {
		return nil, err
	}
	return sa, nil
}

// start sends the first request. Must be called with mu held, in Idle.
func (sa *SA) start() (err error) {
	c := sa.engine.crypto
	if sa.ni, err = c.Nonce(sa.engine.cfg.NonceLength); err != nil {
		return errors.Wrap(ErrCryptoFailure, err.Error())
	}
	sa.dhGroup = sa.proposals[0].DhGroup()
	if err = sa.newKeyPair(); err != nil {
		return
	}
	return sa.sendRequest()
}

func (sa *SA) newKeyPair() (err error) {
	if sa.localKe, sa.dhPrivate, err = sa.engine.crypto.GenerateKeyPair(sa.dhGroup); err != nil {
		return errors.Wrap(ErrCryptoFailure, err.Error())
	}
	return
}

func (sa *SA) initRequest() *Message {
	payloads := initPayloads(protocol.ProposalsFromTransforms(protocol.IKE, sa.proposals, nil),
		sa.dhGroup, sa.localKe, sa.ni)
	if sa.cookie != nil {
		// COOKIE goes first
		payloads.Array = append([]protocol.Payload{&protocol.NotifyPayload{
			PayloadHeader:    &protocol.PayloadHeader{},
			NotificationType: protocol.COOKIE,
			Data:             sa.cookie,
		}}, payloads.Array...)
	}
	return &Message{
		IkeHeader: &protocol.IkeHeader{
			SpiI:         sa.spiI,
			SpiR:         append(protocol.Spi{}, zeroSpi...),
			MajorVersion: protocol.IKEV2_MAJOR_VERSION,
			MinorVersion: protocol.IKEV2_MINOR_VERSION,
			ExchangeType: protocol.IKE_SA_INIT,
			Flags:        protocol.INITIATOR,
			MsgID:        0,
		},
		Payloads:   payloads,
		LocalAddr:  sa.local,
		RemoteAddr: sa.remote,
	}
}

// sendRequest (re)builds the request, sends it and restarts the retry
// budget. Must be called with mu held.
func (sa *SA) sendRequest() error {
	b, err := sa.engine.send(sa.initRequest(), true)
	if err != nil {
		return err
	}
	if err := sa.setState(state.InitSent); err != nil {
		return err
	}
	sa.retained = b
	sa.retries = 0
	sa.armTimer()
	return nil
}

// armTimer must be called with mu held.
func (sa *SA) armTimer() {
	cfg := sa.engine.cfg
	wait := backoff(cfg.RetransmitInterval, sa.retries, cfg.Jitter)
	sa.deadline = time.Now().Add(wait)
	sa.timerGeneration++
	generation := sa.timerGeneration
	if sa.timer != nil {
		sa.timer.Stop()
	}
	sa.timer = time.AfterFunc(wait, func() { sa.retransmit(generation) })
}

func (sa *SA) retransmit(generation uint64) {
	sa.mu.Lock()
	if sa.state != state.InitSent || generation != sa.timerGeneration || sa.engine.isClosed() {
		sa.mu.Unlock()
		return
	}
	var d deferred
	e := sa.engine
	if sa.retries >= e.cfg.MaxRetransmits {
		d.notify = sa.fail(errors.Wrapf(ErrTimeout, "after %d retransmissions", sa.retries))
		d.remove = true
	} else {
		sa.retries++
		if err := e.resend(sa.retained, sa.remote, "retransmit"); err != nil {
			level.Warn(sa.logger).Log("msg", "retransmit failed", "err", err)
		}
		sa.armTimer()
	}
	sa.mu.Unlock()
	sa.finish(d)
}

func (sa *SA) handleInitResponse(msg *Message) error {
	sa.mu.Lock()
	d, err := sa.initResponse(msg)
	sa.mu.Unlock()
	sa.finish(d)
	return err
}

// initResponse must be called with mu held.
func (sa *SA) initResponse(msg *Message) (d deferred, err error) {
	if sa.state != state.InitSent {
		return d, errors.Wrapf(errNotWaiting, "response in %s", sa.state)
	}
	if n := msg.Payloads.GetNotification(protocol.COOKIE); n != nil {
		return d, sa.cookieResponse(n)
	}
	if n, code, found := errorNotification(msg); found {
		return sa.errorResponse(n, code), nil
	}
	return sa.initAccept(msg)
}

func (sa *SA) cookieResponse(n *protocol.NotifyPayload) error {
	if len(n.Data) == 0 || len(n.Data) > 64 {
		return errors.Wrapf(ErrInvalidResponse, "cookie of %d bytes", len(n.Data))
	}
	if sa.cookieRounds >= maxCookieRounds {
		return errors.Wrap(ErrInvalidResponse, "too many cookies")
	}
	sa.cookieRounds++
	sa.cookie = append([]byte{}, n.Data...)
	level.Debug(sa.logger).Log("msg", "responder asked for cookie")
	return sa.sendRequest()
}

func (sa *SA) errorResponse(n *protocol.NotifyPayload, code protocol.IkeErrorCode) (d deferred) {
	d.remove = true
	switch code {
	case protocol.ERR_NO_PROPOSAL_CHOSEN:
		d.notify = sa.fail(ErrNoMatchingProposal)
		return
	case protocol.ERR_INVALID_KE_PAYLOAD:
		group, err := n.DhGroup()
		if err == nil && !sa.retriedKeGroup && group != sa.dhGroup && sa.offers(group) {
			sa.retriedKeGroup = true
			level.Debug(sa.logger).Log("msg", "responder wants another group", "from", sa.dhGroup, "to", group)
			sa.dhGroup = group
			if err = sa.newKeyPair(); err == nil {
				err = sa.sendRequest()
			}
			if err == nil {
				return deferred{}
			}
			d.notify = sa.fail(err)
			return
		}
	}
	d.notify = sa.fail(peerError(code))
	return
}

func (sa *SA) offers(group protocol.DhTransformId) bool {
	for _, trs := range sa.proposals {
		if trs.DhGroup() == group {
			return true
		}
	}
	return false
}

// initAccept checks a positive response. A response that does not fit what
// we sent is dropped and the request stays outstanding.
func (sa *SA) initAccept(msg *Message) (d deferred, err error) {
	if err = msg.EnsurePayloads(InitPayloads); err != nil {
		return
	}
	if msg.IkeHeader.SpiR.IsZero() {
		return d, errors.Wrap(ErrInvalidResponse, "zero responder spi")
	}
	proposals := msg.Payloads.Get(protocol.PayloadTypeSA).(*protocol.SaPayload).Proposals
	if len(proposals) != 1 || !proposals[0].HasSingleTransformPerType() {
		return d, errors.Wrap(ErrInvalidResponse, "responder must choose exactly one proposal")
	}
	number := int(proposals[0].Number)
	if number < 1 || number > len(sa.proposals) {
		return d, errors.Wrapf(ErrInvalidResponse, "proposal number %d was not offered", number)
	}
	selection, err := protocol.SelectProposal(sa.proposals[number-1:number], proposals)
	if err != nil {
		return d, errors.Wrapf(ErrInvalidResponse, "proposal %d does not match the offer", number)
	}
	ke := msg.Payloads.Get(protocol.PayloadTypeKE).(*protocol.KePayload)
	if ke.DhTransformId != sa.dhGroup || selection.Transforms.DhGroup() != sa.dhGroup {
		return d, errors.Wrapf(ErrInvalidResponse, "responder used %s, selected %s, we sent %s",
			ke.DhTransformId, selection.Transforms.DhGroup(), sa.dhGroup)
	}

	c := sa.engine.crypto
	sa.selected = selection.Transforms
	sa.peerKe = ke.KeyData
	sa.nr = msg.Payloads.Get(protocol.PayloadTypeNonce).(*protocol.NoncePayload).Nonce
	sa.spiR = append(protocol.Spi{}, msg.IkeHeader.SpiR...)
	if msg.LocalAddr != nil {
		sa.local = msg.LocalAddr
	}
	secret, err := c.SharedSecret(sa.dhGroup, sa.dhPrivate, sa.peerKe)
	if err == nil {
		sa.keys, err = c.DeriveKeys(sa.selected, secret, sa.ni, sa.nr, sa.spiI, sa.spiR)
	}
	if err != nil {
		d.notify = sa.fail(errors.Wrap(ErrCryptoFailure, err.Error()))
		d.remove = true
		return d, nil
	}
	d.notify = sa.establish()
	alias := fullKey(sa.spiI, sa.spiR, Initiator)
	d.alias = &alias
	sa.linger()
	return d, nil
}
