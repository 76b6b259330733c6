package ike

import (
	"bytes"
	"sync/atomic"

	"github.com/go-kit/kit/log/level"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/msgboxio/ikecore/state"
	"github.com/pkg/errors"
)

// inboundInit handles an IKE_SA_INIT request with a zero responder SPI.
func (e *Engine) inboundInit(msg *Message) error {
	if err := msg.EnsurePayloads(InitPayloads); err != nil {
		return err
	}
	spiI := msg.IkeHeader.SpiI
	key := halfOpenKey(spiI, addrKey(msg.RemoteAddr), Responder)
	if sa, found := e.table.get(key); found {
		return sa.handleInitRequest(msg)
	}
	proposals, err := e.policy.Lookup(msg.RemoteAddr)
	if err != nil {
		return err
	}
	if e.cookieRequired() {
		if err := e.checkCookie(msg); err != nil {
			return err
		}
	}
	sa := newSA(e, Responder, spiI, msg.RemoteAddr, msg.LocalAddr)
	sa.proposals = proposals
	// reserved before the context is visible, used only if we get that far
	for {
		spi, err := makeSpi(e.rand)
		if err != nil {
			return errors.Wrap(ErrCryptoFailure, err.Error())
		}
		if e.table.claimSpi(spi, sa) {
			sa.reservedSpi = spi
			break
		}
	}
	// counted before the context is visible
	sa.halfOpenHeld = true
	atomic.AddInt64(&e.halfOpen, 1)
	existing, inserted := e.table.insert(key, sa)
	if !inserted {
		e.halfOpenDone()
		e.table.remove(sa)
		return existing.handleInitRequest(msg)
	}
	e.metrics.Contexts.Set(float64(e.table.Len()))
	return sa.handleInitRequest(msg)
}

// checkCookie answers a request without a valid cookie with a fresh one.
func (e *Engine) checkCookie(msg *Message) error {
	spiI := msg.IkeHeader.SpiI
	ni := msg.Payloads.Get(protocol.PayloadTypeNonce).(*protocol.NoncePayload).Nonce
	if n := msg.Payloads.GetNotification(protocol.COOKIE); n != nil {
		if e.cookies.Verify(n.Data, ni, spiI, msg.RemoteAddr) {
			return nil
		}
		level.Debug(e.logger).Log("msg", "invalid cookie", "from", msg.RemoteAddr)
	}
	reply := cookieNotify(msg, e.cookies.Make(ni, spiI, msg.RemoteAddr))
	if _, err := e.send(reply, false); err != nil {
		return err
	}
	return errors.Wrapf(errCookieSent, "from %v", msg.RemoteAddr)
}

// handleInitRequest processes the request if nobody has yet, and
// otherwise treats it as a duplicate.
func (sa *SA) handleInitRequest(msg *Message) error {
	sa.mu.Lock()
	if sa.state != state.Idle {
		err := sa.inboundResp(msg)
		sa.mu.Unlock()
		return err
	}
	d, err := sa.respond(msg)
	sa.mu.Unlock()
	sa.finish(d)
	return err
}

// inboundResp answers a retransmitted request from the cached response.
// Must be called with mu held.
func (sa *SA) inboundResp(msg *Message) error {
	if sa.answeredResp == nil {
		return errors.Wrapf(errNotWaiting, "nothing to answer with in %s", sa.state)
	}
	if !bytes.Equal(sa.answeredReq, msg.Data) {
		level.Info(sa.logger).Log("msg", "changed request for existing SA", "state", sa.state)
		return errRequestMismatch
	}
	level.Debug(sa.logger).Log("msg", "answering duplicate request", "state", sa.state)
	return sa.engine.resend(sa.answeredResp, msg.RemoteAddr, "duplicate")
}

// respond runs the responder side of IKE_SA_INIT. Must be called with mu
// held, in Idle.
func (sa *SA) respond(msg *Message) (d deferred, err error) {
	e := sa.engine
	if err = sa.setState(state.InitReceived); err != nil {
		return
	}
	saPayload := msg.Payloads.Get(protocol.PayloadTypeSA).(*protocol.SaPayload)
	kePayload := msg.Payloads.Get(protocol.PayloadTypeKE).(*protocol.KePayload)
	sa.ni = msg.Payloads.Get(protocol.PayloadTypeNonce).(*protocol.NoncePayload).Nonce

	selection, err := protocol.SelectProposal(sa.proposals, saPayload.Proposals)
	if err != nil {
		reply := NoProposalChosen(sa.spiI, msg, protocol.IKE, nil)
		if b, serr := e.send(reply, false); serr != nil {
			level.Warn(sa.logger).Log("msg", "could not send NO_PROPOSAL_CHOSEN", "err", serr)
		} else {
			sa.answeredReq, sa.answeredResp = msg.Data, b
		}
		d.notify = sa.fail(ErrNoMatchingProposal)
		sa.linger()
		return d, nil
	}
	sa.selected = selection.Transforms
	sa.dhGroup = selection.Transforms.DhGroup()

	if kePayload.DhTransformId != sa.dhGroup {
		// the corrected retry must start from scratch, so nothing is kept
		reply := invalidKeNotify(msg, sa.dhGroup)
		if _, serr := e.send(reply, false); serr != nil {
			level.Warn(sa.logger).Log("msg", "could not send INVALID_KE_PAYLOAD", "err", serr)
		}
		d.notify = sa.fail(errors.Wrapf(protocol.ERR_INVALID_KE_PAYLOAD,
			"peer used %s, selected %s", kePayload.DhTransformId, sa.dhGroup))
		d.remove = true
		return d, nil
	}
	sa.peerKe = kePayload.KeyData

	if err := sa.responderKeys(); err != nil {
		d.notify = sa.fail(errors.Wrap(ErrCryptoFailure, err.Error()))
		d.remove = true
		return d, nil
	}

	reply := &Message{
		IkeHeader: &protocol.IkeHeader{
			SpiI:         sa.spiI,
			SpiR:         sa.reservedSpi,
			MajorVersion: protocol.IKEV2_MAJOR_VERSION,
			MinorVersion: protocol.IKEV2_MINOR_VERSION,
			ExchangeType: protocol.IKE_SA_INIT,
			Flags:        protocol.RESPONSE,
			MsgID:        msg.IkeHeader.MsgID,
		},
		Payloads:   initPayloads(protocol.Proposals{selection.Proposal(nil)}, sa.dhGroup, sa.localKe, sa.nr),
		LocalAddr:  msg.LocalAddr,
		RemoteAddr: msg.RemoteAddr,
	}
	b, err := e.send(reply, false)
	if err != nil {
		d.notify = sa.fail(err)
		d.remove = true
		return d, nil
	}
	sa.answeredReq, sa.answeredResp = msg.Data, b
	sa.spiR = sa.reservedSpi
	d.notify = sa.establish()
	alias := fullKey(sa.spiI, sa.spiR, Responder)
	d.alias = &alias
	sa.linger()
	return d, nil
}

// responderKeys makes Nr and our KE value, then the key set.
func (sa *SA) responderKeys() (err error) {
	c := sa.engine.crypto
	if sa.nr, err = c.Nonce(sa.engine.cfg.NonceLength); err != nil {
		return
	}
	if sa.localKe, sa.dhPrivate, err = c.GenerateKeyPair(sa.dhGroup); err != nil {
		return
	}
	secret, err := c.SharedSecret(sa.dhGroup, sa.dhPrivate, sa.peerKe)
	if err != nil {
		return
	}
	sa.keys, err = c.DeriveKeys(sa.selected, secret, sa.ni, sa.nr, sa.spiI, sa.reservedSpi)
	return
}

// initPayloads is SA | KE | Nonce, the body of both IKE_SA_INIT messages.
func initPayloads(proposals protocol.Proposals, group protocol.DhTransformId, ke, nonce []byte) *protocol.Payloads {
	payloads := protocol.MakePayloads()
	payloads.Add(&protocol.SaPayload{
		PayloadHeader: &protocol.PayloadHeader{},
		Proposals:     proposals,
	})
	payloads.Add(&protocol.KePayload{
		PayloadHeader: &protocol.PayloadHeader{},
		DhTransformId: group,
		KeyData:       ke,
	})
	payloads.Add(&protocol.NoncePayload{
		PayloadHeader: &protocol.PayloadHeader{},
		Nonce:         nonce,
	})
	return payloads
}
