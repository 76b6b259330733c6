package ike

import (
	"net"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
)

var logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))

var (
	initiatorAddr = &net.UDPAddr{IP: net.IPv4(192, 0, 2, 1), Port: 500}
	responderAddr = &net.UDPAddr{IP: net.IPv4(192, 0, 2, 2), Port: 500}
)

var (
	gcmEcp256  = crypto.IkeSuites["aes128gcm16-prfsha256-ecp256"]
	chachaX255 = crypto.IkeSuites["chacha20poly1305-prfsha256-x25519"]
	cbcModp14  = crypto.IkeSuites["aes128-sha256-modp2048"]
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.RetransmitInterval = time.Minute
	cfg.MaxRetransmits = 2
	cfg.Jitter = 0
	cfg.Linger = time.Minute
	return cfg
}

type packet struct {
	b  []byte
	to net.Addr
}

// chanTransport keeps everything written for the test to inspect
type chanTransport struct {
	ch chan packet
}

func newChanTransport() *chanTransport {
	return &chanTransport{ch: make(chan packet, 256)}
}

func (c *chanTransport) WritePacket(b []byte, to net.Addr) error {
	c.ch <- packet{b: append([]byte{}, b...), to: to}
	return nil
}

func (c *chanTransport) next(t *testing.T) packet {
	t.Helper()
	select {
	case p := <-c.ch:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("nothing was sent")
	}
	return packet{}
}

func (c *chanTransport) none(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case p := <-c.ch:
		t.Fatalf("unexpected %d bytes to %v", len(p.b), p.to)
	case <-time.After(wait):
	}
}

// wire carries one engine's writes to another engine, on its own goroutine
type wire struct {
	from, to net.Addr
	ch       chan []byte
	sent     chan []byte
	dropping int32
}

func newWire(from, to net.Addr) *wire {
	return &wire{from: from, to: to, ch: make(chan []byte, 64), sent: make(chan []byte, 64)}
}

func (w *wire) WritePacket(b []byte, to net.Addr) error {
	b = append([]byte{}, b...)
	select {
	case w.sent <- b:
	default:
	}
	if atomic.LoadInt32(&w.dropping) == 0 {
		w.ch <- b
	}
	return nil
}

func (w *wire) deliver(dst *Engine) {
	go func() {
		for b := range w.ch {
			dst.Dispatch(b, w.from, w.to)
		}
	}()
}

type events struct {
	established chan *EstablishedSA
	failed      chan error
	forwarded   chan []byte
}

func newEvents() *events {
	return &events{
		established: make(chan *EstablishedSA, 64),
		failed:      make(chan error, 64),
		forwarded:   make(chan []byte, 64),
	}
}

func (ev *events) callbacks() *Callbacks {
	return &Callbacks{
		OnEstablished: func(sa *SA, est *EstablishedSA) { ev.established <- est },
		OnFailed:      func(sa *SA, err error) { ev.failed <- err },
		OnForward:     func(sa *SA, hdr *protocol.IkeHeader, b []byte) { ev.forwarded <- b },
	}
}

func (ev *events) waitEstablished(t *testing.T) *EstablishedSA {
	t.Helper()
	select {
	case est := <-ev.established:
		return est
	case err := <-ev.failed:
		t.Fatalf("failed instead: %+v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("not established")
	}
	return nil
}

func (ev *events) waitFailed(t *testing.T) error {
	t.Helper()
	select {
	case err := <-ev.failed:
		return err
	case est := <-ev.established:
		t.Fatalf("established instead: %x", []byte(est.SpiR))
	case <-time.After(5 * time.Second):
		t.Fatal("no failure reported")
	}
	return nil
}

// countingCrypto counts the expensive calls
type countingCrypto struct {
	Crypto
	pairs, secrets, derived, nonces int32
}

func newCountingCrypto() *countingCrypto {
	return &countingCrypto{Crypto: crypto.NewTkm(nil)}
}

func (c *countingCrypto) GenerateKeyPair(group protocol.DhTransformId) ([]byte, []byte, error) {
	atomic.AddInt32(&c.pairs, 1)
	return c.Crypto.GenerateKeyPair(group)
}

func (c *countingCrypto) SharedSecret(group protocol.DhTransformId, private, peerPublic []byte) ([]byte, error) {
	atomic.AddInt32(&c.secrets, 1)
	return c.Crypto.SharedSecret(group, private, peerPublic)
}

func (c *countingCrypto) DeriveKeys(suite protocol.Transforms, secret, ni, nr []byte, spiI, spiR protocol.Spi) (*crypto.KeySet, error) {
	atomic.AddInt32(&c.derived, 1)
	return c.Crypto.DeriveKeys(suite, secret, ni, nr, spiI, spiR)
}

func (c *countingCrypto) Nonce(length int) ([]byte, error) {
	atomic.AddInt32(&c.nonces, 1)
	return c.Crypto.Nonce(length)
}

func (c *countingCrypto) calls() int32 {
	return atomic.LoadInt32(&c.pairs) + atomic.LoadInt32(&c.secrets) +
		atomic.LoadInt32(&c.derived) + atomic.LoadInt32(&c.nonces)
}

// fixedCrypto always uses the same nonce and X25519 private value
type fixedCrypto struct {
	Crypto
	nonce, private []byte
}

func (c *fixedCrypto) Nonce(int) ([]byte, error) {
	return append([]byte{}, c.nonce...), nil
}

func (c *fixedCrypto) GenerateKeyPair(group protocol.DhTransformId) ([]byte, []byte, error) {
	if group != protocol.CURVE25519 {
		return c.Crypto.GenerateKeyPair(group)
	}
	public, err := crypto.PublicKey(group, c.private)
	return public, append([]byte{}, c.private...), err
}

func newTestEngine(t *testing.T, cfg *Config, transport Transport, cb Callback, proposals []protocol.Transforms, opts ...Option) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	opts = append([]Option{WithLogger(logger)}, opts...)
	e, err := New(cfg, &StaticPolicy{Proposals: proposals}, transport, cb, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// pair connects an initiator and a responder engine
type pair struct {
	ini, res         *Engine
	iEv, rEv         *events
	toRes, toIni     *wire
	iCrypto, rCrypto *countingCrypto
}

func newPair(t *testing.T, iCfg, rCfg *Config, iProps, rProps []protocol.Transforms) *pair {
	p := &pair{
		iEv:     newEvents(),
		rEv:     newEvents(),
		toRes:   newWire(initiatorAddr, responderAddr),
		toIni:   newWire(responderAddr, initiatorAddr),
		iCrypto: newCountingCrypto(),
		rCrypto: newCountingCrypto(),
	}
	p.ini = newTestEngine(t, iCfg, p.toRes, p.iEv.callbacks(), iProps, WithCrypto(p.iCrypto))
	p.res = newTestEngine(t, rCfg, p.toIni, p.rEv.callbacks(), rProps, WithCrypto(p.rCrypto))
	p.toRes.deliver(p.res)
	p.toIni.deliver(p.ini)
	return p
}

func (p *pair) close() {
	p.ini.Close()
	p.res.Close()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
