package ike

import (
	"context"
	"crypto/rand"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/msgboxio/ikecore/state"
	"github.com/pkg/errors"
)

// Crypto provides the primitives a negotiation needs. crypto.Tkm is the
// default implementation.
type Crypto interface {
	GenerateKeyPair(group protocol.DhTransformId) (public, private []byte, err error)
	SharedSecret(group protocol.DhTransformId, private, peerPublic []byte) ([]byte, error)
	DeriveKeys(suite protocol.Transforms, secret, ni, nr []byte, spiI, spiR protocol.Spi) (*crypto.KeySet, error)
	Nonce(length int) ([]byte, error)
}

// Engine negotiates IKE SAs over a Transport. Engines share nothing, so
// several can run in one process.
type Engine struct {
	cfg       Config
	policy    Policy
	crypto    Crypto
	transport Transport
	cb        Callback

	table   *Table
	cookies *CookieJar
	metrics *Metrics
	logger  log.Logger

	closed   int32
	halfOpen int64
	rand     io.Reader
}

type Option func(*Engine)

func WithCrypto(c Crypto) Option {
	return func(e *Engine) { e.crypto = c }
}

func WithLogger(logger log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithRand sets the source of SPIs.
func WithRand(r io.Reader) Option {
	return func(e *Engine) { e.rand = r }
}

func WithCookieJar(j *CookieJar) Option {
	return func(e *Engine) { e.cookies = j }
}

func New(cfg *Config, policy Policy, transport Transport, cb Callback, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if policy == nil || transport == nil {
		return nil, errors.New("engine needs a policy and a transport")
	}
	if cb == nil {
		cb = &Callbacks{}
	}
	e := &Engine{
		cfg:       *cfg,
		policy:    policy,
		transport: transport,
		cb:        cb,
		table:     NewTable(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.crypto == nil {
		e.crypto = crypto.NewTkm(nil)
	}
	if e.rand == nil {
		e.rand = rand.Reader
	}
	if e.logger == nil {
		e.logger = log.NewNopLogger()
	}
	if e.metrics == nil {
		e.metrics = NewMetrics(nil)
	}
	if e.cookies == nil {
		jar, err := NewCookieJar()
		if err != nil {
			return nil, err
		}
		e.cookies = jar
	}
	return e, nil
}

func (e *Engine) Table() *Table { return e.table }

func (e *Engine) Cookies() *CookieJar { return e.cookies }

func (e *Engine) isClosed() bool {
	return atomic.LoadInt32(&e.closed) != 0
}

// HalfOpen is the number of responder contexts that have done key exchange
// work without hearing from the peer since.
func (e *Engine) HalfOpen() int {
	return int(atomic.LoadInt64(&e.halfOpen))
}

func (e *Engine) halfOpenDone() {
	atomic.AddInt64(&e.halfOpen, -1)
}

func (e *Engine) cookieRequired() bool {
	return e.cfg.CookieThreshold > 0 &&
		atomic.LoadInt64(&e.halfOpen) >= int64(e.cfg.CookieThreshold)
}

func (e *Engine) removeSA(sa *SA) {
	sa.mu.Lock()
	sa.releaseHalfOpen()
	sa.mu.Unlock()
	if e.table.remove(sa) {
		e.metrics.Contexts.Set(float64(e.table.Len()))
	}
}

// Abort stops a negotiation, or drops an established context before its
// linger period ends.
func (e *Engine) Abort(sa *SA) {
	sa.mu.Lock()
	var d deferred
	if !sa.state.Terminal() {
		d.notify = sa.terminate(state.Aborted, ErrAborted)
		d.remove = true
	}
	sa.mu.Unlock()
	sa.finish(d)
}

// Abort is shorthand for the owning engine's Abort.
func (sa *SA) Abort() { sa.engine.Abort(sa) }

// Close stops every timer and empties the table. Callbacks are not run
// for contexts dropped this way.
func (e *Engine) Close() {
	if !atomic.CompareAndSwapInt32(&e.closed, 0, 1) {
		return
	}
	e.table.ForEach(func(sa *SA) {
		sa.mu.Lock()
		sa.stopTimers()
		sa.releaseHalfOpen()
		sa.mu.Unlock()
	})
	e.table.clear()
	e.metrics.Contexts.Set(0)
	level.Info(e.logger).Log("msg", "engine closed")
}

type datagram struct {
	b             []byte
	remote, local net.Addr
}

// Serve reads from conn and dispatches on cfg.Workers goroutines until ctx
// is done or conn fails. conn is closed on return.
func (e *Engine) Serve(ctx context.Context, conn Conn) (err error) {
	packets := make(chan datagram, e.cfg.Workers)
	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range packets {
				e.Dispatch(d.b, d.remote, d.local)
			}
		}()
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()
	for {
		b, remote, local, rerr := conn.ReadPacket()
		if rerr != nil {
			if ctx.Err() == nil {
				err = errors.Wrap(rerr, "read")
			}
			break
		}
		packets <- datagram{b: b, remote: remote, local: local}
	}
	close(done)
	close(packets)
	wg.Wait()
	return
}
