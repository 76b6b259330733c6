package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	ike "github.com/msgboxio/ikecore"
	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// daemon owns the established SAs handed over by the engine. The engine
// keeps each record with its context, so nothing is held here.
type daemon struct {
	logger    log.Logger
	handoff   string
	transport ike.Transport
}

func (d *daemon) Established(sa *ike.SA, est *ike.EstablishedSA) {
	level.Info(d.logger).Log("msg", "established", "sa", sa, "transforms", est.Transforms)
	level.Debug(d.logger).Log("record", spew.Sdump(est))
	if d.handoff == "" {
		return
	}
	b, err := est.MarshalBinary()
	if err == nil {
		name := filepath.Join(d.handoff, fmt.Sprintf("%x-%x.cbor", []byte(est.SpiI), []byte(est.SpiR)))
		err = os.WriteFile(name, b, 0o600)
	}
	if err != nil {
		level.Error(d.logger).Log("msg", "handoff", "sa", sa, "err", err)
	}
}

func (d *daemon) Failed(sa *ike.SA, err error) {
	level.Warn(d.logger).Log("msg", "failed", "sa", sa, "err", err)
}

// Forward checks that the SK payload opens and answers liveness checks;
// IKE_AUTH itself is handled elsewhere.
func (d *daemon) Forward(sa *ike.SA, hdr *protocol.IkeHeader, b []byte) {
	logger := log.With(d.logger, "sa", sa, "exchange", hdr.ExchangeType, "msgid", hdr.MsgID)
	est := sa.Record()
	if est == nil {
		level.Debug(logger).Log("msg", "forwarded", "len", len(b))
		return
	}
	reply, err := d.answer(est, hdr, b)
	if err != nil {
		level.Warn(logger).Log("msg", "forwarded message does not open", "err", err)
		return
	}
	if reply == nil {
		return
	}
	if err := d.transport.WritePacket(reply, sa.RemoteAddr()); err != nil {
		level.Warn(logger).Log("msg", "liveness reply", "err", err)
	}
}

// answer opens b and returns the reply to send, if any.
func (d *daemon) answer(est *ike.EstablishedSA, hdr *protocol.IkeHeader, b []byte) ([]byte, error) {
	logger := log.With(d.logger, "exchange", hdr.ExchangeType, "msgid", hdr.MsgID)
	if hdr.NextPayload != protocol.PayloadTypeSK {
		level.Debug(logger).Log("msg", "forwarded", "len", len(b))
		return nil, nil
	}
	cs, err := est.CipherSuite()
	if err != nil || !cs.IsAead() {
		level.Debug(logger).Log("msg", "forwarded", "len", len(b), "suite", est.Transforms)
		return nil, nil
	}
	// the peer's outbound keys are our inbound keys
	skE, _ := est.InboundKeys()
	inner, err := cs.Open(b, skE)
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "forwarded", "inner", len(inner))
	if hdr.ExchangeType != protocol.INFORMATIONAL || hdr.Flags.IsResponse() || len(inner) != 0 {
		return nil, nil
	}
	return sealInformational(est, cs, hdr.MsgID, true)
}

// sealInformational builds an INFORMATIONAL message with an empty SK
// payload under our outbound keys.
func sealInformational(est *ike.EstablishedSA, cs *crypto.CipherSuite, msgID uint32, response bool) ([]byte, error) {
	var flags protocol.IkeFlags
	if est.Initiator {
		flags |= protocol.INITIATOR
	}
	if response {
		flags |= protocol.RESPONSE
	}
	skLen := cs.Overhead(nil)
	headers := (&protocol.IkeHeader{
		SpiI:         est.SpiI,
		SpiR:         est.SpiR,
		NextPayload:  protocol.PayloadTypeSK,
		MajorVersion: protocol.IKEV2_MAJOR_VERSION,
		MinorVersion: protocol.IKEV2_MINOR_VERSION,
		ExchangeType: protocol.INFORMATIONAL,
		Flags:        flags,
		MsgID:        msgID,
		MsgLength:    uint32(protocol.IKE_HEADER_LEN) + uint32(protocol.PAYLOAD_HEADER_LENGTH) + uint32(skLen),
	}).Encode()
	headers = append(headers, protocol.PayloadHeader{
		NextPayload:   protocol.PayloadTypeNone,
		PayloadLength: uint16(skLen),
	}.Encode()...)
	skE, _ := est.OutboundKeys()
	return cs.Seal(headers, nil, skE)
}

func waitForSignal(cancel context.CancelFunc, logger log.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	level.Info(logger).Log("msg", "received signal", "signal", sig)
	cancel()
}

func rotateCookies(ctx context.Context, jar *ike.CookieJar, every time.Duration, logger log.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := jar.Rotate(); err != nil {
				level.Error(logger).Log("msg", "cookie rotation", "err", err)
			}
		}
	}
}

func main() {
	var configPath, listen, metricsAddr, handoff, initiate string
	var verbose bool
	flag.StringVar(&configPath, "config", "", "path to JSON config file")
	flag.StringVar(&listen, "local", "", "address to bind to")
	flag.StringVar(&metricsAddr, "metrics", "", "address to serve /metrics on")
	flag.StringVar(&handoff, "handoff", "", "directory for established SA records")
	flag.StringVar(&initiate, "remote", "", "address to negotiate with")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	c := defaultDaemonConfig()
	if configPath != "" {
		if err := loadConfig(configPath, c); err != nil {
			level.Error(logger).Log("msg", "config", "err", err)
			os.Exit(1)
		}
	}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "local":
			c.Listen = listen
		case "metrics":
			c.Metrics = metricsAddr
		case "handoff":
			c.Handoff = handoff
		case "remote":
			c.Initiate = append(c.Initiate, initiate)
		}
	})
	cfg, err := c.engineConfig()
	if err != nil {
		level.Error(logger).Log("msg", "config", "err", err)
		os.Exit(1)
	}
	policy, err := c.policy()
	if err != nil {
		level.Error(logger).Log("msg", "config", "err", err)
		os.Exit(1)
	}

	conn, err := ike.Listen("udp", c.Listen, logger)
	if err != nil {
		level.Error(logger).Log("msg", "listen", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "socket listening", "addr", c.Listen)

	jar, err := ike.NewCookieJar()
	if err != nil {
		level.Error(logger).Log("msg", "cookies", "err", err)
		os.Exit(1)
	}
	d := &daemon{
		logger:    logger,
		handoff:   c.Handoff,
		transport: conn,
	}
	engine, err := ike.New(cfg, policy, conn, d,
		ike.WithLogger(logger),
		ike.WithMetrics(ike.NewMetrics(prometheus.DefaultRegisterer)),
		ike.WithCookieJar(jar))
	if err != nil {
		level.Error(logger).Log("msg", "engine", "err", err)
		os.Exit(1)
	}

	if c.Metrics != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(c.Metrics, mux); err != nil {
				level.Error(logger).Log("msg", "metrics", "err", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	go waitForSignal(cancel, logger)
	go rotateCookies(ctx, jar, c.CookieRotate.Duration, logger)

	for _, remote := range c.Initiate {
		addr, err := net.ResolveUDPAddr("udp", remote)
		if err != nil {
			level.Error(logger).Log("msg", "remote", "addr", remote, "err", err)
			continue
		}
		if _, err := engine.Initiate(addr); err != nil {
			level.Error(logger).Log("msg", "initiate", "addr", remote, "err", err)
		}
	}

	err = engine.Serve(ctx, conn)
	engine.Close()
	if err != nil {
		level.Error(logger).Log("msg", "serve", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "finished")
}
