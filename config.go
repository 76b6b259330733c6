package ike

import (
	"time"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

type Config struct {
	// length of the nonces we generate
	NonceLength int

	// first retransmission happens after RetransmitInterval; each following
	// one waits twice as long, plus jitter
	RetransmitInterval time.Duration
	MaxRetransmits     int
	Jitter             float64

	// how long established and failed contexts answer duplicates
	Linger time.Duration

	// number of half open responder contexts at which cookies are required;
	// 0 never requires them
	CookieThreshold int

	// goroutines used by Serve
	Workers int
}

func DefaultConfig() *Config {
	return &Config{
		NonceLength:        32,
		RetransmitInterval: time.Second,
		MaxRetransmits:     5,
		Jitter:             0.2,
		Linger:             30 * time.Second,
		CookieThreshold:    0,
		Workers:            4,
	}
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.NonceLength < protocol.MIN_LEN_NONCE || cfg.NonceLength > protocol.MAX_LEN_NONCE:
		return errors.Errorf("nonce length %d must be between %d and %d",
			cfg.NonceLength, protocol.MIN_LEN_NONCE, protocol.MAX_LEN_NONCE)
	case cfg.RetransmitInterval <= 0:
		return errors.New("retransmit interval must be positive")
	case cfg.MaxRetransmits < 0:
		return errors.New("retransmit count cannot be negative")
	case cfg.Jitter < 0:
		return errors.New("jitter cannot be negative")
	case cfg.Linger < 0:
		return errors.New("linger cannot be negative")
	case cfg.CookieThreshold < 0:
		return errors.New("cookie threshold cannot be negative")
	case cfg.Workers < 1:
		return errors.New("need at least one worker")
	}
	return nil
}
