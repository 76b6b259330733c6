package main

import (
	"encoding/json"
	"os"
	"time"

	ike "github.com/msgboxio/ikecore"
	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// duration reads "5s" style strings.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "duration must be a string")
	}
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", raw)
	}
	d.Duration = parsed
	return nil
}

type daemonConfig struct {
	Listen  string `json:"listen"`
	Metrics string `json:"metrics"`
	Handoff string `json:"handoff_dir"`

	Suites  []string `json:"suites"`
	Allowed []string `json:"allowed"`

	NonceLength        int      `json:"nonce_length"`
	RetransmitInterval duration `json:"retransmit_interval"`
	MaxRetransmits     *int     `json:"max_retransmits"`
	Jitter             *float64 `json:"jitter"`
	Linger             duration `json:"linger"`
	CookieThreshold    int      `json:"cookie_threshold"`
	CookieRotate       duration `json:"cookie_rotate"`
	Workers            int      `json:"workers"`

	Initiate []string `json:"initiate"`
}

func defaultDaemonConfig() *daemonConfig {
	return &daemonConfig{
		Listen:       "0.0.0.0:500",
		Suites:       []string{"aes128gcm16-prfsha256-ecp256", "aes128-sha256-modp2048"},
		CookieRotate: duration{10 * time.Minute},
	}
}

func loadConfig(path string, into *daemonConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	if err := json.Unmarshal(data, into); err != nil {
		return errors.Wrap(err, "decode config")
	}
	return nil
}

// engineConfig fills in the engine defaults for everything left unset.
func (c *daemonConfig) engineConfig() (*ike.Config, error) {
	cfg := ike.DefaultConfig()
	if c.NonceLength != 0 {
		cfg.NonceLength = c.NonceLength
	}
	if c.RetransmitInterval.Duration != 0 {
		cfg.RetransmitInterval = c.RetransmitInterval.Duration
	}
	if c.MaxRetransmits != nil {
		cfg.MaxRetransmits = *c.MaxRetransmits
	}
	if c.Jitter != nil {
		cfg.Jitter = *c.Jitter
	}
	if c.Linger.Duration != 0 {
		cfg.Linger = c.Linger.Duration
	}
	cfg.CookieThreshold = c.CookieThreshold
	if c.Workers != 0 {
		cfg.Workers = c.Workers
	}
	return cfg, cfg.Validate()
}

func (c *daemonConfig) policy() (*ike.StaticPolicy, error) {
	if len(c.Suites) == 0 {
		return nil, errors.New("no suites configured")
	}
	var proposals []protocol.Transforms
	for _, name := range c.Suites {
		suite, ok := crypto.IkeSuites[name]
		if !ok {
			return nil, errors.Errorf("unknown suite %q", name)
		}
		if _, err := crypto.NewCipherSuite(suite); err != nil {
			return nil, errors.Wrapf(err, "suite %q", name)
		}
		proposals = append(proposals, suite)
	}
	allowed, err := ike.ParseNetworks(c.Allowed)
	if err != nil {
		return nil, err
	}
	return &ike.StaticPolicy{Allowed: allowed, Proposals: proposals}, nil
}
