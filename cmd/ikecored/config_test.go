package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ikecored.json")
	doc := `{
		"listen": "127.0.0.1:4500",
		"suites": ["chacha20poly1305-prfsha256-x25519"],
		"allowed": ["192.0.2.0/24"],
		"retransmit_interval": "250ms",
		"max_retransmits": 0,
		"linger": "2m",
		"cookie_threshold": 16
	}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	c := defaultDaemonConfig()
	if err := loadConfig(path, c); err != nil {
		t.Fatal(err)
	}
	if c.Listen != "127.0.0.1:4500" || c.CookieRotate.Duration != 10*time.Minute {
		t.Fatalf("%+v", c)
	}
	cfg, err := c.engineConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RetransmitInterval != 250*time.Millisecond || cfg.MaxRetransmits != 0 ||
		cfg.Linger != 2*time.Minute || cfg.CookieThreshold != 16 || cfg.NonceLength != 32 {
		t.Errorf("%+v", cfg)
	}
	p, err := c.policy()
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Proposals) != 1 || len(p.Allowed) != 1 {
		t.Errorf("%+v", p)
	}
}

func TestConfigErrors(t *testing.T) {
	c := defaultDaemonConfig()
	c.Suites = []string{"rot13"}
	if _, err := c.policy(); err == nil {
		t.Error("unknown suite accepted")
	}
	c = defaultDaemonConfig()
	c.Allowed = []string{"nonsense"}
	if _, err := c.policy(); err == nil {
		t.Error("bad network accepted")
	}
	c = defaultDaemonConfig()
	c.Workers = -1
	if _, err := c.engineConfig(); err == nil {
		t.Error("negative workers accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte(`{"linger": 30}`), 0o600)
	if err := loadConfig(path, defaultDaemonConfig()); err == nil {
		t.Error("numeric duration accepted")
	}
}
