package ike

import (
	"net"
	"testing"
	"time"

	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
	for name, change := range map[string]func(*Config){
		"short nonce":      func(c *Config) { c.NonceLength = protocol.MIN_LEN_NONCE - 1 },
		"long nonce":       func(c *Config) { c.NonceLength = protocol.MAX_LEN_NONCE + 1 },
		"zero interval":    func(c *Config) { c.RetransmitInterval = 0 },
		"negative retries": func(c *Config) { c.MaxRetransmits = -1 },
		"negative jitter":  func(c *Config) { c.Jitter = -0.1 },
		"negative linger":  func(c *Config) { c.Linger = -time.Second },
		"negative cookies": func(c *Config) { c.CookieThreshold = -1 },
		"no workers":       func(c *Config) { c.Workers = 0 },
	} {
		cfg := DefaultConfig()
		change(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	policy := &StaticPolicy{Proposals: []protocol.Transforms{chachaX255}}
	if _, err := New(cfg, policy, newChanTransport(), nil); err == nil {
		t.Fatal("engine created with invalid config")
	}
}

func TestStaticPolicy(t *testing.T) {
	nets, err := ParseNetworks([]string{"192.0.2.0/30", "2001:db8::/32"})
	if err != nil {
		t.Fatal(err)
	}
	p := &StaticPolicy{Allowed: nets, Proposals: []protocol.Transforms{crypto.IkeSuites["aes128gcm16-prfsha256-ecp256"]}}

	for _, allowed := range []net.Addr{
		initiatorAddr,
		&net.UDPAddr{IP: net.ParseIP("2001:db8::1"), Port: 500},
		&net.IPAddr{IP: net.ParseIP("192.0.2.3")},
	} {
		props, err := p.Lookup(allowed)
		if err != nil || len(props) != 1 {
			t.Errorf("%v: %v", allowed, err)
		}
	}
	for _, denied := range []net.Addr{
		&net.UDPAddr{IP: net.ParseIP("192.0.2.4"), Port: 500},
		&net.UnixAddr{Name: "/tmp/ike", Net: "unixgram"},
	} {
		if _, err := p.Lookup(denied); errors.Cause(err) != ErrPolicyDenied {
			t.Errorf("%v: %v", denied, err)
		}
	}

	open := &StaticPolicy{Proposals: p.Proposals}
	if _, err := open.Lookup(responderAddr); err != nil {
		t.Error(err)
	}
	empty := &StaticPolicy{}
	if _, err := empty.Lookup(responderAddr); errors.Cause(err) != ErrPolicyDenied {
		t.Errorf("no proposals: %v", err)
	}

	if _, err := ParseNetworks([]string{"192.0.2.1"}); err == nil {
		t.Error("address accepted as a network")
	}
}

func TestBackoff(t *testing.T) {
	if d := backoff(time.Second, 0, 0); d != time.Second {
		t.Errorf("first wait %s", d)
	}
	if d := backoff(time.Second, 3, 0); d != 8*time.Second {
		t.Errorf("fourth wait %s", d)
	}
	if backoff(time.Second, 100, 0) != backoff(time.Second, 16, 0) {
		t.Error("backoff is not capped")
	}
	for i := 0; i < 100; i++ {
		d := Jitter(time.Second, 0.5)
		if d < time.Second || d > 1500*time.Millisecond {
			t.Fatalf("jitter out of range: %s", d)
		}
	}
}
