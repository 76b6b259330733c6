package ike

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"net"
	"sync"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// An implementation of COOKIE as specified in
// 2.6. IKE SA SPIs and Cookies

const (
	cookieVersionLen = 2
	cookieLen        = cookieVersionLen + sha256.Size
)

// CookieJar makes and checks cookies for one engine. The secret can be
// rotated; cookies made with the previous secret stay valid until the next
// rotation.
type CookieJar struct {
	mu       sync.Mutex
	version  uint16
	secret   [32]byte
	previous *[32]byte
}

func NewCookieJar() (*CookieJar, error) {
	j := &CookieJar{}
	if _, err := io.ReadFull(rand.Reader, j.secret[:]); err != nil {
		return nil, errors.Wrap(err, "cookie secret")
	}
	return j, nil
}

// Rotate replaces the secret with a fresh one.
func (j *CookieJar) Rotate() error {
	var next [32]byte
	if _, err := io.ReadFull(rand.Reader, next[:]); err != nil {
		return errors.Wrap(err, "cookie secret")
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	prev := j.secret
	j.previous = &prev
	j.secret = next
	j.version++
	return nil
}

func cookieHash(version uint16, secret *[32]byte, ni []byte, spiI protocol.Spi, remote net.Addr) []byte {
	// Cookie = <VersionIDofSecret> | Hash(Ni | IPi | SPIi | <secret>)
	digest := sha256.New()
	digest.Write(ni)
	digest.Write(AddrToIp(remote))
	digest.Write(spiI)
	digest.Write(secret[:])
	b := make([]byte, cookieVersionLen, cookieLen)
	binary.BigEndian.PutUint16(b, version)
	return digest.Sum(b)
}

// Make returns the cookie for an initiator.
func (j *CookieJar) Make(ni []byte, spiI protocol.Spi, remote net.Addr) []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return cookieHash(j.version, &j.secret, ni, spiI, remote)
}

// Verify checks a cookie echoed by an initiator.
func (j *CookieJar) Verify(cookie, ni []byte, spiI protocol.Spi, remote net.Addr) bool {
	if len(cookie) != cookieLen {
		return false
	}
	version := binary.BigEndian.Uint16(cookie)
	j.mu.Lock()
	var secret *[32]byte
	switch {
	case version == j.version:
		s := j.secret
		secret = &s
	case version == j.version-1 && j.previous != nil:
		s := *j.previous
		secret = &s
	}
	j.mu.Unlock()
	if secret == nil {
		return false
	}
	return hmac.Equal(cookie, cookieHash(version, secret, ni, spiI, remote))
}
