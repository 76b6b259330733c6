package ike

import (
	"io"
	"net"
	"os"
	"runtime"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Transport is where the engine writes datagrams.
type Transport interface {
	WritePacket(b []byte, remote net.Addr) error
}

// Conn is a Transport that can also be read by Serve.
type Conn interface {
	Transport
	// local carries the address the datagram was sent to, when known
	ReadPacket() (b []byte, remote, local net.Addr, err error)
	Close() error
}

var ErrorUdpOnly = errors.New("only udp is supported for now")

// section 2: implementations must accept at least 1280 bytes, and with
// fragmentation unsupported 3000 is plenty
const maxDatagram = 3000

type pconnV4 struct {
	p      *ipv4.PacketConn
	udp    net.PacketConn
	logger log.Logger
}

type pconnV6 struct {
	p      *ipv6.PacketConn
	udp    net.PacketConn
	logger log.Logger
}

// normally, if we bind on dual stack address
// on mac, receiving from v4 addresses does not give remote address
func checkV4onX(address string) (bool, error) {
	if runtime.GOOS != "darwin" {
		return false, nil
	}
	addr, err := net.ResolveUDPAddr("udp4", address)
	if err != nil {
		return false, err
	}
	return addr.IP.To4() != nil, nil
}

// Listen opens a UDP socket that reports the destination address of each
// datagram.
func Listen(network, address string, logger log.Logger) (Conn, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	isV4, err := checkV4onX(address)
	if err != nil {
		return nil, err
	}
	if isV4 {
		return listenUDP4(address, logger)
	}
	switch network {
	case "udp4":
		return listenUDP4(address, logger)
	case "udp6", "udp":
		return listenUDP6(address, logger)
	}
	return nil, ErrorUdpOnly
}

func listenUDP4(localString string, logger log.Logger) (*pconnV4, error) {
	udp, err := net.ListenPacket("udp4", localString)
	if err != nil {
		return nil, errors.Wrap(err, "listen")
	}
	p := ipv4.NewPacketConn(udp)
	// the interface could be set to any(0.0.0.0)
	// we need the exact address the packet came on
	cf := ipv4.FlagTTL | ipv4.FlagSrc | ipv4.FlagDst | ipv4.FlagInterface
	if err := p.SetControlMessage(cf, true); err != nil {
		if protocolNotSupported(err) {
			level.Warn(logger).Log("msg", "udp destination address detection not supported", "os", runtime.GOOS)
		} else {
			p.Close()
			return nil, err
		}
	}
	level.Info(logger).Log("msg", "socket listening", "addr", udp.LocalAddr())
	return &pconnV4{p: p, udp: udp, logger: logger}, nil
}

func listenUDP6(localString string, logger log.Logger) (*pconnV6, error) {
	udp, err := net.ListenPacket("udp", localString)
	if err != nil {
		return nil, errors.Wrap(err, "listen")
	}
	p := ipv6.NewPacketConn(udp)
	cf := ipv6.FlagSrc | ipv6.FlagDst | ipv6.FlagInterface
	if err := p.SetControlMessage(cf, true); err != nil {
		if protocolNotSupported(err) {
			level.Warn(logger).Log("msg", "udp destination address detection not supported", "os", runtime.GOOS)
		} else {
			p.Close()
			return nil, err
		}
	}
	level.Info(logger).Log("msg", "socket listening", "addr", udp.LocalAddr())
	return &pconnV6{p: p, udp: udp, logger: logger}, nil
}

func localAddr(udp net.PacketConn, dst net.IP) net.Addr {
	bound, ok := udp.LocalAddr().(*net.UDPAddr)
	if !ok {
		return udp.LocalAddr()
	}
	if dst == nil {
		return bound
	}
	return &net.UDPAddr{IP: dst, Port: bound.Port}
}

func (c *pconnV4) ReadPacket() (b []byte, remote, local net.Addr, err error) {
	b = make([]byte, maxDatagram)
	n, cm, remote, err := c.p.ReadFrom(b)
	if err != nil {
		return nil, nil, nil, err
	}
	var dst net.IP
	if cm != nil {
		dst = cm.Dst
	}
	level.Debug(c.logger).Log("msg", "read", "len", n, "from", remote)
	return b[:n], remote, localAddr(c.udp, dst), nil
}

func (c *pconnV6) ReadPacket() (b []byte, remote, local net.Addr, err error) {
	b = make([]byte, maxDatagram)
	n, cm, remote, err := c.p.ReadFrom(b)
	if err != nil {
		return nil, nil, nil, err
	}
	var dst net.IP
	if cm != nil { // nil on mac
		dst = cm.Dst
	}
	level.Debug(c.logger).Log("msg", "read", "len", n, "from", remote)
	return b[:n], remote, localAddr(c.udp, dst), nil
}

func (c *pconnV4) WritePacket(reply []byte, remote net.Addr) error {
	n, err := c.p.WriteTo(reply, nil, remote)
	if err != nil {
		return err
	} else if n != len(reply) {
		return io.ErrShortWrite
	}
	return nil
}

func (c *pconnV6) WritePacket(reply []byte, remote net.Addr) error {
	n, err := c.p.WriteTo(reply, nil, remote)
	if err != nil {
		return err
	} else if n != len(reply) {
		return io.ErrShortWrite
	}
	return nil
}

func (c *pconnV4) Close() error { return c.p.Close() }

func (c *pconnV6) Close() error { return c.p.Close() }

func (c *pconnV4) LocalAddr() net.Addr { return c.udp.LocalAddr() }

func (c *pconnV6) LocalAddr() net.Addr { return c.udp.LocalAddr() }

// copied from golang.org/x/net/internal/nettest
func protocolNotSupported(err error) bool {
	switch err := err.(type) {
	case syscall.Errno:
		switch err {
		case syscall.EPROTONOSUPPORT, syscall.ENOPROTOOPT:
			return true
		}
	case *os.SyscallError:
		switch err := err.Err.(type) {
		case syscall.Errno:
			switch err {
			case syscall.EPROTONOSUPPORT, syscall.ENOPROTOOPT:
				return true
			}
		}
	}
	return false
}
