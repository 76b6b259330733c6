package ike

import (
	"context"
	"net"
	"runtime"
	"testing"

	"github.com/msgboxio/ikecore/protocol"
)

func TestCheckV4onX(t *testing.T) {
	isV4, err := checkV4onX("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	if isV4 != (runtime.GOOS == "darwin") {
		t.Errorf("v4 on %s: %v", runtime.GOOS, isV4)
	}
}

func TestListenRejectsOtherNetworks(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("v4 addresses always use udp4 here")
	}
	if _, err := Listen("tcp", "[::1]:0", logger); err != ErrorUdpOnly {
		t.Fatalf("got %v", err)
	}
}

func listenLoopback(t *testing.T) (Conn, *net.UDPAddr) {
	t.Helper()
	conn, err := Listen("udp4", "127.0.0.1:0", logger)
	if err != nil {
		t.Skipf("no loopback udp: %v", err)
	}
	return conn, conn.(*pconnV4).LocalAddr().(*net.UDPAddr)
}

func TestNegotiateOverUDP(t *testing.T) {
	iConn, _ := listenLoopback(t)
	rConn, rAddr := listenLoopback(t)

	iEv, rEv := newEvents(), newEvents()
	props := []protocol.Transforms{gcmEcp256}
	ini := newTestEngine(t, nil, iConn, iEv.callbacks(), props)
	res := newTestEngine(t, nil, rConn, rEv.callbacks(), props)
	defer ini.Close()
	defer res.Close()

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 2)
	go func() { served <- ini.Serve(ctx, iConn) }()
	go func() { served <- res.Serve(ctx, rConn) }()

	if _, err := ini.Initiate(rAddr); err != nil {
		t.Fatal(err)
	}
	iEst := iEv.waitEstablished(t)
	rEst := rEv.waitEstablished(t)
	if !iEst.Keys.Equal(rEst.Keys) {
		t.Fatal("keys differ")
	}
	if rEst.Local == "" {
		t.Error("responder does not know its local address")
	}

	cancel()
	for i := 0; i < 2; i++ {
		if err := <-served; err != nil {
			t.Errorf("serve: %v", err)
		}
	}
}
