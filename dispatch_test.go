package ike

import (
	"testing"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

func TestClassify(t *testing.T) {
	spi := protocol.Spi{1, 2, 3, 4, 5, 6, 7, 8}
	tests := []struct {
		name string
		hdr  protocol.IkeHeader
		want route
	}{
		{"init request", protocol.IkeHeader{SpiR: zeroSpi, MajorVersion: 2, ExchangeType: protocol.IKE_SA_INIT, Flags: protocol.INITIATOR}, routeInitRequest},
		{"init request with spiR", protocol.IkeHeader{SpiR: spi, MajorVersion: 2, ExchangeType: protocol.IKE_SA_INIT, Flags: protocol.INITIATOR}, routeDrop},
		{"init response", protocol.IkeHeader{SpiR: spi, MajorVersion: 2, ExchangeType: protocol.IKE_SA_INIT, Flags: protocol.RESPONSE}, routeInitResponse},
		{"notify response", protocol.IkeHeader{SpiR: zeroSpi, MajorVersion: 2, ExchangeType: protocol.IKE_SA_INIT, Flags: protocol.RESPONSE}, routeInitResponse},
		{"init with message id", protocol.IkeHeader{SpiR: zeroSpi, MajorVersion: 2, ExchangeType: protocol.IKE_SA_INIT, Flags: protocol.INITIATOR, MsgID: 1}, routeDrop},
		{"ikev1", protocol.IkeHeader{SpiR: zeroSpi, MajorVersion: 1, ExchangeType: protocol.IKE_SA_INIT, Flags: protocol.INITIATOR}, routeDrop},
		{"auth", protocol.IkeHeader{SpiR: spi, MajorVersion: 2, ExchangeType: protocol.IKE_AUTH, Flags: protocol.INITIATOR, MsgID: 1}, routePostInit},
		{"child sa", protocol.IkeHeader{SpiR: spi, MajorVersion: 2, ExchangeType: protocol.CREATE_CHILD_SA, MsgID: 2}, routePostInit},
		{"informational", protocol.IkeHeader{SpiR: spi, MajorVersion: 2, ExchangeType: protocol.INFORMATIONAL, Flags: protocol.RESPONSE, MsgID: 3}, routePostInit},
		{"resumption", protocol.IkeHeader{SpiR: zeroSpi, MajorVersion: 2, ExchangeType: protocol.IKE_SESSION_RESUME}, routeDrop},
		{"unknown exchange", protocol.IkeHeader{SpiR: spi, MajorVersion: 2, ExchangeType: 99}, routeDrop},
	}
	for _, tt := range tests {
		hdr := tt.hdr
		hdr.SpiI = spi
		if got := classify(&hdr); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestDropReason(t *testing.T) {
	for _, tt := range []struct {
		err  error
		want string
	}{
		{errors.Wrap(protocol.ErrLengthMismatch, "x"), "malformed"},
		{protocol.ErrInvalidSyntax, "malformed"},
		{errors.Wrap(ErrPolicyDenied, "x"), "denied"},
		{errUnroutable, "unroutable"},
		{errors.Wrap(errOrphan, "x"), "orphan"},
		{errCookieSent, "cookie"},
		{errNotWaiting, "state"},
		{errNotEstablished, "state"},
		{errRequestMismatch, "mismatch"},
		{errors.Wrap(ErrInvalidResponse, "x"), "invalid"},
		{errors.New("other"), "error"},
	} {
		if got := dropReason(tt.err); got != tt.want {
			t.Errorf("%v: got %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestOutcome(t *testing.T) {
	for _, tt := range []struct {
		err  error
		want string
	}{
		{nil, "established"},
		{ErrNoMatchingProposal, "no_proposal"},
		{errors.Wrap(ErrCryptoFailure, "dh"), "crypto_failure"},
		{ErrTimeout, "timeout"},
		{ErrAborted, "aborted"},
		{peerError(protocol.ERR_TEMPORARY_FAILURE), "peer_error"},
		{errors.Wrap(protocol.ERR_INVALID_KE_PAYLOAD, "group"), "invalid_ke"},
		{errEngineClosed, "error"},
	} {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("%v: got %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestErrorNotification(t *testing.T) {
	payloads := protocol.MakePayloads()
	payloads.Add(&protocol.NotifyPayload{PayloadHeader: &protocol.PayloadHeader{}, NotificationType: protocol.COOKIE, Data: []byte{1}})
	payloads.Add(&protocol.NotifyPayload{PayloadHeader: &protocol.PayloadHeader{}, NotificationType: protocol.TEMPORARY_FAILURE})
	msg := &Message{Payloads: payloads}
	n, code, ok := errorNotification(msg)
	if !ok || code != protocol.ERR_TEMPORARY_FAILURE || n.NotificationType != protocol.TEMPORARY_FAILURE {
		t.Fatalf("got %v %v %v", n, code, ok)
	}
	if _, _, ok := errorNotification(&Message{Payloads: protocol.MakePayloads()}); ok {
		t.Error("error found in empty message")
	}
}
