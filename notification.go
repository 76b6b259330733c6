package ike

import (
	"github.com/msgboxio/ikecore/protocol"
)

// NoProposalChosen builds the unprotected IKE_SA_INIT response that tells
// the initiator none of its proposals were acceptable. The responder SPI is
// left zero since no SA was created. Only negotiation mismatches are
// reported this way.
func NoProposalChosen(spiI protocol.Spi, request *Message, spiProto protocol.ProtocolId, spi protocol.Spi) *Message {
	return initNotify(spiI, request, &protocol.NotifyPayload{
		PayloadHeader:    &protocol.PayloadHeader{},
		ProtocolId:       spiProto,
		NotificationType: protocol.NO_PROPOSAL_CHOSEN,
		Spi:              append([]byte{}, spi...),
	})
}

// cookieNotify asks the initiator to repeat its request with cookie.
func cookieNotify(request *Message, cookie []byte) *Message {
	return initNotify(request.IkeHeader.SpiI, request, &protocol.NotifyPayload{
		PayloadHeader:    &protocol.PayloadHeader{},
		NotificationType: protocol.COOKIE,
		Data:             cookie,
	})
}

// invalidKeNotify names the group the initiator should have used.
func invalidKeNotify(request *Message, group protocol.DhTransformId) *Message {
	return initNotify(request.IkeHeader.SpiI, request, &protocol.NotifyPayload{
		PayloadHeader:    &protocol.PayloadHeader{},
		NotificationType: protocol.INVALID_KE_PAYLOAD,
		Data:             protocol.InvalidKeData(group),
	})
}

func initNotify(spiI protocol.Spi, request *Message, n *protocol.NotifyPayload) *Message {
	payloads := protocol.MakePayloads()
	payloads.Add(n)
	return &Message{
		IkeHeader: &protocol.IkeHeader{
			SpiI:         append(protocol.Spi{}, spiI...),
			SpiR:         append(protocol.Spi{}, zeroSpi...),
			MajorVersion: protocol.IKEV2_MAJOR_VERSION,
			MinorVersion: protocol.IKEV2_MINOR_VERSION,
			ExchangeType: protocol.IKE_SA_INIT,
			Flags:        protocol.RESPONSE,
			MsgID:        request.IkeHeader.MsgID,
		},
		Payloads:   payloads,
		LocalAddr:  request.LocalAddr,
		RemoteAddr: request.RemoteAddr,
	}
}

// errorNotification returns the first error notification in msg.
func errorNotification(msg *Message) (*protocol.NotifyPayload, protocol.IkeErrorCode, bool) {
	for _, n := range msg.Payloads.GetNotifications() {
		if code, ok := protocol.GetIkeErrorCode(n.NotificationType); ok {
			return n, code, true
		}
	}
	return nil, 0, false
}
