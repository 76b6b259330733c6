package protocol

import "fmt"

func (p ProtocolId) String() string {
	switch p {
	case IKE:
		return "IKE"
	case AH:
		return "AH"
	case ESP:
		return "ESP"
	default:
		return "Unknown"
	}
}

func (p TransformType) String() string {
	switch p {
	case TRANSFORM_TYPE_ENCR:
		return "ENCR"
	case TRANSFORM_TYPE_PRF:
		return "PRF"
	case TRANSFORM_TYPE_INTEG:
		return "INTEG"
	case TRANSFORM_TYPE_DH:
		return "DH"
	case TRANSFORM_TYPE_ESN:
		return "ESN"
	default:
		return "Unknown"
	}
}

func (p PayloadType) String() string {
	switch p {
	case PayloadTypeNone:
		return "None"
	case PayloadTypeSA:
		return "SA"
	case PayloadTypeKE:
		return "KE"
	case PayloadTypeIDi:
		return "IDi"
	case PayloadTypeIDr:
		return "IDr"
	case PayloadTypeCERT:
		return "CERT"
	case PayloadTypeCERTREQ:
		return "CERTREQ"
	case PayloadTypeAUTH:
		return "AUTH"
	case PayloadTypeNonce:
		return "No"
	case PayloadTypeN:
		return "N"
	case PayloadTypeD:
		return "D"
	case PayloadTypeV:
		return "V"
	case PayloadTypeTSi:
		return "TSi"
	case PayloadTypeTSr:
		return "TSr"
	case PayloadTypeSK:
		return "SK"
	case PayloadTypeCP:
		return "CP"
	case PayloadTypeEAP:
		return "EAP"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(p))
	}
}

func (e IkeExchangeType) String() string {
	switch e {
	case IKE_SA_INIT:
		return "IKE_SA_INIT"
	case IKE_AUTH:
		return "IKE_AUTH"
	case CREATE_CHILD_SA:
		return "CREATE_CHILD_SA"
	case INFORMATIONAL:
		return "INFORMATIONAL"
	case IKE_SESSION_RESUME:
		return "IKE_SESSION_RESUME"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(e))
	}
}

func (f IkeFlags) String() string {
	s := ""
	if f.IsResponse() {
		s += "[R]"
	} else {
		s += "[I]"
	}
	if f.IsInitiator() {
		s += "[Init]"
	}
	return s
}

func (n NotificationType) String() string {
	switch n {
	case UNSUPPORTED_CRITICAL_PAYLOAD:
		return "UNSUPPORTED_CRITICAL_PAYLOAD"
	case INVALID_IKE_SPI:
		return "INVALID_IKE_SPI"
	case INVALID_MAJOR_VERSION:
		return "INVALID_MAJOR_VERSION"
	case INVALID_SYNTAX:
		return "INVALID_SYNTAX"
	case INVALID_MESSAGE_ID:
		return "INVALID_MESSAGE_ID"
	case INVALID_SPI:
		return "INVALID_SPI"
	case NO_PROPOSAL_CHOSEN:
		return "NO_PROPOSAL_CHOSEN"
	case INVALID_KE_PAYLOAD:
		return "INVALID_KE_PAYLOAD"
	case AUTHENTICATION_FAILED:
		return "AUTHENTICATION_FAILED"
	case TEMPORARY_FAILURE:
		return "TEMPORARY_FAILURE"
	case INITIAL_CONTACT:
		return "INITIAL_CONTACT"
	case NAT_DETECTION_SOURCE_IP:
		return "NAT_DETECTION_SOURCE_IP"
	case NAT_DETECTION_DESTINATION_IP:
		return "NAT_DETECTION_DESTINATION_IP"
	case COOKIE:
		return "COOKIE"
	case IKEV2_FRAGMENTATION_SUPPORTED:
		return "IKEV2_FRAGMENTATION_SUPPORTED"
	case SIGNATURE_HASH_ALGORITHMS:
		return "SIGNATURE_HASH_ALGORITHMS"
	default:
		return fmt.Sprintf("Notification(%d)", uint16(n))
	}
}

func (e EncrTransformId) String() string {
	switch e {
	case ENCR_3DES:
		return "ENCR_3DES"
	case ENCR_NULL:
		return "ENCR_NULL"
	case ENCR_AES_CBC:
		return "ENCR_AES_CBC"
	case ENCR_AES_CTR:
		return "ENCR_AES_CTR"
	case AEAD_AES_GCM_8:
		return "AEAD_AES_GCM_8"
	case AEAD_AES_GCM_12:
		return "AEAD_AES_GCM_12"
	case AEAD_AES_GCM_16:
		return "AEAD_AES_GCM_16"
	case ENCR_CAMELLIA_CBC:
		return "ENCR_CAMELLIA_CBC"
	case AEAD_CHACHA20_POLY1305:
		return "AEAD_CHACHA20_POLY1305"
	default:
		return fmt.Sprintf("ENCR(%d)", uint16(e))
	}
}

func (p PrfTransformId) String() string {
	switch p {
	case PRF_HMAC_MD5:
		return "PRF_HMAC_MD5"
	case PRF_HMAC_SHA1:
		return "PRF_HMAC_SHA1"
	case PRF_AES128_XCBC:
		return "PRF_AES128_XCBC"
	case PRF_HMAC_SHA2_256:
		return "PRF_HMAC_SHA2_256"
	case PRF_HMAC_SHA2_384:
		return "PRF_HMAC_SHA2_384"
	case PRF_HMAC_SHA2_512:
		return "PRF_HMAC_SHA2_512"
	default:
		return fmt.Sprintf("PRF(%d)", uint16(p))
	}
}

func (a AuthTransformId) String() string {
	switch a {
	case AUTH_NONE:
		return "AUTH_NONE"
	case AUTH_HMAC_SHA1_96:
		return "AUTH_HMAC_SHA1_96"
	case AUTH_AES_XCBC_96:
		return "AUTH_AES_XCBC_96"
	case AUTH_HMAC_SHA2_256_128:
		return "AUTH_HMAC_SHA2_256_128"
	case AUTH_HMAC_SHA2_384_192:
		return "AUTH_HMAC_SHA2_384_192"
	case AUTH_HMAC_SHA2_512_256:
		return "AUTH_HMAC_SHA2_512_256"
	default:
		return fmt.Sprintf("INTEG(%d)", uint16(a))
	}
}

func (d DhTransformId) String() string {
	switch d {
	case MODP_NONE:
		return "MODP_NONE"
	case MODP_1024:
		return "MODP_1024"
	case MODP_1536:
		return "MODP_1536"
	case MODP_2048:
		return "MODP_2048"
	case MODP_3072:
		return "MODP_3072"
	case MODP_4096:
		return "MODP_4096"
	case ECP_224:
		return "ECP_224"
	case ECP_256:
		return "ECP_256"
	case ECP_384:
		return "ECP_384"
	case ECP_521:
		return "ECP_521"
	case CURVE25519:
		return "CURVE25519"
	default:
		return fmt.Sprintf("DH(%d)", uint16(d))
	}
}

func (p Payloads) String() string {
	var pls []string
	for _, pl := range p.Array {
		if ty := pl.Type(); ty == PayloadTypeN {
			n := pl.(*NotifyPayload)
			pls = append(pls, fmt.Sprintf("N[%s]", n.NotificationType))
		} else {
			pls = append(pls, ty.String())
		}
	}
	return fmt.Sprintf("%v", pls)
}
