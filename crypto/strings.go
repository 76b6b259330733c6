package crypto

import "fmt"

func (cs *CipherSuite) String() string {
	if cs.aead != nil {
		return fmt.Sprintf("%s_%d+%s+%s", cs.EncrTransformId, cs.aead.keyLen*8, cs.Prf.PrfTransformId, cs.DhGroup)
	}
	return fmt.Sprintf("%s_%d+%s+%s+%s", cs.EncrTransformId, cs.KeyLen*8, cs.AuthTransformId, cs.Prf.PrfTransformId, cs.DhGroup)
}

func (group *modpGroup) String() string {
	return group.DhTransformId.String()
}

func (group *ecpGroup) String() string {
	return group.DhTransformId.String()
}

func (curve25519Group) String() string {
	return "CURVE25519"
}
