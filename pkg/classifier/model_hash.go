package classifier

import (
	"crypto/sha1"
	"encoding/hex"
)

type ModelHash [sha1.Size]byte

func HashModel(b []byte) ModelHash {
	return sha1.Sum(b)
}

func (h ModelHash) String() string {
	return hex.EncodeToString(h[:])
}
