package session

import (
	"crypto/sha256"
	"encoding/base64"
)

// Auth computes the Deribit secret-auth fields for a Logon (tags 96/554):
// a nonce (RawData) and a password derived from it together with the
// account's access key/secret and a timestamp. The exact digest composition
// is an exchange-specific detail this engine does not hard-code — callers
// supply it (or use DefaultSHA256Auth, a reasonable starting point) so a
// counterparty-specific scheme can be swapped in without touching the
// session machine.
type Auth interface {
	Sign(accessKey, secretKey, timestamp, nonce string) (rawData, password string)
}

// DefaultSHA256Auth implements the commonly documented Deribit FIX scheme:
// password = base64(SHA256(timestamp + "." + nonce + "." + secretKey)).
// Treat this as a default, not a guarantee — verify against the live
// gateway's current documentation before depending on it in production.
type DefaultSHA256Auth struct{}

func (DefaultSHA256Auth) Sign(accessKey, secretKey, timestamp, nonce string) (rawData, password string) {
	h := sha256.New()
	h.Write([]byte(timestamp))
	h.Write([]byte("."))
	h.Write([]byte(nonce))
	h.Write([]byte("."))
	h.Write([]byte(secretKey))
	sum := h.Sum(nil)
	return nonce, base64.StdEncoding.EncodeToString(sum)
}
