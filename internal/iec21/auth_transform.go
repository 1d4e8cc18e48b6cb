package iec21

import "encoding/base64"

// EncryptPasswordWithSeed implements the P0/P2 seed transform of §4.A:
// Base64-decode seed; if it decodes to exactly 8 bytes use those, otherwise
// fall back to the raw seed bytes; XOR byte-wise, index-aligned, against
// the 8 ASCII digits of password. password must already be validated as
// exactly 8 ASCII digits by the caller (see internal/auth).
//
// The transform is involutive in the seed block: applying it twice with the
// same 8-byte key recovers the original password bytes, since XOR is its
// own inverse.
func EncryptPasswordWithSeed(password string, seed []byte) []byte {
	key := seed
	// Meters send the seed unpadded; StdEncoding rejects that, so try
	// RawStdEncoding first and fall back to StdEncoding for seeds that do
	// carry padding.
	if decoded, err := base64.RawStdEncoding.DecodeString(string(seed)); err == nil && len(decoded) == 8 {
		key = decoded
	} else if decoded, err := base64.StdEncoding.DecodeString(string(seed)); err == nil && len(decoded) == 8 {
		key = decoded
	}

	pwd := []byte(password)
	out := make([]byte, len(pwd))
	for i := range pwd {
		var k byte
		if i < len(key) {
			k = key[i]
		}
		out[i] = pwd[i] ^ k
	}
	return out
}
