// Package crypto encrypts individual .env values in place.
//
// A passphrase is hashed with SHA-256 into a 256-bit key. The hash is
// unsalted: the same passphrase always yields the same key, so an encrypted
// file can be decrypted anywhere the passphrase is known, at the cost of no
// per-file key diversification.
//
// Values are sealed with XChaCha20-Poly1305 and stored as
//
//	enc:v1:<base64url(nonce || ciphertext || tag)>
//
// The enc:v1: marker identifies a value as already encrypted. Encryption
// skips marked values and decryption only touches marked values, so both
// directions are idempotent line by line.
package crypto
