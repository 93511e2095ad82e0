package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// Marker prefixes every encrypted value.
const Marker = "enc:v1:"

var (
	// ErrNotEncrypted is returned when decrypting a value without Marker.
	ErrNotEncrypted = errors.New("value is not encrypted")

	// ErrMalformed is returned for tokens that cannot be decoded.
	ErrMalformed = errors.New("malformed ciphertext")
)

// Key is a 256-bit symmetric key.
type Key [chacha20poly1305.KeySize]byte

// DeriveKey hashes passphrase into a Key. It is deterministic and unsalted.
func DeriveKey(passphrase string) Key {
	return Key(sha256.Sum256([]byte(passphrase)))
}

// String returns the key in URL-safe base64.
func (k Key) String() string {
	return base64.URLEncoding.EncodeToString(k[:])
}

// Service encrypts and decrypts single values.
type Service interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
}

// NoopService passes values through unchanged (dry runs and tests).
type NoopService struct{}

func (NoopService) Encrypt(plaintext string) (string, error) { return plaintext, nil }
func (NoopService) Decrypt(token string) (string, error)     { return token, nil }

// Codec is the XChaCha20-Poly1305 Service.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec returns a Codec for key.
func NewCodec(key Key) (*Codec, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}
	return &Codec{aead: aead}, nil
}

// NewCodecFromPassphrase derives a key from passphrase and returns its Codec.
func NewCodecFromPassphrase(passphrase string) (*Codec, error) {
	return NewCodec(DeriveKey(passphrase))
}

// IsEncrypted reports whether value carries the ciphertext marker.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, Marker)
}

func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonceSize := c.aead.NonceSize()
	nonce := make([]byte, nonceSize, nonceSize+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	// Seal appends to nonce: nonce || ciphertext || tag. The marker is bound
	// as associated data so a token cannot be relabelled under a future format.
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), []byte(Marker))
	return Marker + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *Codec) Decrypt(token string) (string, error) {
	if !IsEncrypted(token) {
		return "", ErrNotEncrypted
	}

	buffer, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(token, Marker))
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "failed to decode token"), ErrMalformed)
	}

	nonceSize := c.aead.NonceSize()
	if len(buffer) < nonceSize+c.aead.Overhead() {
		return "", errors.Wrap(ErrMalformed, "ciphertext too short")
	}

	nonce, sealed := buffer[:nonceSize], buffer[nonceSize:]
	plain, err := c.aead.Open(nil, nonce, sealed, []byte(Marker))
	if err != nil {
		return "", errors.Wrap(err, "failed to decrypt")
	}
	return string(plain), nil
}
