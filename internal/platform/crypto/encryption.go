package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// sealedPrefix marks payloads written by Seal so Open can pass legacy
// plaintext documents through untouched.
var sealedPrefix = []byte("TCRM1:")

var ErrCiphertextTooShort = errors.New("ciphertext too short")

type Service struct {
	key []byte
}

func New(key string) (*Service, error) {
	if key == "" {
		return &Service{key: nil}, nil
	}
	decoded, err := decodeKey(key)
	if err != nil {
		return nil, err
	}
	if len(decoded) != 32 {
		return nil, fmt.Errorf("CRM_DATA_ENCRYPTION_KEY must be 32 bytes after decoding")
	}
	return &Service{key: decoded}, nil
}

func (s *Service) Configured() bool {
	return s != nil && len(s.key) == 32
}

func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealedPrefix)
}

// Seal encrypts plain with AES-256-GCM. Without a key it returns plain as is.
func (s *Service) Seal(plain []byte) ([]byte, error) {
	if !s.Configured() {
		return plain, nil
	}
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(sealedPrefix)+len(nonce)+len(plain)+gcm.Overhead())
	out = append(out, sealedPrefix...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plain, nil), nil
}

// Open reverses Seal. Unsealed input is returned unchanged.
func (s *Service) Open(data []byte) ([]byte, error) {
	if !IsSealed(data) {
		return data, nil
	}
	if !s.Configured() {
		return nil, errors.New("document is encrypted but no key is configured")
	}
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	payload := data[len(sealedPrefix):]
	if len(payload) < gcm.NonceSize() {
		return nil, ErrCiphertextTooShort
	}
	nonce := payload[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, payload[gcm.NonceSize():], nil)
}

func (s *Service) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func decodeKey(raw string) ([]byte, error) {
	if len(raw) == 64 {
		decoded, err := hex.DecodeString(raw)
		if err == nil {
			return decoded, nil
		}
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return decoded, nil
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		return decoded, nil
	}
	return []byte(raw), nil
}
