package docstore

import (
	"context"
	"fmt"

	"talentcrm/internal/platform/crypto"
)

// EncryptedBackend seals the document before it reaches the wrapped backend.
// Plaintext documents written before a key was configured still read back.
type EncryptedBackend struct {
	inner  Backend
	sealer *crypto.Service
}

func NewEncryptedBackend(inner Backend, sealer *crypto.Service) *EncryptedBackend {
	return &EncryptedBackend{inner: inner, sealer: sealer}
}

func (b *EncryptedBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.inner.Read(ctx)
	if err != nil {
		return nil, err
	}
	plain, err := b.sealer.Open(data)
	if err != nil {
		return nil, fmt.Errorf("open sealed document: %w", err)
	}
	return plain, nil
}

func (b *EncryptedBackend) Write(ctx context.Context, data []byte) error {
	sealed, err := b.sealer.Seal(data)
	if err != nil {
		return fmt.Errorf("seal document: %w", err)
	}
	return b.inner.Write(ctx, sealed)
}
