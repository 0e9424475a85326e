// Package cryptox implements local secret encryption: a lazily generated
// 256-bit key kept in a KeyStorage, and AES-GCM blobs of the form
// base64(nonce || ciphertext || tag).
package cryptox

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the length of the stored key material and the derived AES key.
	KeySize = 32
	// NonceSize is the AES-GCM standard nonce length.
	NonceSize = 12
)

// KeyStorage persists base64-encoded key material.
// LoadKey returns "" and a nil error when nothing is stored.
type KeyStorage interface {
	LoadKey(ctx context.Context) (string, error)
	SaveKey(ctx context.Context, key string) error
	DeleteKey(ctx context.Context) error
}

// Cipher encrypts and decrypts strings with a key bound to one namespace.
//
// The key material is read from storage on every call, so a replaced or
// deleted key takes effect immediately. When no usable material exists a new
// key is generated and persisted.
type Cipher struct {
	storage   KeyStorage
	namespace string
	logger    logging.Logger

	mu sync.Mutex
}

func NewCipher(storage KeyStorage, namespace string, logger logging.Logger) *Cipher {
	return &Cipher{storage: storage, namespace: namespace, logger: logger}
}

// getOrGenerateKey returns the AES key for the cipher namespace.
func (c *Cipher) getOrGenerateKey(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.storage.LoadKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("load key: %w", err)
	}

	if stored != "" {
		material, err := base64.StdEncoding.DecodeString(stored)
		if err == nil && len(material) == KeySize {
			defer common.WipeByteArray(material)
			return DeriveKey(material, c.namespace)
		}
		c.logger.Warn(ctx, "stored key material is unusable, generating a new key", "namespace", c.namespace)
	}

	material := common.GenerateRandByteArray(KeySize)
	defer common.WipeByteArray(material)

	if err := c.storage.SaveKey(ctx, base64.StdEncoding.EncodeToString(material)); err != nil {
		// The key still works for this call; the next call generates another one.
		c.logger.Warn(ctx, "failed to persist key material", "error", err)
	}

	return DeriveKey(material, c.namespace)
}

// DeriveKey derives the AES-256 key for namespace from key material via
// HKDF-SHA256 with the namespace as info.
func DeriveKey(material []byte, namespace string) ([]byte, error) {
	r := hkdf.New(sha256.New, material, nil, []byte(namespace))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt returns base64(nonce || ciphertext) for plaintext.
func (c *Cipher) Encrypt(ctx context.Context, plaintext string) (string, error) {
	key, err := c.getOrGenerateKey(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}
	defer common.WipeByteArray(key)

	blob, err := Seal(key, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt reverses Encrypt. Any malformed, tampered or foreign-key blob
// yields common.ErrDecryption.
func (c *Cipher) Decrypt(ctx context.Context, encoded string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid encoding", common.ErrDecryption)
	}

	key, err := c.getOrGenerateKey(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	defer common.WipeByteArray(key)

	plaintext, err := Open(key, blob)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptJSON serializes v to JSON and encrypts it.
func (c *Cipher) EncryptJSON(ctx context.Context, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}
	return c.Encrypt(ctx, string(data))
}

// DecryptJSON decrypts blob and unmarshals the JSON payload into v.
func (c *Cipher) DecryptJSON(ctx context.Context, blob string, v any) error {
	plaintext, err := c.Decrypt(ctx, blob)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(plaintext), v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return nil
}

// ClearKey removes the stored key material. Everything encrypted with it
// becomes unreadable.
func (c *Cipher) ClearKey(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage.DeleteKey(ctx)
}

// Seal encrypts plaintext with AES-GCM under key using a fresh random nonce
// and returns nonce || ciphertext.
func Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())

	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Open decrypts a nonce || ciphertext blob produced by Seal.
func Open(key, blob []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	if len(blob) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: blob too short", common.ErrDecryption)
	}

	nonce, ciphertext := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
