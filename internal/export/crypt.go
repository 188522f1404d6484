package export

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

// Encrypted export layout: magic || salt || nonce || AES-GCM ciphertext.
// The magic header lets tools tell an encrypted export from a plain one.
var fileMagic = []byte("TCENC1")

const (
	saltSize      = 16
	kdfIterations = 200_000
	keySize       = 32
)

var (
	ErrNotEncrypted = errors.New("not an encrypted export")
	ErrBadCiphertext = errors.New("encrypted export truncated or corrupted")
)

func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, kdfIterations, keySize, sha256.New)
}

// Encrypt seals plain under a key derived from the passphrase.
func Encrypt(plain []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(fileMagic)+saltSize+len(nonce)+len(plain)+gcm.Overhead())
	out = append(out, fileMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plain, nil), nil
}

// Decrypt opens data produced by Encrypt with the same passphrase.
func Decrypt(data []byte, passphrase string) ([]byte, error) {
	if !bytes.HasPrefix(data, fileMagic) {
		return nil, ErrNotEncrypted
	}
	data = data[len(fileMagic):]
	if len(data) < saltSize {
		return nil, ErrBadCiphertext
	}
	salt := data[:saltSize]

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	rest := data[saltSize:]
	if len(rest) < gcm.NonceSize() {
		return nil, ErrBadCiphertext
	}
	nonce := rest[:gcm.NonceSize()]

	plain, err := gcm.Open(nil, nonce, rest[gcm.NonceSize():], nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt export: %w", err)
	}
	return plain, nil
}

// EncryptFile replaces the plaintext file at path with an encrypted sibling
// carrying a .enc suffix and returns the new path.
func EncryptFile(path, passphrase string) (string, error) {
	plain, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sealed, err := Encrypt(plain, passphrase)
	if err != nil {
		return "", err
	}

	encPath := path + ".enc"
	if err := os.WriteFile(encPath, sealed, 0o600); err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", err
	}
	return encPath, nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
