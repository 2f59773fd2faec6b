package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	// scrypt cost parameters recommended for interactive logins.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

func deriveKey(passphrase string, salt []byte) (*[keySize]byte, error) {
	raw, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}

// seal encrypts token and returns base64 box (nonce prefixed) and base64 salt.
func seal(token, passphrase string) (string, string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return "", "", err
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], []byte(token), &nonce, key)
	return base64.StdEncoding.EncodeToString(box), base64.StdEncoding.EncodeToString(salt), nil
}

func open(sealed, saltB64, passphrase string) (string, error) {
	box, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("invalid sealed token encoding: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return "", fmt.Errorf("invalid salt encoding: %w", err)
	}
	if len(box) < nonceSize+secretbox.Overhead {
		return "", errors.New("sealed token is truncated")
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, key)
	if !ok {
		return "", errors.New("wrong passphrase or corrupted token")
	}
	return string(plain), nil
}
