// Package auth implements the admin credential scheme: an RSA key pair used
// as a shared secret. The server keeps the public half; callers present the
// private half, and the pair is matched by a sign/verify round trip.
package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const keyBits = 2048

var verifyMessage = []byte("key pair verification message")

type KeyPair struct {
	PublicPEM  string
	PrivatePEM string
}

// GenerateKeyPair produces a fresh RSA pair, PEM-encoded (PKCS8 private,
// PKIX public).
func GenerateKeyPair() (KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate RSA key: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return KeyPair{}, fmt.Errorf("marshal private key: %w", err)
	}
	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return KeyPair{}, fmt.Errorf("marshal public key: %w", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	return KeyPair{PublicPEM: string(publicPEM), PrivatePEM: string(privatePEM)}, nil
}

// VerifyKeyPair reports whether the private and public PEMs form a matched
// RSA pair. Any malformed input counts as a mismatch.
func VerifyKeyPair(privatePEM, publicPEM string) bool {
	privateKey, err := parsePrivateKey(privatePEM)
	if err != nil {
		log.Warn().Err(err).Msg("Key verification failed: bad private key")
		return false
	}
	publicKey, err := parsePublicKey(publicPEM)
	if err != nil {
		log.Warn().Err(err).Msg("Key verification failed: bad public key")
		return false
	}

	digest := sha256.Sum256(verifyMessage)
	signature, err := rsa.SignPSS(rand.Reader, privateKey, crypto.SHA256, digest[:], nil)
	if err != nil {
		log.Warn().Err(err).Msg("Key verification failed: signing error")
		return false
	}
	if err := rsa.VerifyPSS(publicKey, crypto.SHA256, digest[:], signature, nil); err != nil {
		return false
	}
	return true
}

func parsePrivateKey(privatePEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privatePEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in private key")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	privateKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not an RSA key")
	}
	return privateKey, nil
}

func parsePublicKey(publicPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in public key")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not an RSA key")
	}
	return publicKey, nil
}

// KeyToForm flattens a PEM for transport in headers and form fields.
func KeyToForm(pemText string) string {
	return strings.ReplaceAll(pemText, "\n", "\\n")
}

// FormToKey restores a PEM flattened by KeyToForm.
func FormToKey(formText string) string {
	return strings.ReplaceAll(formText, "\\n", "\n")
}
