package auth

import (
	"errors"
	"sync"

	"github.com/Thales-OM/hse-prog-task-transformer/config"
	"github.com/rs/zerolog/log"
)

var (
	// ErrKeyNotConfigured means no public key is installed yet, so no
	// credential can possibly verify.
	ErrKeyNotConfigured = errors.New("public auth key not configured")
	// ErrUnauthorized means the presented private key did not match the
	// installed public key.
	ErrUnauthorized = errors.New("credential does not match installed key")
)

// CredentialStore holds the runtime-mutable public key. It is injected, not
// process-global, and safe for concurrent renewals and verifications.
type CredentialStore struct {
	mu        sync.RWMutex
	publicPEM string
}

// NewCredentialStore seeds the store from config; an empty seed leaves the
// service locked until the first renewal.
func NewCredentialStore(cfg *config.Config) *CredentialStore {
	return &CredentialStore{publicPEM: cfg.Server.PublicAPIKey}
}

func (s *CredentialStore) PublicPEM() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.publicPEM, s.publicPEM != ""
}

func (s *CredentialStore) SetPublicPEM(publicPEM string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publicPEM = publicPEM
}

// Service exposes credential verification and renewal to the HTTP layer.
type Service struct {
	store *CredentialStore
}

func NewService(store *CredentialStore) *Service {
	return &Service{store: store}
}

// Renew generates a new pair, installs the public half and hands the private
// half back for the caller to keep. The previous credential stops working
// immediately.
func (s *Service) Renew() (string, error) {
	pair, err := GenerateKeyPair()
	if err != nil {
		return "", err
	}
	s.store.SetPublicPEM(pair.PublicPEM)
	log.Info().Msg("Admin credential renewed")
	return KeyToForm(pair.PrivatePEM), nil
}

// Verify checks a presented private PEM against the installed public key.
func (s *Service) Verify(privatePEM string) error {
	publicPEM, ok := s.store.PublicPEM()
	if !ok {
		return ErrKeyNotConfigured
	}
	if !VerifyKeyPair(FormToKey(privatePEM), publicPEM) {
		return ErrUnauthorized
	}
	return nil
}
