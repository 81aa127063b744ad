package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ByteAtATime/firebase-auth-extension/core"
	"github.com/ByteAtATime/firebase-auth-extension/internal/eth"
	"github.com/ByteAtATime/firebase-auth-extension/ports"
)

// AuthService handles authentication business logic: it verifies wallet
// signatures, has the authority mint credentials, and validates presented
// credentials for the endpoint guard.
type AuthService struct {
	authority ports.Authority
	store     ports.Store
	eventPub  ports.EventPublisher
	logger    *slog.Logger

	credentialTTL time.Duration
}

// NewAuthService creates a new authentication service. eventPub may be nil
// when cross-instance notifications are not configured.
func NewAuthService(
	authority ports.Authority,
	store ports.Store,
	eventPub ports.EventPublisher,
	credentialTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		authority:     authority,
		store:         store,
		eventPub:      eventPub,
		logger:        logger,
		credentialTTL: credentialTTL,
	}
}

// Authenticate verifies that signature was produced by signer over the
// typed auth message for timestamp, and mints a credential for the
// recovered address.
//
// Failures are distinguishable by the caller: core.ErrBadRequest for
// missing fields, core.ErrInvalidSignature when the recovered address does
// not match the claimed signer, and core.ErrIssuanceFailure when the
// authority could not mint the credential. There is no automatic retry;
// issuance faults surface immediately and the caller re-runs the whole
// flow, signature included.
func (s *AuthService) Authenticate(ctx context.Context, signer string, timestamp int64, signature string) (core.Credential, error) {
	if signer == "" || timestamp == 0 || signature == "" {
		return core.Credential{}, core.ErrBadRequest
	}

	sig, err := hexutil.Decode(signature)
	if err != nil {
		return core.Credential{}, fmt.Errorf("%w: malformed signature encoding", core.ErrInvalidSignature)
	}

	// Reconstruct the exact typed message the client signed
	message := core.AuthMessage(signer, timestamp)

	recovered, err := eth.RecoverAddress(message, sig)
	if err != nil {
		return core.Credential{}, fmt.Errorf("%w: %v", core.ErrInvalidSignature, err)
	}

	if recovered != common.HexToAddress(signer) {
		return core.Credential{}, core.ErrInvalidSignature
	}

	cred, err := s.authority.Issue(ctx, recovered.Hex(), s.credentialTTL)
	if err != nil {
		// Full detail stays in the log; the caller sees an opaque fault
		s.logger.Error("credential issuance failed", "address", recovered.Hex(), "error", err)
		return core.Credential{}, fmt.Errorf("%w: %v", core.ErrIssuanceFailure, err)
	}

	return cred, nil
}

// Validate checks a presented credential with the issuing authority and
// against the revocation store. Every failure mode collapses into
// core.ErrInvalidCredential so callers cannot probe why a credential was
// rejected.
func (s *AuthService) Validate(ctx context.Context, token string) (*core.Identity, error) {
	identity, err := s.authority.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidCredential, err)
	}

	revoked, err := s.store.IsRevoked(ctx, identity.CredentialID)
	if err != nil {
		// Fail closed: an unreachable store must not admit anyone
		s.logger.Error("revocation check failed", "credential_id", identity.CredentialID, "error", err)
		return nil, fmt.Errorf("%w: revocation check failed", core.ErrInvalidCredential)
	}
	if revoked {
		return nil, fmt.Errorf("%w: credential revoked", core.ErrInvalidCredential)
	}

	return identity, nil
}

// SignOut revokes the presented credential for the rest of its lifetime
// and notifies other instances.
func (s *AuthService) SignOut(ctx context.Context, identity *core.Identity) error {
	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 {
		// Keep a short-lived record anyway so slightly skewed clocks
		// cannot resurrect the credential
		ttl = time.Hour
	}

	if err := s.store.Revoke(ctx, identity.CredentialID, ttl); err != nil {
		return fmt.Errorf("failed to revoke credential: %w", err)
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishSignOut(ctx, identity.Address, identity.CredentialID); err != nil {
			// The credential is already revoked in the store, which is the
			// part that matters; don't fail the sign-out
			s.logger.Warn("failed to publish sign-out event", "address", identity.Address, "error", err)
		}
	}

	return nil
}
