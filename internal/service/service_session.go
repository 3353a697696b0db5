package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-peer-sync/internal/config"
	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// sessionService is the concrete implementation of [SessionService]. A
// session token is the bridge between the certificate world and the request
// world: once a chain has validated, the leaf's instance identity, scope and
// delegated operations travel inside the token instead of being re-validated
// per request.
type sessionService struct {
	logger       *logger.Logger
	certificates CertificateService
	instanceID   string
	cfg          config.App
}

// NewSessionService constructs a [SessionService] issuing tokens on behalf of
// the given local instance.
func NewSessionService(certificates CertificateService, instanceID string, cfg config.App, logger *logger.Logger) SessionService {
	logger.Debug().Msg("creating session service")
	return &sessionService{
		logger:       logger,
		certificates: certificates,
		instanceID:   instanceID,
		cfg:          cfg,
	}
}

// Open implements [SessionService].
func (s *sessionService) Open(ctx context.Context, req models.SessionRequest) (models.SessionResponse, error) {
	leaf, err := s.certificates.Validate(ctx, req.Certificates)
	if err != nil {
		return models.SessionResponse{}, err
	}

	token, err := utils.GenerateSessionToken(
		s.cfg.TokenIssuer,
		leaf.Payload.InstanceID,
		leaf.Payload.Scope,
		leaf.Payload.Operations,
		s.cfg.TokenDuration,
		s.cfg.TokenSignKey,
	)
	if err != nil {
		return models.SessionResponse{}, fmt.Errorf("generate session token: %w", err)
	}

	s.logger.Info().
		Str("peer", leaf.Payload.InstanceID).
		Str("scope", leaf.Payload.Scope).
		Msg("opened sync session")

	return models.SessionResponse{
		Token:      token.SignedString,
		InstanceID: s.instanceID,
	}, nil
}

// ParseToken implements [SessionService].
func (s *sessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseSessionToken(tokenString, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return models.Token{}, ErrTokenIsExpired
	}
	if err != nil {
		return models.Token{}, err
	}

	return token, nil
}
