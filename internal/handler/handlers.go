// Package handler aggregates the transport handlers of the sync hub.
package handler

import (
	"errors"

	"github.com/MKhiriev/go-peer-sync/internal/config"
	"github.com/MKhiriev/go-peer-sync/internal/handler/http"
	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/service"
)

var errNoHandlersAreCreated = errors.New("no handlers are created: no server addresses configured")

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
