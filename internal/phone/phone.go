// Package phone is the facade for the phone inventory feature.
package phone

import (
	"log/slog"

	"phoneinventory/internal/phone/handler"
	"phoneinventory/internal/phone/service"
)

// Service exposes phone record orchestration.
type Service = service.Service

// Handler wires HTTP endpoints to the phone service.
type Handler = handler.Handler

// NewService constructs the phone service with its store and options.
func NewService(phones service.Store, opts ...service.Option) *Service {
	return service.New(phones, opts...)
}

// NewHandler constructs an HTTP handler for the phone routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
