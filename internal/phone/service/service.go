// Package service orchestrates phone record operations against a Store and
// translates infrastructure sentinels into coded domain errors.
package service

import (
	"context"
	"errors"
	"log/slog"

	phonemetrics "phoneinventory/internal/phone/metrics"
	"phoneinventory/internal/phone/models"
	dErrors "phoneinventory/pkg/domain-errors"
	"phoneinventory/pkg/platform/sentinel"
)

// Store is the persistence contract for phone records. Implementations must
// enforce serial number and IMEI uniqueness atomically at commit time, so a
// race between two concurrent creates yields exactly one success.
type Store interface {
	Insert(ctx context.Context, phone *models.Phone) (*models.Phone, error)
	ListAll(ctx context.Context) ([]*models.Phone, error)
	FindBySerial(ctx context.Context, serialNumber string) (*models.Phone, error)
	Filter(ctx context.Context, field models.FieldSpec, value any) ([]*models.Phone, error)
	Update(ctx context.Context, phone *models.Phone) (*models.Phone, error)
	Delete(ctx context.Context, serialNumber string) error
}

// CreateInput carries the ten raw domain fields for record creation.
type CreateInput struct {
	SerialNumber        string
	IMEI                string
	Model               string
	Brand               string
	NetworkTechnologies []string
	NumberOfCameras     int
	NumberOfCores       int
	Weight              int
	BatteryCapacity     int
	Cost                float64
}

// FieldChange is one supplied field of a partial update, in payload order.
type FieldChange struct {
	Name  string
	Value any
}

// Service implements the record management operations.
type Service struct {
	phones  Store
	logger  *slog.Logger
	metrics *phonemetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *phonemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(phones Store, opts ...Option) *Service {
	s := &Service{phones: phones, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates all fields in the fixed order, assembles the record, and
// inserts it in one atomic step.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Phone, error) {
	phone, err := models.New(
		in.SerialNumber,
		in.IMEI,
		in.Model,
		in.Brand,
		in.NetworkTechnologies,
		in.NumberOfCameras,
		in.NumberOfCores,
		in.Weight,
		in.BatteryCapacity,
		in.Cost,
	)
	if err != nil {
		return nil, err
	}

	stored, err := s.phones.Insert(ctx, phone)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrDuplicateSerial):
			return nil, dErrors.New(dErrors.CodeConflict, "a phone with this serial number already exists")
		case errors.Is(err, sentinel.ErrDuplicateIMEI):
			return nil, dErrors.New(dErrors.CodeConflict, "a phone with this IMEI already exists")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "a phone with these unique fields already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create phone")
	}

	s.logger.InfoContext(ctx, "phone created",
		"serial_number", stored.SerialNumber,
		"id", stored.ID,
	)
	s.incrementCreated()
	return stored, nil
}

// List returns every record; an empty inventory yields an empty slice.
func (s *Service) List(ctx context.Context) ([]*models.Phone, error) {
	phones, err := s.phones.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list phones")
	}
	return phones, nil
}

// Get fetches one record by serial number.
func (s *Service) Get(ctx context.Context, serialNumber string) (*models.Phone, error) {
	phone, err := s.phones.FindBySerial(ctx, serialNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "phone not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load phone")
	}
	return phone, nil
}

// Update applies a partial update. Changes are processed in payload order and
// staged on a copy; the first rejected field aborts the whole update, so the
// store only ever sees a fully validated record. Identity fields are
// write-once and unknown fields are rejected outright.
func (s *Service) Update(ctx context.Context, serialNumber string, changes []FieldChange) (*models.Phone, error) {
	phone, err := s.Get(ctx, serialNumber)
	if err != nil {
		return nil, err
	}

	staged := phone.Clone()
	for _, change := range changes {
		field, ok := models.FieldByName(change.Name)
		if !ok {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "invalid field: %s", change.Name)
		}
		if field.Identity {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "updating field '%s' is not allowed", change.Name)
		}
		value, err := field.CoerceJSON(change.Value)
		if err != nil {
			return nil, err
		}
		if err := field.Set(staged, value); err != nil {
			return nil, err
		}
	}

	updated, err := s.phones.Update(ctx, staged)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "phone not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update phone")
	}

	s.incrementUpdated()
	return updated, nil
}

// Delete removes a record by serial number.
func (s *Service) Delete(ctx context.Context, serialNumber string) error {
	if err := s.phones.Delete(ctx, serialNumber); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "phone not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete phone")
	}
	s.logger.InfoContext(ctx, "phone deleted", "serial_number", serialNumber)
	s.incrementDeleted()
	return nil
}

// FilterByField returns records whose field matches the raw path value, after
// coercing it with the same table the update path uses.
func (s *Service) FilterByField(ctx context.Context, fieldName, rawValue string) ([]*models.Phone, error) {
	field, ok := models.FieldByName(fieldName)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "invalid field: %s", fieldName)
	}
	value, err := field.CoercePath(rawValue)
	if err != nil {
		return nil, err
	}

	phones, err := s.phones.Filter(ctx, field, value)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to filter phones")
	}

	s.incrementFilterQueries(fieldName)
	return phones, nil
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementPhonesCreated()
	}
}

func (s *Service) incrementUpdated() {
	if s.metrics != nil {
		s.metrics.IncrementPhonesUpdated()
	}
}

func (s *Service) incrementDeleted() {
	if s.metrics != nil {
		s.metrics.IncrementPhonesDeleted()
	}
}

func (s *Service) incrementFilterQueries(field string) {
	if s.metrics != nil {
		s.metrics.IncrementFilterQueries(field)
	}
}
