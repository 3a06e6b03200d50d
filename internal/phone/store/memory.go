package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"phoneinventory/internal/phone/models"
	"phoneinventory/pkg/platform/sentinel"
)

// InMemory keeps records in process memory. It backs unit and handler tests
// and lets the service run without a database; it favors clarity over
// performance.
type InMemory struct {
	mu     sync.RWMutex
	phones map[string]*models.Phone // keyed by serial number
	byIMEI map[string]string        // imei -> serial number
	nextID int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		phones: make(map[string]*models.Phone),
		byIMEI: make(map[string]string),
		nextID: 1,
	}
}

func (s *InMemory) Insert(_ context.Context, phone *models.Phone) (*models.Phone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.phones[phone.SerialNumber]; exists {
		return nil, sentinel.ErrDuplicateSerial
	}
	if _, exists := s.byIMEI[phone.IMEI]; exists {
		return nil, sentinel.ErrDuplicateIMEI
	}
	stored := phone.Clone()
	stored.ID = s.nextID
	s.nextID++
	s.phones[stored.SerialNumber] = stored
	s.byIMEI[stored.IMEI] = stored.SerialNumber
	return stored.Clone(), nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Phone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phones := make([]*models.Phone, 0, len(s.phones))
	for _, phone := range s.phones {
		phones = append(phones, phone.Clone())
	}
	// Stable order keeps list responses deterministic even though callers
	// must not rely on it.
	sort.Slice(phones, func(i, j int) bool { return phones[i].ID < phones[j].ID })
	return phones, nil
}

func (s *InMemory) FindBySerial(_ context.Context, serialNumber string) (*models.Phone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phone, ok := s.phones[serialNumber]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return phone.Clone(), nil
}

// Filter returns records matching the typed value for the given field, ordered
// by (brand, model, cost) ascending. For network_technologies the match is
// substring containment against the canonical delimited string.
func (s *InMemory) Filter(_ context.Context, field models.FieldSpec, value any) ([]*models.Phone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*models.Phone
	for _, phone := range s.phones {
		if fieldMatches(field, phone, value) {
			matched = append(matched, phone.Clone())
		}
	}
	sortByBrandModelCost(matched)
	return matched, nil
}

func (s *InMemory) Update(_ context.Context, phone *models.Phone) (*models.Phone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.phones[phone.SerialNumber]; !ok {
		return nil, sentinel.ErrNotFound
	}
	stored := phone.Clone()
	s.phones[stored.SerialNumber] = stored
	return stored.Clone(), nil
}

func (s *InMemory) Delete(_ context.Context, serialNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	phone, ok := s.phones[serialNumber]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byIMEI, phone.IMEI)
	delete(s.phones, serialNumber)
	return nil
}

func fieldMatches(field models.FieldSpec, phone *models.Phone, value any) bool {
	if field.Name == models.FieldNetworkTechnologies {
		needle, _ := value.(string)
		return strings.Contains(phone.CanonicalTechnologies(), needle)
	}
	return field.Get(phone) == value
}

func sortByBrandModelCost(phones []*models.Phone) {
	sort.Slice(phones, func(i, j int) bool {
		a, b := phones[i], phones[j]
		if a.Brand != b.Brand {
			return a.Brand < b.Brand
		}
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		return a.Cost < b.Cost
	})
}
