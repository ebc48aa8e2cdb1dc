// Package property stores the display settings of the rented unit.
package property

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/models"
)

// Store holds the current property settings.
type Store struct {
	mu       sync.Mutex
	settings models.PropertySettings
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for UpdatedDate.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store seeded with initial. Seeding is not validated so a
// fresh install may start with blank settings.
func NewStore(initial models.PropertySettings, opts ...Option) *Store {
	s := &Store{
		settings: initial,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "property")
	return s
}

// Get returns the current settings.
func (s *Store) Get() models.PropertySettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update replaces the settings. Unit number and address are required.
func (s *Store) Update(settings models.PropertySettings, updatedBy string) (models.PropertySettings, error) {
	settings.UnitNo = strings.TrimSpace(settings.UnitNo)
	settings.Address = strings.TrimSpace(settings.Address)
	settings.PropertyName = strings.TrimSpace(settings.PropertyName)
	if settings.UnitNo == "" {
		return models.PropertySettings{}, apperr.Invalid("unit_no", "unit number is required")
	}
	if settings.Address == "" {
		return models.PropertySettings{}, apperr.Invalid("address", "address is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings.UpdatedBy = updatedBy
	settings.UpdatedDate = models.DateOf(s.now())
	s.settings = settings
	s.logger.Info("Property settings updated", "unit_no", settings.UnitNo, "updated_by", updatedBy)
	return settings, nil
}
