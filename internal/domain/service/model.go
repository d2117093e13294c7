package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category constants
const (
	CategoryOffice = "office"
	CategoryHome   = "home"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{CategoryOffice, CategoryHome}

// Max length constants for user-editable fields.
const (
	MaxTitleLength = 100
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrTitleTooLong     = errors.New("title cannot exceed 100 characters")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidCategory  = errors.New("category must be one of: office, home")
)

// Service is one installation offering shown on the services page.
// OrderIndex is a sort key within Category; gaps are allowed.
type Service struct {
	ID          string
	Title       string
	Description string
	Category    string
	ImagePath   string
	OrderIndex  int
	Active      bool
	CreatedAt   time.Time
}

// Validate checks if the Service has valid data.
// PRE: Service struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if len(s.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(s.Description) == "" {
		return ErrEmptyDescription
	}
	if !IsValidCategory(s.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// HasImage reports whether an uploaded image is attached.
func (s *Service) HasImage() bool {
	return s.ImagePath != ""
}

// IsValidCategory reports whether c is a known category.
func IsValidCategory(c string) bool {
	for _, v := range ValidCategories {
		if v == c {
			return true
		}
	}
	return false
}

var defaultOffice = []string{
	"Modular Furniture Installation",
	"Executive Office Desk Installation",
	"Reception Desk Installation",
	"Modular Conference Table Installation",
	"Modular Cabin Table Installation",
	"Wardrobe Installation",
	"Cabinet Installation",
	"Office Workstation Installation",
}

var defaultHome = []string{
	"Bed Installation",
	"Bedroom Wardrobe Installation",
	"TV Unit Installation",
	"Modular Kitchen Installation",
}

// DefaultCatalogue returns the services seeded into an empty table.
// IDs and CreatedAt are left for the caller to fill.
func DefaultCatalogue() []Service {
	services := make([]Service, 0, len(defaultOffice)+len(defaultHome))
	for i, title := range defaultOffice {
		services = append(services, Service{
			Title:       title,
			Description: fmt.Sprintf("Professional %s service with experienced technicians and quality tools.", strings.ToLower(title)),
			Category:    CategoryOffice,
			OrderIndex:  i,
			Active:      true,
		})
	}
	for i, title := range defaultHome {
		services = append(services, Service{
			Title:       title,
			Description: fmt.Sprintf("Expert %s service for your home with precision and care.", strings.ToLower(title)),
			Category:    CategoryHome,
			OrderIndex:  i,
			Active:      true,
		})
	}
	return services
}
