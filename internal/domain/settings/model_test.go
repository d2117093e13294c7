package settings_test

import (
	"testing"
	"time"

	"furnitech/internal/domain/settings"
)

// TestNewDefault verifies the documented defaults.
func TestNewDefault(t *testing.T) {
	now := time.Now()
	s := settings.NewDefault(now)

	if s.ID != settings.SingletonID {
		t.Errorf("ID = %q, want %q", s.ID, settings.SingletonID)
	}
	if s.CompanyName != "MTS Furnitech" {
		t.Errorf("CompanyName = %q", s.CompanyName)
	}
	if s.PhoneNumber != "+91 9702030763" {
		t.Errorf("PhoneNumber = %q", s.PhoneNumber)
	}
	if s.Email != "admin@mtsfurnitech.com" {
		t.Errorf("Email = %q", s.Email)
	}
	if s.LogoPath != "" {
		t.Errorf("LogoPath = %q, want empty", s.LogoPath)
	}
}

// TestSettings_ApplyContact tests partial contact updates.
func TestSettings_ApplyContact(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	t.Run("empty update changes nothing", func(t *testing.T) {
		s := settings.NewDefault(created)
		if s.ApplyContact(settings.ContactUpdate{}, later) {
			t.Error("ApplyContact returned true for empty update")
		}
		if !s.UpdatedAt.Equal(created) {
			t.Error("UpdatedAt must not change")
		}
	})

	t.Run("only supplied fields change", func(t *testing.T) {
		s := settings.NewDefault(created)
		changed := s.ApplyContact(settings.ContactUpdate{Email: "hello@example.com", Address: "Pune"}, later)
		if !changed {
			t.Fatal("ApplyContact returned false")
		}
		if s.Email != "hello@example.com" || s.Address != "Pune" {
			t.Errorf("Email/Address = %q/%q", s.Email, s.Address)
		}
		if s.PhoneNumber != settings.DefaultPhoneNumber || s.WhatsAppNumber != settings.DefaultWhatsAppNumber {
			t.Error("omitted fields must keep their prior value")
		}
		if !s.UpdatedAt.Equal(later) {
			t.Errorf("UpdatedAt = %v, want %v", s.UpdatedAt, later)
		}
	})
}

// TestSettings_SetLogo records the logo path.
func TestSettings_SetLogo(t *testing.T) {
	s := settings.NewDefault(time.Now())
	s.SetLogo("uploads/logo_1.png", time.Now())
	if s.LogoPath != "uploads/logo_1.png" {
		t.Errorf("LogoPath = %q", s.LogoPath)
	}
}
