package settings

import "time"

// SingletonID is the primary key of the only settings row.
const SingletonID = "site"

// Defaults for a fresh settings row.
const (
	DefaultWhatsAppNumber = "+91XXXXXXXXXX"
	DefaultPhoneNumber    = "+91 9702030763"
	DefaultEmail          = "admin@mtsfurnitech.com"
	DefaultAddress        = "R.No.67, 1st floor, LBS Nagar, korba mithaghar, wadala East Mumbai 700037"
	DefaultCompanyName    = "MTS Furnitech"
)

// Settings holds site-wide branding and contact details.
type Settings struct {
	ID             string
	LogoPath       string
	WhatsAppNumber string
	PhoneNumber    string
	Email          string
	Address        string
	CompanyName    string
	UpdatedAt      time.Time
}

// NewDefault builds the settings row created on first access.
func NewDefault(now time.Time) Settings {
	return Settings{
		ID:             SingletonID,
		WhatsAppNumber: DefaultWhatsAppNumber,
		PhoneNumber:    DefaultPhoneNumber,
		Email:          DefaultEmail,
		Address:        DefaultAddress,
		CompanyName:    DefaultCompanyName,
		UpdatedAt:      now,
	}
}

// ContactUpdate carries a partial edit of the contact fields.
// Empty fields leave the current value in place.
type ContactUpdate struct {
	PhoneNumber    string
	Email          string
	WhatsAppNumber string
	Address        string
}

// IsEmpty reports whether the update changes nothing.
func (u ContactUpdate) IsEmpty() bool {
	return u.PhoneNumber == "" && u.Email == "" && u.WhatsAppNumber == "" && u.Address == ""
}

// ApplyContact copies every non-empty field of u onto s.
// POST: returns true and refreshes UpdatedAt if any field was supplied
func (s *Settings) ApplyContact(u ContactUpdate, now time.Time) bool {
	if u.IsEmpty() {
		return false
	}
	if u.PhoneNumber != "" {
		s.PhoneNumber = u.PhoneNumber
	}
	if u.Email != "" {
		s.Email = u.Email
	}
	if u.WhatsAppNumber != "" {
		s.WhatsAppNumber = u.WhatsAppNumber
	}
	if u.Address != "" {
		s.Address = u.Address
	}
	s.UpdatedAt = now
	return true
}

// SetLogo records a newly uploaded logo.
func (s *Settings) SetLogo(path string, now time.Time) {
	s.LogoPath = path
	s.UpdatedAt = now
}
