package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the user profile record an organizer email resolves to.
// Ingestion creates one when the organizer is unknown.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	FullName  string    `gorm:"type:varchar(255)" json:"full_name"`
	Temporary bool      `gorm:"default:false" json:"temporary"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile creates a profile for an organizer email. When no display name
// is available the local part of the email is used.
func NewProfile(email, fullName string) *Profile {
	if fullName == "" {
		if at := strings.Index(email, "@"); at > 0 {
			fullName = email[:at]
		}
	}
	return &Profile{
		ID:       uuid.New(),
		Email:    strings.ToLower(email),
		FullName: fullName,
	}
}

// NewTemporaryProfile creates a placeholder profile with a freshly generated
// id, used by the direct-ingestion path when no account lookup is performed
func NewTemporaryProfile(email string) *Profile {
	p := NewProfile(email, "")
	p.Temporary = true
	return p
}
