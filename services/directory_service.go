package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tastehub/tastehub-api/logging"
	"github.com/tastehub/tastehub-api/models"
)

// AdminDirectory resolves the admin pool: the set of identities holding the
// admin role. Implementations are stateless and re-resolve on every call so
// role changes take effect immediately.
type AdminDirectory interface {
	AdminEmails() []string
}

// UserDirectory resolves the admin pool from the users table, falling back to
// a fixed identifier when the lookup errors or the pool is empty.
type UserDirectory struct {
	db       *gorm.DB
	fallback string
}

// NewUserDirectory creates a directory over the given database with the
// configured fallback admin identifier
func NewUserDirectory(db *gorm.DB, fallback string) *UserDirectory {
	return &UserDirectory{db: db, fallback: fallback}
}

// AdminEmails returns the resolved admin pool, ordered by account creation so
// the primary admin is stable. Never returns an empty slice.
func (d *UserDirectory) AdminEmails() []string {
	var emails []string
	err := d.db.Model(&models.User{}).
		Where("role = ?", "admin").
		Order("id ASC").
		Pluck("email", &emails).Error
	if err != nil {
		logging.L().Error("admin directory lookup failed, using fallback",
			zap.String("fallback", d.fallback), zap.Error(err))
		return []string{d.fallback}
	}
	if len(emails) == 0 {
		return []string{d.fallback}
	}
	return emails
}
