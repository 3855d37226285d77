package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account used for authentication and role checks.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username      string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Password      string    `gorm:"type:text;not null" json:"-"`
	Number        string    `gorm:"type:varchar(20)" json:"number,omitempty"`
	Role          Role      `gorm:"type:varchar(20);not null;default:'reception';index" json:"role"`
	SecondaryRole *Role     `gorm:"type:varchar(20);index" json:"secondary_role,omitempty"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// RoleSet returns the account's role pair.
func (u *User) RoleSet() RoleSet {
	return RoleSet{Primary: u.Role, Secondary: u.SecondaryRole}
}

// HasRole reports whether role is the user's primary or secondary role.
func (u *User) HasRole(role Role) bool {
	return u.RoleSet().Has(role)
}

// SetRoles replaces both roles after validating them as a pair.
func (u *User) SetRoles(primary Role, secondary *Role) error {
	set, err := NewRoleSet(primary, secondary)
	if err != nil {
		return err
	}
	u.Role = set.Primary
	u.SecondaryRole = set.Secondary
	return nil
}

// Active treats a missing flag as active, matching the column default.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}
