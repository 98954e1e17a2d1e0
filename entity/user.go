package entity

import (
	"gorm.io/gorm"

	"pos-backend/pkg/authz"
)

type User struct {
	gorm.Model
	Username     string           `gorm:"uniqueIndex;not null" json:"username"`
	Email        string           `gorm:"index" json:"email"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Password     string           `json:"-"`
	IsSuperuser  bool             `json:"is_superuser"`
	IsActive     bool             `json:"is_active"`
	Capabilities authz.Capability `json:"-"`

	Orders   []Order   `gorm:"foreignKey:CreatedByID" json:"-"`
	Expenses []Expense `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) IsAdmin() bool   { return u.IsSuperuser || u.Capabilities.Has(authz.CapAdmin) }
func (u *User) IsCashier() bool { return u.Capabilities.Has(authz.CapCashier) }

func (u *User) Grant() authz.Grant {
	return authz.Grant{UserID: u.ID, Caps: u.Capabilities, Superuser: u.IsSuperuser}
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
