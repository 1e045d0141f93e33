package models

import "time"

// Role determines what a principal may access. Admins bypass the
// ownership checks on every record kind.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents the user model in the database
type User struct {
	Base
	Name            string     `gorm:"not null" json:"name"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Password        string     `gorm:"not null" json:"-"`
	Role            Role       `gorm:"type:varchar(10);not null;default:USER" json:"role"`
	Active          bool       `gorm:"not null;default:true" json:"active"`
	AnniversaryDate *time.Time `json:"anniversary_date,omitempty"`

	Costs       []Cost       `gorm:"foreignKey:UserID" json:"costs,omitempty"`
	Expenses    []Expense    `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Investments []Investment `gorm:"foreignKey:UserID" json:"investments,omitempty"`
}
