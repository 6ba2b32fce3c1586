package model

import "gorm.io/gorm"

// User roles. Mutating skills requires RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User struct
type User struct {
	gorm.Model
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Year       string `json:"year"`
	AvatarUrl  string `json:"avatarUrl"`
	Role       string `gorm:"not null;default:user" json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the projection returned by user listings and embedded in
// shared resources, stripped down to what other members may see.
type PublicUser struct {
	Id         uint   `json:"id"`
	Name       string `json:"name"`
	AvatarUrl  string `json:"avatarUrl"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		Id:         u.ID,
		Name:       u.Name,
		AvatarUrl:  u.AvatarUrl,
		Department: u.Department,
		Year:       u.Year,
	}
}
