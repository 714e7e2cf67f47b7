// Package domain holds the entities of the clinic: users and citas
// (appointments), plus the role and estado enumerations and their rules.
package domain

import "time"

// Roles a user can hold. Registration always produces RoleUser; only an
// admin can promote afterwards.
const (
	RoleUser      = "user"      // patient
	RoleDoctor    = "doctor"    // can be assigned citas as médico
	RoleRecepcion = "recepcion" // front desk
	RoleAdmin     = "admin"     // full override
)

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleDoctor, RoleRecepcion, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // argon2id PHC string, never plaintext
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the user shape exposed over the API: everything except the
// password hash.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// Doctor is the minimal listing entry patients pick a médico from.
type Doctor struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}
