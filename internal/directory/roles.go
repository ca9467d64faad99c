package directory

import (
	models "github.com/AulaWare/aula-backend/pkg/db"
)

// Role is the closed set of account roles. Anything else coming out of auth
// metadata collapses to the default.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a raw metadata value onto a role tag, defaulting to student
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleTeacher:
		return RoleTeacher
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// satelliteFor maps each role tag to the constructor of its empty satellite
// record, so picking the right table is a lookup rather than string
// comparisons scattered through the sync path.
var satelliteFor = map[Role]func(userID string) any{
	RoleStudent: func(userID string) any { return &models.Student{UserID: userID} },
	RoleTeacher: func(userID string) any { return &models.Teacher{UserID: userID} },
	RoleAdmin:   func(userID string) any { return &models.Admin{UserID: userID} },
}
