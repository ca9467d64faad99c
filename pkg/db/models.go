package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserProfile mirrors an identity issued by the external auth service.
// Rows are created lazily on the first authenticated request (or explicitly
// through user provisioning); the id is the auth service's opaque user id.
type UserProfile struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	Email     string            `gorm:"uniqueIndex" json:"email"`
	FullName  *string           `json:"full_name"`
	Role      string            `gorm:"default:'student'" json:"role"`
	Meta      datatypes.JSONMap `json:"meta"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (UserProfile) TableName() string { return "users" }

// Student is the role satellite for role "student".
type Student struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"uniqueIndex" json:"user_id"`
	EnrollmentNumber *string   `json:"enrollment_number"`
	Course           *string   `json:"course"`
	Year             *int      `json:"year"`
	CreatedAt        time.Time `json:"created_at"`
}

// Teacher is the role satellite for role "teacher". EmployeeNumber is
// unique across all teachers and must match an active catalog entry.
type Teacher struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"uniqueIndex" json:"user_id"`
	EmployeeNumber *string   `gorm:"uniqueIndex" json:"employee_number"`
	Department     *string   `json:"department"`
	Bio            *string   `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
}

// Admin is the role satellite for role "admin".
type Admin struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"uniqueIndex" json:"user_id"`
	AdminLevel *int      `json:"admin_level"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// TeacherCatalogEntry is the read-only reference list of valid employee
// numbers. Maintained out of band (see cmd/seed for local development).
type TeacherCatalogEntry struct {
	EmployeeNumber string `gorm:"primaryKey" json:"employee_number"`
	FullName       string `json:"full_name"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
}

func (TeacherCatalogEntry) TableName() string { return "teacher_catalog" }

// Room is a chat group. LastMessage/LastMessageAt are a denormalized
// pointer updated (best effort) on every new message.
type Room struct {
	ID            string            `gorm:"primaryKey" json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Metadata      datatypes.JSONMap `json:"metadata"`
	CreatedBy     string            `json:"created_by"`
	LastMessage   *string           `json:"last_message"`
	LastMessageAt *time.Time        `json:"last_message_at"`
	CreatedAt     time.Time         `json:"created_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (r *Room) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RoomMember associates a user with a room. Unique per (room_id, user_id).
type RoomMember struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	RoomID     string      `gorm:"uniqueIndex:idx_room_member" json:"room_id"`
	UserID     string      `gorm:"uniqueIndex:idx_room_member" json:"user_id"`
	RoleInRoom string      `gorm:"default:'member'" json:"role_in_room"`
	CreatedAt  time.Time   `json:"created_at"`
	Room       Room        `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User       UserProfile `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// Message is an append-only chat message.
type Message struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	RoomID    string    `gorm:"index" json:"room_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Survey is a poll attached to a room.
type Survey struct {
	ID          string            `gorm:"primaryKey" json:"id"`
	RoomID      string            `gorm:"index" json:"room_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CreatedBy   string            `json:"created_by"`
	IsActive    bool              `gorm:"default:true" json:"is_active"`
	Metadata    datatypes.JSONMap `json:"metadata"`
	StartsAt    *time.Time        `json:"starts_at"`
	EndsAt      *time.Time        `json:"ends_at"`
	CreatedAt   time.Time         `json:"created_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
	Room        *Room             `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (s *Survey) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SurveyQuestion is one ordered item of a survey. Options is only
// meaningful for the choice types.
type SurveyQuestion struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	SurveyID     string         `gorm:"index" json:"survey_id"`
	QuestionText string         `json:"question_text"`
	QuestionType string         `json:"question_type"` // 'rating' | 'text' | 'single_choice' | 'multiple_choice'
	Options      datatypes.JSON `json:"options"`
	Ordinal      int            `json:"ordinal"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (q *SurveyQuestion) BeforeCreate(*gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// SurveyResponse is one respondent's answer to one question. Repeat
// submissions are kept as separate rows, nothing deduplicates them.
type SurveyResponse struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	SurveyID     string          `gorm:"index" json:"survey_id"`
	QuestionID   string          `json:"question_id"`
	RespondentID string          `json:"respondent_id"`
	Response     datatypes.JSON  `json:"response"`
	RespondedAt  time.Time       `json:"responded_at"`
	Question     *SurveyQuestion `gorm:"foreignKey:QuestionID;references:ID" json:"question,omitempty"`
}

func (sr *SurveyResponse) BeforeCreate(*gorm.DB) error {
	if sr.ID == "" {
		sr.ID = uuid.NewString()
	}
	if sr.RespondedAt.IsZero() {
		sr.RespondedAt = time.Now()
	}
	return nil
}
