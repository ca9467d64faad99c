package store

import (
	"context"

	"gorm.io/gorm"

	models "github.com/AulaWare/aula-backend/pkg/db"
)

// GetUserByID looks up a profile by its auth service id
func (s *Store) GetUserByID(ctx context.Context, id string) (models.UserProfile, error) {
	return gorm.G[models.UserProfile](s.db).Where("id = ?", id).First(ctx)
}

// InsertUser creates a profile row. A losing concurrent insert returns
// gorm.ErrDuplicatedKey, which callers treat as "already exists".
func (s *Store) InsertUser(ctx context.Context, user *models.UserProfile) error {
	return gorm.G[models.UserProfile](s.db).Create(ctx, user)
}

// UpdateUserFields applies a partial update and returns the updated profile
func (s *Store) UpdateUserFields(ctx context.Context, id string, updates map[string]any) (models.UserProfile, error) {
	result := s.db.WithContext(ctx).Model(&models.UserProfile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.UserProfile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserProfile{}, gorm.ErrRecordNotFound
	}
	return s.GetUserByID(ctx, id)
}

// InsertRoleSatellite creates a role-specific record (Student, Teacher or
// Admin). The concrete type is picked by the directory's role table.
func (s *Store) InsertRoleSatellite(ctx context.Context, satellite any) error {
	return s.db.WithContext(ctx).Create(satellite).Error
}

// GetCatalogEntry reads the teacher catalog by employee number
func (s *Store) GetCatalogEntry(ctx context.Context, employeeNumber string) (models.TeacherCatalogEntry, error) {
	return gorm.G[models.TeacherCatalogEntry](s.db).Where("employee_number = ?", employeeNumber).First(ctx)
}

// GetTeacherByEmployeeNumber looks up an existing teacher satellite by
// employee number
func (s *Store) GetTeacherByEmployeeNumber(ctx context.Context, employeeNumber string) (models.Teacher, error) {
	return gorm.G[models.Teacher](s.db).Where("employee_number = ?", employeeNumber).First(ctx)
}

// GetTeacherByUserID looks up the teacher satellite owned by a user
func (s *Store) GetTeacherByUserID(ctx context.Context, userID string) (models.Teacher, error) {
	return gorm.G[models.Teacher](s.db).Where("user_id = ?", userID).First(ctx)
}
