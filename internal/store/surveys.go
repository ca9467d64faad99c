package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	models "github.com/AulaWare/aula-backend/pkg/db"
)

// InsertSurvey creates a survey
func (s *Store) InsertSurvey(ctx context.Context, survey *models.Survey) error {
	return gorm.G[models.Survey](s.db).Create(ctx, survey)
}

// InsertSurveyQuestions bulk-inserts a survey's questions
func (s *Store) InsertSurveyQuestions(ctx context.Context, questions []*models.SurveyQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(questions).Error
}

// ListActiveSurveysByRoom returns a room's active surveys, newest first
func (s *Store) ListActiveSurveysByRoom(ctx context.Context, roomID string) ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Order("created_at DESC").
		Find(&surveys).Error
	return surveys, err
}

// ListSurveys returns surveys with their room preloaded, newest first,
// optionally filtered by room and active flag
func (s *Store) ListSurveys(ctx context.Context, roomID string, activeOnly bool) ([]models.Survey, error) {
	query := s.db.WithContext(ctx).Model(&models.Survey{})
	if roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var surveys []models.Survey
	err := query.Preload("Room").Order("created_at DESC").Find(&surveys).Error
	return surveys, err
}

// ListSurveyQuestions returns a survey's questions ordered by ordinal.
// Ordinal collisions fall back to insertion order.
func (s *Store) ListSurveyQuestions(ctx context.Context, surveyID string) ([]models.SurveyQuestion, error) {
	var questions []models.SurveyQuestion
	err := s.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("ordinal ASC, created_at ASC").
		Find(&questions).Error
	return questions, err
}

// InsertSurveyResponses bulk-inserts respondent answers. Nothing here
// deduplicates; resubmission produces additional rows.
func (s *Store) InsertSurveyResponses(ctx context.Context, responses []*models.SurveyResponse) error {
	if len(responses) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(responses).Error
}

// ListSurveyResponses returns every response of a survey with its question
// preloaded
func (s *Store) ListSurveyResponses(ctx context.Context, surveyID string) ([]models.SurveyResponse, error) {
	var responses []models.SurveyResponse
	err := s.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Preload("Question").
		Find(&responses).Error
	return responses, err
}

// CloseExpiredSurveys deactivates surveys whose end time has passed
func (s *Store) CloseExpiredSurveys(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Survey{}).
		Where("is_active = ? AND ends_at IS NOT NULL AND ends_at < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
