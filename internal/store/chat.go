package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	models "github.com/AulaWare/aula-backend/pkg/db"
)

// InsertRoom creates a room
func (s *Store) InsertRoom(ctx context.Context, room *models.Room) error {
	return gorm.G[models.Room](s.db).Create(ctx, room)
}

// InsertRoomMember adds a user to a room
func (s *Store) InsertRoomMember(ctx context.Context, member *models.RoomMember) error {
	return gorm.G[models.RoomMember](s.db).Create(ctx, member)
}

// GetRoomMember looks up the membership row for a (room, user) pair
func (s *Store) GetRoomMember(ctx context.Context, roomID, userID string) (models.RoomMember, error) {
	return gorm.G[models.RoomMember](s.db).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(ctx)
}

// ListMembershipsForUser returns every membership of a user with the room
// record preloaded
func (s *Store) ListMembershipsForUser(ctx context.Context, userID string) ([]models.RoomMember, error) {
	var memberships []models.RoomMember
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Room").
		Find(&memberships).Error
	return memberships, err
}

// ListRoomMembers returns every membership of a room with the member's
// profile preloaded
func (s *Store) ListRoomMembers(ctx context.Context, roomID string) ([]models.RoomMember, error) {
	var memberships []models.RoomMember
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Preload("User").
		Find(&memberships).Error
	return memberships, err
}

// InsertMessage appends a chat message
func (s *Store) InsertMessage(ctx context.Context, message *models.Message) error {
	return gorm.G[models.Message](s.db).Create(ctx, message)
}

// ListRoomMessages returns a room's messages, oldest first
func (s *Store) ListRoomMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// UpdateRoomLastMessage moves the room's denormalized last-message pointer
func (s *Store) UpdateRoomLastMessage(ctx context.Context, roomID, content string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]any{
			"last_message":    content,
			"last_message_at": at,
		}).Error
}
