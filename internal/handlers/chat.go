package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MonkyMars/gecho"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AulaWare/aula-backend/config"
	contextkeys "github.com/AulaWare/aula-backend/internal/contextKeys"
	"github.com/AulaWare/aula-backend/internal/identity"
	"github.com/AulaWare/aula-backend/internal/store"
	models "github.com/AulaWare/aula-backend/pkg/db"
	"github.com/AulaWare/aula-backend/pkg/logger"
)

// ChatHandler handles requests about rooms, membership and messages
type ChatHandler struct {
	config           *config.Config
	store            *store.Store
	websocketHandler *WebsocketHandler
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(cfg *config.Config, st *store.Store, websocketHandler *WebsocketHandler) *ChatHandler {
	return &ChatHandler{
		config:           cfg,
		store:            st,
		websocketHandler: websocketHandler,
	}
}

// authIdentity pulls the verified identity the gate put on the context
func authIdentity(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	ident, ok := r.Context().Value(contextkeys.AuthIdentityKey).(*identity.Identity)
	if !ok {
		gecho.InternalServerError(w).WithMessage("Missing identity on authenticated request").Send()
		return nil, false
	}
	return ident, true
}

type PostRoomCreateBody struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Metadata map[string]any `json:"metadata"`
}

// PostRoomCreate
//
// @Summary		Create a chat room
// @Description	Create a room and add the creator as its admin member
// @Tags			chat requiresAuth
// @Accept			json
// @Produce		json
// @Param			room	body		PostRoomCreateBody	true	"Room name, type and free-form metadata"
// @Success		201	{object}	apiResponses.BaseResponse
// @Failure		400	{object}	apiResponses.BadRequestError
// @Failure		401	{object}	apiResponses.UnauthorizedError
// @Router			/api/chat/rooms/create [post]
func (h *ChatHandler) PostRoomCreate(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodPost); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()
	ident, ok := authIdentity(w, r)
	if !ok {
		return
	}

	var body PostRoomCreateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Error while decoding json: %s", err.Error())).Send()
		return
	}

	room := models.Room{
		Name:      body.Name,
		Type:      body.Type,
		Metadata:  datatypes.JSONMap(body.Metadata),
		CreatedBy: ident.ID,
	}
	if err := h.store.InsertRoom(ctx, &room); err != nil {
		gecho.BadRequest(w).WithMessage(err.Error()).Send()
		logger.Err(err)
		return
	}

	// Second step, no rollback: if this fails the room exists without
	// members and the creator can be re-added later.
	creatorMember := models.RoomMember{
		RoomID:     room.ID,
		UserID:     ident.ID,
		RoleInRoom: "admin",
	}
	if err := h.store.InsertRoomMember(ctx, &creatorMember); err != nil {
		logger.Err(fmt.Sprintf("Could not add creator %s to room %s: %s", ident.ID, room.ID, err.Error()))
	}

	gecho.Created(w).WithData(map[string]any{"room": room}).Send()
}

type PostRoomAddUserBody struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
}

// PostRoomAddUser handles POST /api/chat/rooms/add-user requests.
// Idempotent: adding a user twice returns the existing membership.
func (h *ChatHandler) PostRoomAddUser(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodPost); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	var body PostRoomAddUserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Error while decoding json: %s", err.Error())).Send()
		return
	}
	if body.RoomID == "" {
		gecho.BadRequest(w).WithMessage("Missing field 'room_id'").Send()
		return
	}
	if body.UserID == "" {
		gecho.BadRequest(w).WithMessage("Missing field 'user_id'").Send()
		return
	}

	existing, err := h.store.GetRoomMember(ctx, body.RoomID, body.UserID)
	if err == nil {
		gecho.Success(w).WithData(map[string]any{
			"message": "User is already in the room",
			"member":  existing,
		}).Send()
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		gecho.InternalServerError(w).Send()
		logger.Err(err)
		return
	}

	member := models.RoomMember{
		RoomID:     body.RoomID,
		UserID:     body.UserID,
		RoleInRoom: "member",
	}
	if err := h.store.InsertRoomMember(ctx, &member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a parallel add; the existing row wins
			existing, err := h.store.GetRoomMember(ctx, body.RoomID, body.UserID)
			if err == nil {
				gecho.Success(w).WithData(map[string]any{
					"message": "User is already in the room",
					"member":  existing,
				}).Send()
				return
			}
		}
		gecho.BadRequest(w).WithMessage(err.Error()).Send()
		logger.Err(err)
		return
	}

	gecho.Success(w).WithData(map[string]any{
		"message": "User added",
		"member":  member,
	}).Send()
}

// RoomWithRole annotates a room with the requesting user's role in it
type RoomWithRole struct {
	models.Room
	RoleInRoom string `json:"role_in_room"`
}

// GetMyRooms handles GET /api/chat/rooms/my requests. Rooms are
// de-duplicated by id; no order is guaranteed.
func (h *ChatHandler) GetMyRooms(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()
	ident, ok := authIdentity(w, r)
	if !ok {
		return
	}

	memberships, err := h.store.ListMembershipsForUser(ctx, ident.ID)
	if err != nil {
		gecho.BadRequest(w).WithMessage("Could not list rooms").Send()
		logger.Err(err)
		return
	}

	roomsByID := map[string]RoomWithRole{}
	for _, membership := range memberships {
		if membership.Room.ID == "" {
			continue
		}
		roomsByID[membership.Room.ID] = RoomWithRole{
			Room:       membership.Room,
			RoleInRoom: membership.RoleInRoom,
		}
	}

	rooms := make([]RoomWithRole, 0, len(roomsByID))
	for _, room := range roomsByID {
		rooms = append(rooms, room)
	}

	gecho.Success(w).WithData(map[string]any{"rooms": rooms}).Send()
}

// GetRoomMessages handles GET /api/chat/rooms/messages?room_id= requests
func (h *ChatHandler) GetRoomMessages(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		gecho.BadRequest(w).WithMessage("Missing 'room_id' query parameter").Send()
		return
	}

	messages, err := h.store.ListRoomMessages(ctx, roomID)
	if err != nil {
		gecho.BadRequest(w).WithMessage("Could not list messages").Send()
		logger.Err(err)
		return
	}

	gecho.Success(w).WithData(map[string]any{"messages": messages}).Send()
}

type PostMessageSendBody struct {
	RoomID   string `json:"room_id"`
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
}

// PostMessageSend handles POST /api/chat/messages/send requests. The
// message insert is the operation; moving the room's last-message pointer
// and the websocket broadcast are best effort and never roll it back.
func (h *ChatHandler) PostMessageSend(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodPost); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	var body PostMessageSendBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Error while decoding json: %s", err.Error())).Send()
		return
	}
	if body.RoomID == "" {
		gecho.BadRequest(w).WithMessage("Missing field 'room_id'").Send()
		return
	}
	if body.SenderID == "" {
		gecho.BadRequest(w).WithMessage("Missing field 'sender_id'").Send()
		return
	}
	if body.Content == "" {
		gecho.BadRequest(w).WithMessage("Missing field 'content'").Send()
		return
	}

	message := models.Message{
		RoomID:   body.RoomID,
		SenderID: body.SenderID,
		Content:  body.Content,
	}
	if err := h.store.InsertMessage(ctx, &message); err != nil {
		gecho.BadRequest(w).WithMessage(err.Error()).Send()
		logger.Err(err)
		return
	}

	if err := h.store.UpdateRoomLastMessage(ctx, message.RoomID, message.Content, message.CreatedAt); err != nil {
		logger.Err(fmt.Sprintf("Could not update last message of room %s: %s", message.RoomID, err.Error()))
	}

	if h.websocketHandler != nil {
		h.websocketHandler.BroadcastMessage(message.RoomID, message)
	}

	gecho.Success(w).WithData(map[string]any{
		"message": "Message sent",
		"data":    message,
	}).Send()
}

// MemberInfo is a room membership joined with the member's profile
type MemberInfo struct {
	UserID     string             `json:"user_id"`
	RoleInRoom string             `json:"role_in_room"`
	User       models.UserProfile `json:"user"`
}

// GetRoomMembers handles GET /api/chat/rooms/members?room_id= requests
func (h *ChatHandler) GetRoomMembers(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		gecho.BadRequest(w).WithMessage("Missing 'room_id' query parameter").Send()
		return
	}

	memberships, err := h.store.ListRoomMembers(ctx, roomID)
	if err != nil {
		gecho.BadRequest(w).WithMessage("Could not list members").Send()
		logger.Err(err)
		return
	}

	members := make([]MemberInfo, 0, len(memberships))
	for _, membership := range memberships {
		members = append(members, MemberInfo{
			UserID:     membership.UserID,
			RoleInRoom: membership.RoleInRoom,
			User:       membership.User,
		})
	}

	gecho.Success(w).WithData(map[string]any{"members": members}).Send()
}
