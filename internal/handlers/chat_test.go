package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	models "github.com/AulaWare/aula-backend/pkg/db"
)

func TestPostRoomCreate_CreatorBecomesAdmin(t *testing.T) {
	st := newTestStore(t)
	h := NewChatHandler(testConfig(t), st, nil)

	req := authedRequest(http.MethodPost, "/api/chat/rooms/create",
		`{"name": "Lengua 3B", "type": "class", "metadata": {"subject": "lengua"}}`, "teacher-1")
	w := httptest.NewRecorder()
	h.PostRoomCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Data struct {
			Room models.Room `json:"room"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	room := payload.Data.Room
	if room.ID == "" {
		t.Fatal("expected room to get an id")
	}
	if room.CreatedBy != "teacher-1" {
		t.Errorf("expected created_by teacher-1, got %q", room.CreatedBy)
	}

	member, err := st.GetRoomMember(context.Background(), room.ID, "teacher-1")
	if err != nil {
		t.Fatalf("expected creator membership: %v", err)
	}
	if member.RoleInRoom != "admin" {
		t.Errorf("expected creator role admin, got %q", member.RoleInRoom)
	}
}

func TestPostRoomAddUser_Idempotent(t *testing.T) {
	st := newTestStore(t)
	h := NewChatHandler(testConfig(t), st, nil)
	ctx := context.Background()

	room := models.Room{Name: "Room", CreatedBy: "teacher-1"}
	if err := st.InsertRoom(ctx, &room); err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}

	body := `{"room_id": "` + room.ID + `", "user_id": "student-1"}`

	w := httptest.NewRecorder()
	h.PostRoomAddUser(w, authedRequest(http.MethodPost, "/api/chat/rooms/add-user", body, "teacher-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("first add failed with %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	h.PostRoomAddUser(w, authedRequest(http.MethodPost, "/api/chat/rooms/add-user", body, "teacher-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("repeat add failed with %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if payload.Data.Message != "User is already in the room" {
		t.Errorf("expected already-in-room message, got %q", payload.Data.Message)
	}

	members, err := st.ListRoomMembers(ctx, room.ID)
	if err != nil {
		t.Fatalf("failed to list members: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("expected exactly one membership row, got %d", len(members))
	}
}

func TestPostRoomAddUser_MissingFields(t *testing.T) {
	h := NewChatHandler(testConfig(t), newTestStore(t), nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"no room", `{"user_id": "u1"}`, "Missing field 'room_id'"},
		{"no user", `{"room_id": "r1"}`, "Missing field 'user_id'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.PostRoomAddUser(w, authedRequest(http.MethodPost, "/api/chat/rooms/add-user", tt.body, "u0"))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestPostMessageSend_UpdatesRoomPointer(t *testing.T) {
	st := newTestStore(t)
	h := NewChatHandler(testConfig(t), st, nil)
	ctx := context.Background()

	room := models.Room{Name: "Room", CreatedBy: "teacher-1"}
	if err := st.InsertRoom(ctx, &room); err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}

	body := `{"room_id": "` + room.ID + `", "sender_id": "student-1", "content": "hola"}`
	w := httptest.NewRecorder()
	h.PostMessageSend(w, authedRequest(http.MethodPost, "/api/chat/messages/send", body, "student-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("send failed with %d: %s", w.Code, w.Body.String())
	}

	messages, err := st.ListRoomMessages(ctx, room.ID)
	if err != nil {
		t.Fatalf("failed to list messages: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "hola" {
		t.Fatalf("expected the stored message, got %v", messages)
	}

	var updated models.Room
	if err := st.DB().First(&updated, "id = ?", room.ID).Error; err != nil {
		t.Fatalf("failed to reload room: %v", err)
	}
	if updated.LastMessage == nil || *updated.LastMessage != "hola" {
		t.Error("expected the room's last-message pointer to move")
	}
}

func TestGetRoomMessages_RequiresRoomID(t *testing.T) {
	h := NewChatHandler(testConfig(t), newTestStore(t), nil)

	w := httptest.NewRecorder()
	h.GetRoomMessages(w, authedRequest(http.MethodGet, "/api/chat/rooms/messages", "", "u1"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if payload.Message != "Missing 'room_id' query parameter" {
		t.Errorf("unexpected error message %q", payload.Message)
	}
}

func TestGetMyRooms_DeduplicatesByRoom(t *testing.T) {
	st := newTestStore(t)
	h := NewChatHandler(testConfig(t), st, nil)
	ctx := context.Background()

	room := models.Room{Name: "Room", CreatedBy: "teacher-1"}
	if err := st.InsertRoom(ctx, &room); err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	if err := st.InsertRoomMember(ctx, &models.RoomMember{RoomID: room.ID, UserID: "student-1", RoleInRoom: "member"}); err != nil {
		t.Fatalf("failed to seed membership: %v", err)
	}

	w := httptest.NewRecorder()
	h.GetMyRooms(w, authedRequest(http.MethodGet, "/api/chat/rooms/my", "", "student-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Data struct {
			Rooms []RoomWithRole `json:"rooms"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(payload.Data.Rooms) != 1 {
		t.Fatalf("expected one room, got %d", len(payload.Data.Rooms))
	}
	if payload.Data.Rooms[0].RoleInRoom != "member" {
		t.Errorf("expected role member, got %q", payload.Data.Rooms[0].RoleInRoom)
	}
}
