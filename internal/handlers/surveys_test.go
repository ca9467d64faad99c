package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	models "github.com/AulaWare/aula-backend/pkg/db"
)

func TestPostSurveyCreate_OrdinalDefaultsToIndex(t *testing.T) {
	st := newTestStore(t)
	h := NewSurveyHandler(testConfig(t), st)

	body := `{
		"room_id": "room-1",
		"title": "Feedback",
		"questions": [
			{"question_text": "How was today's lesson?", "question_type": "rating"},
			{"question_text": "Anything to add?", "question_type": "text"},
			{"question_text": "Pick a topic", "question_type": "single_choice", "options": ["grammar", "reading"], "ordinal": 7}
		]
	}`
	w := httptest.NewRecorder()
	h.PostSurveyCreate(w, authedRequest(http.MethodPost, "/api/surveys/create", body, "teacher-1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Data struct {
			Survey    models.Survey           `json:"survey"`
			Questions []models.SurveyQuestion `json:"questions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if payload.Data.Survey.CreatedBy != "teacher-1" {
		t.Errorf("expected created_by teacher-1, got %q", payload.Data.Survey.CreatedBy)
	}
	if len(payload.Data.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(payload.Data.Questions))
	}
	if payload.Data.Questions[0].Ordinal != 0 || payload.Data.Questions[1].Ordinal != 1 {
		t.Error("expected missing ordinals to default to the array index")
	}
	if payload.Data.Questions[2].Ordinal != 7 {
		t.Errorf("expected explicit ordinal to win, got %d", payload.Data.Questions[2].Ordinal)
	}

	stored, err := st.ListSurveyQuestions(context.Background(), payload.Data.Survey.ID)
	if err != nil {
		t.Fatalf("failed to list questions: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored questions, got %d", len(stored))
	}
	if stored[2].Ordinal != 7 {
		t.Error("expected questions ordered by ordinal")
	}
}

func TestPostSurveySubmit_OneRowPerAnswer(t *testing.T) {
	st := newTestStore(t)
	h := NewSurveyHandler(testConfig(t), st)
	ctx := context.Background()

	survey := models.Survey{RoomID: "room-1", Title: "Feedback", CreatedBy: "teacher-1", IsActive: true}
	if err := st.InsertSurvey(ctx, &survey); err != nil {
		t.Fatalf("failed to seed survey: %v", err)
	}
	q1 := &models.SurveyQuestion{SurveyID: survey.ID, QuestionText: "Rate it", QuestionType: "rating"}
	q2 := &models.SurveyQuestion{SurveyID: survey.ID, QuestionText: "Comment", QuestionType: "text", Ordinal: 1}
	if err := st.InsertSurveyQuestions(ctx, []*models.SurveyQuestion{q1, q2}); err != nil {
		t.Fatalf("failed to seed questions: %v", err)
	}

	body := `{"answers": [
		{"question_id": "` + q1.ID + `", "response": 4},
		{"question_id": "` + q2.ID + `", "response": "great"}
	]}`
	req := authedRequest(http.MethodPost, "/api/surveys/"+survey.ID+"/submit", body, "student-1")
	req.SetPathValue("id", survey.ID)
	w := httptest.NewRecorder()
	h.PostSurveySubmit(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	responses, err := st.ListSurveyResponses(ctx, survey.ID)
	if err != nil {
		t.Fatalf("failed to list responses: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 response rows, got %d", len(responses))
	}
	for _, response := range responses {
		if response.RespondentID != "student-1" {
			t.Errorf("expected respondent student-1, got %q", response.RespondentID)
		}
		if response.Question == nil {
			t.Error("expected the question to be preloaded")
		}
	}

	// Resubmission is not deduplicated
	req = authedRequest(http.MethodPost, "/api/surveys/"+survey.ID+"/submit", body, "student-1")
	req.SetPathValue("id", survey.ID)
	h.PostSurveySubmit(httptest.NewRecorder(), req)
	responses, _ = st.ListSurveyResponses(ctx, survey.ID)
	if len(responses) != 4 {
		t.Errorf("expected resubmission to add rows, got %d total", len(responses))
	}
}

func TestGetSurveysByRoom(t *testing.T) {
	st := newTestStore(t)
	h := NewSurveyHandler(testConfig(t), st)
	ctx := context.Background()

	active := models.Survey{RoomID: "room-1", Title: "Active", CreatedBy: "t1", IsActive: true}
	inactive := models.Survey{RoomID: "room-1", Title: "Closed", CreatedBy: "t1", IsActive: false}
	other := models.Survey{RoomID: "room-2", Title: "Elsewhere", CreatedBy: "t1", IsActive: true}
	for _, s := range []*models.Survey{&active, &inactive, &other} {
		if err := st.InsertSurvey(ctx, s); err != nil {
			t.Fatalf("failed to seed survey: %v", err)
		}
	}

	w := httptest.NewRecorder()
	h.GetSurveysByRoom(w, authedRequest(http.MethodGet, "/api/surveys/by-room?room_id=room-1", "", "u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Data struct {
			Surveys []models.Survey `json:"surveys"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(payload.Data.Surveys) != 1 || payload.Data.Surveys[0].Title != "Active" {
		t.Errorf("expected only the room's active survey, got %v", payload.Data.Surveys)
	}

	// Missing room_id is rejected before touching the store
	w = httptest.NewRecorder()
	h.GetSurveysByRoom(w, authedRequest(http.MethodGet, "/api/surveys/by-room", "", "u1"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without room_id, got %d", w.Code)
	}
}

func TestGetSurveyResults_JoinsQuestions(t *testing.T) {
	st := newTestStore(t)
	h := NewSurveyHandler(testConfig(t), st)
	ctx := context.Background()

	survey := models.Survey{RoomID: "room-1", Title: "Feedback", CreatedBy: "t1", IsActive: true}
	if err := st.InsertSurvey(ctx, &survey); err != nil {
		t.Fatalf("failed to seed survey: %v", err)
	}
	question := &models.SurveyQuestion{SurveyID: survey.ID, QuestionText: "Rate it", QuestionType: "rating"}
	if err := st.InsertSurveyQuestions(ctx, []*models.SurveyQuestion{question}); err != nil {
		t.Fatalf("failed to seed question: %v", err)
	}
	if err := st.InsertSurveyResponses(ctx, []*models.SurveyResponse{{
		SurveyID:     survey.ID,
		QuestionID:   question.ID,
		RespondentID: "student-1",
		Response:     []byte("5"),
	}}); err != nil {
		t.Fatalf("failed to seed response: %v", err)
	}

	req := authedRequest(http.MethodGet, "/api/surveys/"+survey.ID+"/results", "", "t1")
	req.SetPathValue("id", survey.ID)
	w := httptest.NewRecorder()
	h.GetSurveyResults(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Data struct {
			Responses []models.SurveyResponse `json:"responses"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(payload.Data.Responses) != 1 {
		t.Fatalf("expected one response, got %d", len(payload.Data.Responses))
	}
	got := payload.Data.Responses[0]
	if got.Question == nil || got.Question.QuestionText != "Rate it" {
		t.Error("expected the question joined onto the response")
	}
}
