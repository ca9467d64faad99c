package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MonkyMars/gecho"
	"gorm.io/datatypes"

	"github.com/AulaWare/aula-backend/config"
	"github.com/AulaWare/aula-backend/internal/store"
	models "github.com/AulaWare/aula-backend/pkg/db"
	"github.com/AulaWare/aula-backend/pkg/logger"
)

// SurveyHandler handles requests about surveys, their questions and
// responses
type SurveyHandler struct {
	config *config.Config
	store  *store.Store
}

// NewSurveyHandler creates a new SurveyHandler
func NewSurveyHandler(cfg *config.Config, st *store.Store) *SurveyHandler {
	return &SurveyHandler{
		config: cfg,
		store:  st,
	}
}

type SurveyQuestionInput struct {
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"` // 'rating' | 'text' | 'single_choice' | 'multiple_choice'
	Options      []any  `json:"options"`
	Ordinal      *int   `json:"ordinal"`
}

type PostSurveyCreateBody struct {
	RoomID      string                `json:"room_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Metadata    map[string]any        `json:"metadata"`
	Questions   []SurveyQuestionInput `json:"questions"`
}

// PostSurveyCreate
//
// @Summary		Create a survey
// @Description	Create a survey in a room together with its ordered questions
// @Tags			surveys requiresAuth
// @Accept			json
// @Produce		json
// @Param			survey	body		PostSurveyCreateBody	true	"Survey fields and questions; question ordinal defaults to its index"
// @Success		201	{object}	apiResponses.BaseResponse
// @Failure		400	{object}	apiResponses.BadRequestError
// @Failure		401	{object}	apiResponses.UnauthorizedError
// @Router			/api/surveys/create [post]
func (h *SurveyHandler) PostSurveyCreate(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodPost); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()
	ident, ok := authIdentity(w, r)
	if !ok {
		return
	}

	var body PostSurveyCreateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Error while decoding json: %s", err.Error())).Send()
		return
	}

	metadata := body.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	survey := models.Survey{
		RoomID:      body.RoomID,
		Title:       body.Title,
		Description: body.Description,
		CreatedBy:   ident.ID,
		IsActive:    true,
		Metadata:    datatypes.JSONMap(metadata),
	}
	if err := h.store.InsertSurvey(ctx, &survey); err != nil {
		gecho.BadRequest(w).WithMessage(err.Error()).Send()
		logger.Err(err)
		return
	}

	questions := make([]*models.SurveyQuestion, 0, len(body.Questions))
	for idx, input := range body.Questions {
		ordinal := idx
		if input.Ordinal != nil {
			ordinal = *input.Ordinal
		}
		options := input.Options
		if options == nil {
			options = []any{}
		}
		optionsJSON, err := json.Marshal(options)
		if err != nil {
			gecho.BadRequest(w).WithMessage(fmt.Sprintf("Invalid options on question %d: %s", idx, err.Error())).Send()
			return
		}
		questions = append(questions, &models.SurveyQuestion{
			SurveyID:     survey.ID,
			QuestionText: input.QuestionText,
			QuestionType: input.QuestionType,
			Options:      datatypes.JSON(optionsJSON),
			Ordinal:      ordinal,
		})
	}

	// No rollback: if the question insert fails the survey row stays and
	// the failure is surfaced to the caller.
	if err := h.store.InsertSurveyQuestions(ctx, questions); err != nil {
		gecho.BadRequest(w).WithMessage(err.Error()).Send()
		logger.Err(err)
		return
	}

	gecho.Created(w).WithData(map[string]any{
		"survey":    survey,
		"questions": questions,
	}).Send()
}

// GetSurveysByRoom handles GET /api/surveys/by-room?room_id= requests.
// Only active surveys are returned, newest first.
func (h *SurveyHandler) GetSurveysByRoom(w http.ResponseWriter, r *http.Request) {
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

	surveys, err := h.store.ListActiveSurveysByRoom(ctx, roomID)
	if err != nil {
		gecho.BadRequest(w).WithMessage("Could not list surveys").Send()
		logger.Err(err)
		return
	}

	gecho.Success(w).WithData(map[string]any{"surveys": surveys}).Send()
}

// GetSurveys handles GET /api/surveys?room_id=&active_only= requests.
// Each survey is annotated with its parent room.
func (h *SurveyHandler) GetSurveys(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	query := r.URL.Query()
	roomID := query.Get("room_id")
	activeOnly := query.Get("active_only") == "true"

	surveys, err := h.store.ListSurveys(ctx, roomID, activeOnly)
	if err != nil {
		gecho.BadRequest(w).WithMessage("Could not list surveys").Send()
		logger.Err(err)
		return
	}

	gecho.Success(w).WithData(map[string]any{"surveys": surveys}).Send()
}

// GetSurveyQuestions handles GET /api/surveys/{id}/questions requests,
// ordered by ordinal ascending
func (h *SurveyHandler) GetSurveyQuestions(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	surveyID := r.PathValue("id")
	questions, err := h.store.ListSurveyQuestions(ctx, surveyID)
	if err != nil {
		gecho.BadRequest(w).WithMessage("Could not list questions").Send()
		logger.Err(err)
		return
	}

	gecho.Success(w).WithData(map[string]any{"questions": questions}).Send()
}

type SurveyAnswerInput struct {
	QuestionID string          `json:"question_id"`
	Response   json.RawMessage `json:"response"` // string, number or array
}

type PostSurveySubmitBody struct {
	Answers []SurveyAnswerInput `json:"answers"`
}

// PostSurveySubmit handles POST /api/surveys/{id}/submit requests. One
// response row per answer; resubmission is not deduplicated.
func (h *SurveyHandler) PostSurveySubmit(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodPost); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()
	ident, ok := authIdentity(w, r)
	if !ok {
		return
	}

	surveyID := r.PathValue("id")

	var body PostSurveySubmitBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Error while decoding json: %s", err.Error())).Send()
		return
	}

	responses := make([]*models.SurveyResponse, 0, len(body.Answers))
	for _, answer := range body.Answers {
		responses = append(responses, &models.SurveyResponse{
			SurveyID:     surveyID,
			QuestionID:   answer.QuestionID,
			RespondentID: ident.ID,
			Response:     datatypes.JSON(answer.Response),
		})
	}

	if err := h.store.InsertSurveyResponses(ctx, responses); err != nil {
		gecho.BadRequest(w).WithMessage(err.Error()).Send()
		logger.Err(err)
		return
	}

	gecho.Created(w).WithData(map[string]any{"responses": responses}).Send()
}

// GetSurveyResults handles GET /api/surveys/{id}/results requests. Every
// response is joined with its question's text, type and options.
func (h *SurveyHandler) GetSurveyResults(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	surveyID := r.PathValue("id")
	responses, err := h.store.ListSurveyResponses(ctx, surveyID)
	if err != nil {
		gecho.BadRequest(w).WithMessage("Could not list responses").Send()
		logger.Err(err)
		return
	}

	gecho.Success(w).WithData(map[string]any{"responses": responses}).Send()
}
