package api

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	"github.com/AulaWare/aula-backend/config"
	_ "github.com/AulaWare/aula-backend/docs"
	"github.com/AulaWare/aula-backend/internal/directory"
	"github.com/AulaWare/aula-backend/internal/handlers"
	"github.com/AulaWare/aula-backend/internal/identity"
	"github.com/AulaWare/aula-backend/internal/middleware"
	"github.com/AulaWare/aula-backend/internal/store"
)

// API holds the API dependencies
type API struct {
	versionHandler   *handlers.VersionHandler
	userHandler      *handlers.UserHandler
	chatHandler      *handlers.ChatHandler
	surveyHandler    *handlers.SurveyHandler
	websocketHandler *handlers.WebsocketHandler
	auth             *middleware.AuthenticationMiddleware
}

// NewAPI creates a new API instance
func NewAPI(db *gorm.DB) *API {
	cfg := config.Get()
	st := store.New(db)
	dir := directory.NewService(st)

	// The google provider verifies tokens locally and has no admin API,
	// so admin user routes degrade to 503 there.
	var verifier identity.Verifier
	var authAdmin *identity.Client
	switch cfg.Auth.Provider {
	case "google":
		verifier = identity.NewGoogleVerifier(cfg.Auth.GoogleClientId)
	default:
		client := identity.NewClient(cfg)
		verifier = client
		authAdmin = client
	}

	websocketHandler := handlers.NewWebsocketHandler(cfg)
	return &API{
		versionHandler:   handlers.NewVersionHandler(cfg),
		userHandler:      handlers.NewUserHandler(cfg, st, dir, authAdmin),
		chatHandler:      handlers.NewChatHandler(cfg, st, websocketHandler),
		surveyHandler:    handlers.NewSurveyHandler(cfg, st),
		websocketHandler: websocketHandler,
		auth: &middleware.AuthenticationMiddleware{
			Verifier:  verifier,
			Directory: dir,
		},
	}
}

// CreateMux creates and configures the HTTP mux
func (api *API) CreateMux() *http.ServeMux {
	mux := http.NewServeMux()
	api.setupRoutes(mux)
	return mux
}

// setupRoutes configures all the routes.
func (api *API) setupRoutes(mux *http.ServeMux) {
	authed := api.auth.Required

	// Version route
	mux.HandleFunc("/v", api.versionHandler.GetVersion)
	// Swagger UI
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Users
	mux.HandleFunc("GET /api/users/me", authed(api.userHandler.GetMe))
	mux.HandleFunc("GET /api/users", authed(api.userHandler.GetUsers))
	mux.HandleFunc("POST /api/users", authed(api.userHandler.PostUser))
	mux.HandleFunc("PUT /api/users/{id}", authed(api.userHandler.PutUser))

	// Chat
	mux.HandleFunc("/api/chat/rooms/create", authed(api.chatHandler.PostRoomCreate))
	mux.HandleFunc("/api/chat/rooms/add-user", authed(api.chatHandler.PostRoomAddUser))
	mux.HandleFunc("/api/chat/rooms/my", authed(api.chatHandler.GetMyRooms))
	mux.HandleFunc("/api/chat/rooms/messages", authed(api.chatHandler.GetRoomMessages))
	mux.HandleFunc("/api/chat/rooms/members", authed(api.chatHandler.GetRoomMembers))
	mux.HandleFunc("/api/chat/messages/send", authed(api.chatHandler.PostMessageSend))
	// Websocket connection
	mux.HandleFunc("/api/chat/ws", api.websocketHandler.StreamRoom)

	// Surveys
	mux.HandleFunc("/api/surveys/create", authed(api.surveyHandler.PostSurveyCreate))
	mux.HandleFunc("/api/surveys/by-room", authed(api.surveyHandler.GetSurveysByRoom))
	mux.HandleFunc("GET /api/surveys", authed(api.surveyHandler.GetSurveys))
	mux.HandleFunc("GET /api/surveys/{id}/questions", authed(api.surveyHandler.GetSurveyQuestions))
	mux.HandleFunc("POST /api/surveys/{id}/submit", authed(api.surveyHandler.PostSurveySubmit))
	mux.HandleFunc("GET /api/surveys/{id}/results", authed(api.surveyHandler.GetSurveyResults))

	// fallback route - must be last because it matches all routes.
	mux.HandleFunc("/", fallBack)
}

// ApplyMiddleware applies middleware to a handler
func ApplyMiddleware(handler http.Handler) http.Handler {
	return middleware.LoggingMiddleware(
		middleware.CORSMiddleware(handler),
	)
}

func fallBack(w http.ResponseWriter, r *http.Request) {
	gecho.NotFound(w).Send()
}
