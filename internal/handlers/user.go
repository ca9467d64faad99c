package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AulaWare/aula-backend/config"
	"github.com/AulaWare/aula-backend/internal/directory"
	"github.com/AulaWare/aula-backend/internal/identity"
	"github.com/AulaWare/aula-backend/internal/store"
	models "github.com/AulaWare/aula-backend/pkg/db"
	"github.com/AulaWare/aula-backend/pkg/logger"
)

var validate = validator.New()

// UserHandler handles user provisioning and profile requests. Admin
// operations go through the auth service's admin API; authAdmin is nil
// when the configured provider has no admin surface.
type UserHandler struct {
	config    *config.Config
	store     *store.Store
	directory *directory.Service
	authAdmin *identity.Client
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(cfg *config.Config, st *store.Store, dir *directory.Service, authAdmin *identity.Client) *UserHandler {
	return &UserHandler{
		config:    cfg,
		store:     st,
		directory: dir,
		authAdmin: authAdmin,
	}
}

// GetMe
//
// @Summary		Get own profile
// @Description	Return the caller's synced profile row
// @Tags			users requiresAuth
// @Produce		json
// @Success		200	{object}	apiResponses.BaseResponse
// @Failure		401	{object}	apiResponses.UnauthorizedError
// @Router			/api/users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()
	ident, ok := authIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			gecho.NotFound(w).WithMessage("User not found").Send()
			return
		}
		gecho.InternalServerError(w).WithMessage("Could not load user").Send()
		logger.Err(err)
		return
	}

	gecho.Success(w).WithData(map[string]any{"user": user}).Send()
}

// GetUsers handles GET /api/users?role=&name= requests. The listing comes
// from the auth service's admin API and is filtered in process.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	if h.authAdmin == nil {
		gecho.ServiceUnavailable(w).WithMessage("User administration is not available with this auth provider").Send()
		return
	}

	users, err := h.authAdmin.AdminListUsers(ctx)
	if err != nil {
		gecho.InternalServerError(w).WithMessage("Could not list users").Send()
		logger.Err(err)
		return
	}

	query := r.URL.Query()
	roleFilter := strings.ToLower(query.Get("role"))
	nameFilter := strings.ToLower(query.Get("name"))

	filtered := make([]identity.AuthUser, 0, len(users))
	for _, user := range users {
		if roleFilter != "" {
			role, _ := user.UserMetadata["role"].(string)
			if strings.ToLower(role) != roleFilter {
				continue
			}
		}
		if nameFilter != "" {
			name, _ := user.UserMetadata["name"].(string)
			if name == "" {
				name, _ = user.UserMetadata["full_name"].(string)
			}
			if !strings.Contains(strings.ToLower(name), nameFilter) {
				continue
			}
		}
		filtered = append(filtered, user)
	}

	gecho.Success(w).WithData(map[string]any{"users": filtered}).Send()
}

type PostUserBody struct {
	Email          string         `json:"email" validate:"required,email"`
	Password       string         `json:"password" validate:"required,min=8"`
	FullName       string         `json:"full_name" validate:"required"`
	Role           string         `json:"role" validate:"omitempty,oneof=student teacher admin"`
	EmployeeNumber string         `json:"employee_number" validate:"omitempty"`
	Metadata       map[string]any `json:"metadata"`
}

// PostUser
//
// @Summary		Provision a user
// @Description	Create an auth account, its local profile and its role satellite
// @Tags			users requiresAuth
// @Accept			json
// @Produce		json
// @Param			user	body		PostUserBody	true	"New user fields; teacher role requires a catalog-backed employee_number"
// @Success		201	{object}	apiResponses.BaseResponse
// @Failure		400	{object}	apiResponses.BadRequestError
// @Failure		503	{object}	apiResponses.BaseResponse
// @Router			/api/users [post]
func (h *UserHandler) PostUser(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodPost); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	if h.authAdmin == nil {
		gecho.ServiceUnavailable(w).WithMessage("User administration is not available with this auth provider").Send()
		return
	}

	var body PostUserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Error while decoding json: %s", err.Error())).Send()
		return
	}
	if err := validate.Struct(body); err != nil {
		gecho.BadRequest(w).WithMessage(err.Error()).Send()
		return
	}

	role := directory.ParseRole(body.Role)

	// Teachers are gated on the staff catalog before anything is created.
	if role == directory.RoleTeacher {
		if err := h.directory.ValidateTeacherEmployeeNumber(ctx, body.EmployeeNumber, ""); err != nil {
			var verr *directory.ValidationError
			if errors.As(err, &verr) {
				gecho.BadRequest(w).WithMessage(verr.Message).Send()
				return
			}
			gecho.InternalServerError(w).WithMessage("Could not validate employee number").Send()
			logger.Err(err)
			return
		}
	}

	metadata := body.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["full_name"] = body.FullName
	metadata["role"] = string(role)
	if body.EmployeeNumber != "" {
		metadata["employee_number"] = body.EmployeeNumber
	}

	authUser, err := h.authAdmin.AdminCreateUser(ctx, identity.CreateUserParams{
		Email:        body.Email,
		Password:     body.Password,
		EmailConfirm: true,
		UserMetadata: metadata,
	})
	if err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Could not create auth user: %s", err.Error())).Send()
		logger.Err(err)
		return
	}

	fullName := body.FullName
	user := models.UserProfile{
		ID:       authUser.ID,
		Email:    body.Email,
		FullName: &fullName,
		Role:     string(role),
		Meta:     datatypes.JSONMap(metadata),
	}
	if err := h.store.InsertUser(ctx, &user); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		gecho.InternalServerError(w).WithMessage("User created in auth service but profile insert failed").Send()
		logger.Err(err)
		return
	}

	// Unlike the lazy sync, provisioning exists to bind the satellite (for a
	// teacher, the employee number); a failed insert here is the operation
	// failing, not an advisory hiccup. This also catches an employee number
	// claimed between validation and insert.
	if err := h.insertSatellite(ctx, role, authUser.ID, body.EmployeeNumber); err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Could not create %s record: %s", role, err.Error())).Send()
		logger.Err(err)
		return
	}

	gecho.Created(w).WithData(map[string]any{"user": user}).Send()
}

func (h *UserHandler) insertSatellite(ctx context.Context, role directory.Role, userID, employeeNumber string) error {
	switch role {
	case directory.RoleTeacher:
		number := employeeNumber
		return h.store.InsertRoleSatellite(ctx, &models.Teacher{UserID: userID, EmployeeNumber: &number})
	case directory.RoleAdmin:
		return h.store.InsertRoleSatellite(ctx, &models.Admin{UserID: userID})
	default:
		return h.store.InsertRoleSatellite(ctx, &models.Student{UserID: userID})
	}
}

type PutUserBody struct {
	Email    *string        `json:"email" validate:"omitempty,email"`
	FullName *string        `json:"full_name"`
	Role     *string        `json:"role" validate:"omitempty,oneof=student teacher admin"`
	Metadata map[string]any `json:"metadata"`
}

// PutUser handles PUT /api/users/{id} requests with partial profile
// updates. Absent fields are left untouched.
func (h *UserHandler) PutUser(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodPut); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}
	ctx := r.Context()

	userID := r.PathValue("id")

	var body PutUserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Error while decoding json: %s", err.Error())).Send()
		return
	}
	if err := validate.Struct(body); err != nil {
		gecho.BadRequest(w).WithMessage(err.Error()).Send()
		return
	}

	updates := map[string]any{"updated_at": time.Now()}
	if body.Email != nil {
		updates["email"] = *body.Email
	}
	if body.FullName != nil {
		updates["full_name"] = *body.FullName
	}
	if body.Role != nil {
		updates["role"] = *body.Role
	}
	if body.Metadata != nil {
		updates["meta"] = datatypes.JSONMap(body.Metadata)
	}

	user, err := h.store.UpdateUserFields(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			gecho.NotFound(w).WithMessage("User not found").Send()
			return
		}
		gecho.InternalServerError(w).WithMessage("Could not update user").Send()
		logger.Err(err)
		return
	}

	gecho.Success(w).WithData(map[string]any{"user": user}).Send()
}
