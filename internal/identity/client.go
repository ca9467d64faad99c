package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AulaWare/aula-backend/config"
	"github.com/AulaWare/aula-backend/pkg/logger"
)

// Client talks to the external auth service over HTTP. It implements
// Verifier for bearer tokens and exposes the service's admin user API for
// the provisioning endpoints.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates an auth service client from configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.Auth.ServiceURL,
		serviceKey: cfg.Auth.ServiceKey,
		httpClient: &http.Client{Timeout: cfg.Auth.RequestTimeout},
	}
}

// AuthUser is the auth service's wire representation of an account
type AuthUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type serviceError struct {
	Message string `json:"msg"`
	Error   string `json:"error"`
}

func (e serviceError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// VerifyToken asks the auth service who the bearer token belongs to.
// Any rejection becomes ErrUnauthenticated, no retries.
func (c *Client) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	endpoint, err := url.JoinPath(c.baseURL, "/auth/v1/user")
	if err != nil {
		return nil, fmt.Errorf("could not build auth service url: %s", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Err("Auth service unreachable:", err)
		return nil, ErrUnauthenticated
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthenticated
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		logger.Err("Could not decode auth service response:", err)
		return nil, ErrUnauthenticated
	}
	if user.ID == "" {
		return nil, ErrUnauthenticated
	}

	return &Identity{ID: user.ID, Email: user.Email, Metadata: user.UserMetadata}, nil
}

// CreateUserParams is the admin create-user payload
type CreateUserParams struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// AdminCreateUser provisions a new account on the auth service
func (c *Client) AdminCreateUser(ctx context.Context, params CreateUserParams) (*AuthUser, error) {
	endpoint, err := url.JoinPath(c.baseURL, "/auth/v1/admin/users")
	if err != nil {
		return nil, fmt.Errorf("could not build auth service url: %s", err.Error())
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setAdminHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var svcErr serviceError
		json.NewDecoder(resp.Body).Decode(&svcErr)
		return nil, fmt.Errorf("auth service rejected user creation (%d): %s", resp.StatusCode, svcErr.text())
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("could not decode auth service response: %s", err.Error())
	}
	return &user, nil
}

// AdminListUsers returns every account known to the auth service
func (c *Client) AdminListUsers(ctx context.Context) ([]AuthUser, error) {
	endpoint, err := url.JoinPath(c.baseURL, "/auth/v1/admin/users")
	if err != nil {
		return nil, fmt.Errorf("could not build auth service url: %s", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setAdminHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var svcErr serviceError
		json.NewDecoder(resp.Body).Decode(&svcErr)
		return nil, fmt.Errorf("auth service rejected user listing (%d): %s", resp.StatusCode, svcErr.text())
	}

	var body struct {
		Users []AuthUser `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("could not decode auth service response: %s", err.Error())
	}
	return body.Users, nil
}

func (c *Client) setAdminHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
}
