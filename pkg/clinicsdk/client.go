package clinicsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the citamed API. The zero-value is not usable; construct
// it with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates and returns a Session bound to the issued token. The
// username may also be the account's email address.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var resp LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "",
		LoginRequest{Username: username, Password: password},
		&resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &Session{
		client:   c,
		token:    resp.Token,
		Role:     resp.Role,
		Username: resp.Username,
		FullName: resp.FullName,
	}, nil
}

// Register creates a new patient account and returns its id.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var resp RegisterResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, &resp, http.StatusCreated)
	return resp.ID, err
}

// ForgotPassword replaces the password of the named account.
func (c *Client) ForgotPassword(ctx context.Context, username, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", "",
		ForgotPasswordRequest{Username: username, NewPassword: newPassword},
		nil, http.StatusOK)
}

// Livez reports whether the service process is up.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &resp, http.StatusOK)
	return resp, err
}

// Readyz reports whether the service and its dependencies are healthy.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil, &resp, http.StatusOK)
	return resp, err
}

// NewSessionFromToken wraps an existing bearer token in a Session.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Session is an authenticated view of the API.
type Session struct {
	client *Client
	token  string

	// Identity fields returned at login. Empty for sessions built from a
	// bare token; use Me for the full account.
	Role     string
	Username string
	FullName string
}

// Token returns the bearer token, e.g. to persist it across restarts.
func (s *Session) Token() string { return s.token }

// Me returns the session's own account.
func (s *Session) Me(ctx context.Context) (User, error) {
	var resp User
	err := s.client.doJSON(ctx, http.MethodGet, "/users/me", s.token, nil, &resp, http.StatusOK)
	return resp, err
}

// Doctors lists every bookable doctor.
func (s *Session) Doctors(ctx context.Context) ([]Doctor, error) {
	var resp []Doctor
	err := s.client.doJSON(ctx, http.MethodGet, "/citas/medicos", s.token, nil, &resp, http.StatusOK)
	return resp, err
}

// MyAppointments lists the session user's citas, newest first.
func (s *Session) MyAppointments(ctx context.Context) ([]Appointment, error) {
	var resp []Appointment
	err := s.client.doJSON(ctx, http.MethodGet, "/citas/mis-citas", s.token, nil, &resp, http.StatusOK)
	return resp, err
}

// CreateAppointment books a cita and returns its id.
func (s *Session) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (string, error) {
	var resp CreateAppointmentResponse
	err := s.client.doJSON(ctx, http.MethodPost, "/citas/crear", s.token, req, &resp, http.StatusCreated)
	return resp.ID, err
}

// CancelAppointment cancels one of the session user's pendiente citas.
func (s *Session) CancelAppointment(ctx context.Context, citaID string) error {
	return s.client.doJSON(ctx, http.MethodPut, "/citas/cancelar/"+citaID, s.token,
		nil, nil, http.StatusOK)
}

// AllAppointments lists every cita in the system. Requires the admin role.
func (s *Session) AllAppointments(ctx context.Context) ([]Appointment, error) {
	var resp []Appointment
	err := s.client.doJSON(ctx, http.MethodGet, "/admin/citas", s.token, nil, &resp, http.StatusOK)
	return resp, err
}

// SetAppointmentStatus moves a cita into a new estado. Requires the admin role.
func (s *Session) SetAppointmentStatus(ctx context.Context, citaID, estado string) error {
	return s.client.doJSON(ctx, http.MethodPut, "/admin/citas/"+citaID+"/estado", s.token,
		SetStatusRequest{Status: estado}, nil, http.StatusOK)
}

// Users lists every account. Requires the admin role.
func (s *Session) Users(ctx context.Context) ([]User, error) {
	var resp []User
	err := s.client.doJSON(ctx, http.MethodGet, "/admin/usuarios", s.token, nil, &resp, http.StatusOK)
	return resp, err
}

// SetUserRole changes an account's role. Requires the admin role.
func (s *Session) SetUserRole(ctx context.Context, userID, role string) error {
	return s.client.doJSON(ctx, http.MethodPut, "/admin/usuario/"+userID+"/rol", s.token,
		SetRoleRequest{Role: role}, nil, http.StatusOK)
}

// DeleteUser removes an account and its citas. Requires the admin role.
func (s *Session) DeleteUser(ctx context.Context, userID string) error {
	return s.client.doJSON(ctx, http.MethodDelete, "/admin/usuario/"+userID, s.token,
		nil, nil, http.StatusOK)
}

// doJSON sends an optional JSON body and decodes the answer into out when it
// is non-nil. Non-expected statuses come back as *APIError.
func (c *Client) doJSON(
	ctx context.Context,
	method, path, token string,
	body, out any,
	expectedStatus int,
) error {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
