package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"petdex/pkg/domain"
)

// defaultTimeout bounds every request so a hung call cannot leave a control
// disabled forever.
const defaultTimeout = 15 * time.Second

// authExemptPrefixes are request paths that never carry the bearer credential.
var authExemptPrefixes = []string{"/auth/"}

// TokenSource supplies the current bearer credential. An empty string means
// no credential is attached.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value TokenSource.
type StaticToken string

// Token returns the fixed token value.
func (t StaticToken) Token() string { return string(t) }

// AuthDeniedFunc observes 401/403 responses on protected paths. Whether such
// a response forces a logout is the caller's policy, not this layer's.
type AuthDeniedFunc func(statusCode int, path string)

// Client is the pet backend API client. It attaches the bearer credential to
// every request outside the auth-exempt prefixes and reports access-denied
// responses on protected paths.
type Client struct {
	baseURL      string
	tokens       TokenSource
	httpClient   *http.Client
	log          logrus.FieldLogger
	onAuthDenied AuthDeniedFunc
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request observations.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithAuthDeniedFunc sets the access-denied observer.
func WithAuthDeniedFunc(fn AuthDeniedFunc) Option {
	return func(c *Client) { c.onAuthDenied = fn }
}

// New creates a new API client.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnAuthDenied replaces the access-denied observer. Used when the policy is
// decided after the client is constructed.
func (c *Client) OnAuthDenied(fn AuthDeniedFunc) {
	c.onAuthDenied = fn
}

// --- Auth endpoints ---

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type roleRequest struct {
	RoleListName []string `json:"roleListName"`
}

type signUpRequest struct {
	Username       string      `json:"username"`
	Password       string      `json:"password"`
	RoleRequestDTO roleRequest `json:"roleRequestDTO"`
}

type jwtResponse struct {
	JWT string `json:"jwt"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp jwtResponse
	if err := c.post(ctx, "/auth/log-in", credentialsRequest{Username: username, Password: password}, &resp); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	return resp.JWT, nil
}

// Register creates an account with the requested role list. The backend logs
// the new user in and returns a usable token.
func (c *Client) Register(ctx context.Context, username, password string, roles []string) (string, error) {
	req := signUpRequest{
		Username:       username,
		Password:       password,
		RoleRequestDTO: roleRequest{RoleListName: roles},
	}
	var resp jwtResponse
	if err := c.post(ctx, "/auth/sign-up", req, &resp); err != nil {
		return "", fmt.Errorf("client.Register: %w", err)
	}
	return resp.JWT, nil
}

// --- Pet endpoints ---

// CreatePetRequest is the payload for creating a new pet.
type CreatePetRequest struct {
	Name    string         `json:"name"`
	PetType domain.PetType `json:"petType"`
}

// UpdatePetRequest carries only the fields a partial update changes; unset
// fields are omitted from the payload.
type UpdatePetRequest struct {
	Name        string `json:"name,omitempty"`
	Mood        string `json:"mood,omitempty"`
	EnergyLevel *int   `json:"energyLevel,omitempty"`
	HungerLevel *int   `json:"hungerLevel,omitempty"`
}

// MyPets fetches the authenticated user's pets.
func (c *Client) MyPets(ctx context.Context) ([]domain.Pet, error) {
	var pets []domain.Pet
	if err := c.get(ctx, "/api/pets/my-pets", &pets); err != nil {
		return nil, fmt.Errorf("client.MyPets: %w", err)
	}
	return pets, nil
}

// CreatePet creates a new pet and returns the server's record.
func (c *Client) CreatePet(ctx context.Context, req CreatePetRequest) (*domain.Pet, error) {
	var created domain.Pet
	if err := c.post(ctx, "/api/pets", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreatePet: %w", err)
	}
	return &created, nil
}

// UpdatePet applies a partial update and returns the authoritative record.
func (c *Client) UpdatePet(ctx context.Context, id int64, req UpdatePetRequest) (*domain.Pet, error) {
	var updated domain.Pet
	if err := c.doRequest(ctx, http.MethodPut, "/api/pets/"+strconv.FormatInt(id, 10), req, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdatePet: %w", err)
	}
	return &updated, nil
}

// DeletePet deletes a pet by ID.
func (c *Client) DeletePet(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/pets/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return fmt.Errorf("client.DeletePet: %w", err)
	}
	return nil
}

// GetPet fetches a single pet by ID.
func (c *Client) GetPet(ctx context.Context, id int64) (*domain.Pet, error) {
	var pet domain.Pet
	if err := c.get(ctx, "/api/pets/"+strconv.FormatInt(id, 10), &pet); err != nil {
		return nil, fmt.Errorf("client.GetPet: %w", err)
	}
	return &pet, nil
}

// AllPets fetches every pet in the system. Requires an admin role.
func (c *Client) AllPets(ctx context.Context) ([]domain.Pet, error) {
	var pets []domain.Pet
	if err := c.get(ctx, "/api/pets/all", &pets); err != nil {
		return nil, fmt.Errorf("client.AllPets: %w", err)
	}
	return pets, nil
}

// --- Request core ---

// authExempt reports whether a path belongs to the auth endpoints, which
// never carry (or observe) the bearer credential.
func authExempt(path string) bool {
	for _, prefix := range authExemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	exempt := authExempt(path)
	if !exempt {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	requestID := uuid.NewString()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     method,
			"path":       path,
		}).WithError(err).Debug("request failed")
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if !exempt && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     method,
			"path":       path,
			"status":     resp.StatusCode,
		}).Warn("access denied on protected path")
		if c.onAuthDenied != nil {
			c.onAuthDenied(resp.StatusCode, path)
		}
	}

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
