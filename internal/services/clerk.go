// Clerk Backend API implementation of [Sink]
//
// Request and response shapes based on https://clerk.com/docs/reference/backend-api
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const clerkBaseURL = "https://api.clerk.com/v1"

// clerkUser mirrors the provider's user object on the wire.
type clerkUser struct {
	ID             string `json:"id"`
	ExternalID     string `json:"external_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// clerkCreateUserRequest is the POST /users body.
type clerkCreateUserRequest struct {
	ExternalID              string   `json:"external_id,omitempty"`
	EmailAddress            []string `json:"email_address"`
	FirstName               string   `json:"first_name,omitempty"`
	LastName                string   `json:"last_name,omitempty"`
	PhoneNumber             []string `json:"phone_number,omitempty"`
	PasswordDigest          string   `json:"password_digest,omitempty"`
	PasswordHasher          string   `json:"password_hasher,omitempty"`
	SkipPasswordRequirement bool     `json:"skip_password_requirement,omitempty"`
}

// clerkErrorBody is the provider's error payload.
type clerkErrorBody struct {
	Errors  []APIError `json:"errors"`
	TraceID string     `json:"clerk_trace_id"`
}

// ClerkService implements the Sink interface for the Clerk Backend API.
// Authenticated with a static secret key; safe for reuse across sequential calls.
type ClerkService struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClerkService creates a Clerk API client with the given secret key.
// The base URL and HTTP client default to the production API and [http.DefaultClient].
func NewClerkService(secretKey, baseURL string, client *http.Client) *ClerkService {
	if baseURL == "" {
		baseURL = clerkBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ClerkService{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: client,
	}
}

// Name returns the provider name.
func (c *ClerkService) Name() string { return "Clerk" }

// CreateUser submits one user via POST /users. A record without a password
// digest requests a password-requirement waiver; one with a digest is submitted
// pre-hashed with its hasher tag.
func (c *ClerkService) CreateUser(ctx context.Context, params CreateUserParams) (*RemoteUser, error) {
	reqBody := clerkCreateUserRequest{
		ExternalID:   params.ExternalID,
		EmailAddress: []string{params.EmailAddress},
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PhoneNumber:  params.PhoneNumbers,
	}

	if params.PasswordDigest != "" {
		reqBody.PasswordDigest = params.PasswordDigest
		reqBody.PasswordHasher = params.PasswordHasher.String()
	} else {
		reqBody.SkipPasswordRequirement = true
	}

	var created clerkUser
	if err := c.do(ctx, http.MethodPost, "/users", reqBody, &created); err != nil {
		return nil, err
	}

	return remoteUser(created), nil
}

// DeleteUser removes a remote user via DELETE /users/{id}.
func (c *ClerkService) DeleteUser(ctx context.Context, userID string) (*DeletedUser, error) {
	var deleted DeletedUser
	if err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID), nil, &deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}

// ListUsers retrieves a page of users via GET /users.
func (c *ClerkService) ListUsers(ctx context.Context, limit, offset int) ([]RemoteUser, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page []clerkUser
	if err := c.do(ctx, http.MethodGet, "/users?"+query.Encode(), nil, &page); err != nil {
		return nil, err
	}

	users := make([]RemoteUser, len(page))
	for i, u := range page {
		users[i] = *remoteUser(u)
	}
	return users, nil
}

// do executes one authenticated request and decodes the response into out.
// Non-2xx responses come back as a [*ClerkError] with the decoded payload.
func (c *ClerkService) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// apiError builds a ClerkError from a non-2xx response, capturing the
// Retry-After cooldown hint when present.
func (c *ClerkService) apiError(resp *http.Response, body []byte) *ClerkError {
	clerkErr := &ClerkError{Status: resp.StatusCode}

	var payload clerkErrorBody
	if err := json.Unmarshal(body, &payload); err == nil {
		clerkErr.Errors = payload.Errors
		clerkErr.TraceID = payload.TraceID
	}

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			clerkErr.RetryAfter = time.Duration(seconds) * time.Second
		}
	}

	return clerkErr
}

// remoteUser maps the wire shape to the service DTO.
func remoteUser(u clerkUser) *RemoteUser {
	emails := make([]string, len(u.EmailAddresses))
	for i, e := range u.EmailAddresses {
		emails[i] = e.EmailAddress
	}

	return &RemoteUser{
		ID:             u.ID,
		ExternalID:     u.ExternalID,
		EmailAddresses: emails,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
	}
}
