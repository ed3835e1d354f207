package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"deploybot/clients"
	"deploybot/models"
)

// PlatformClient implements the clients.PlatformClient interface against the
// production platform API: service-account authentication and deployment
// configuration updates.
type PlatformClient struct {
	httpClient      *http.Client
	baseURL         string
	serviceEmail    string
	servicePassword string
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Session *struct {
		AccessToken string `json:"access_token"`
	} `json:"session"`
	Message string `json:"message"`
}

type updateConfigRequest struct {
	URL    string             `json:"url"`
	Config models.ConfigValue `json:"config"`
}

type updateConfigResponse struct {
	Error string `json:"error"`
}

// NewPlatformClient creates a new platform API client
func NewPlatformClient(productionURL, serviceEmail, servicePassword string) clients.PlatformClient {
	return &PlatformClient{
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		baseURL:         productionURL,
		serviceEmail:    serviceEmail,
		servicePassword: servicePassword,
	}
}

// Authenticate obtains an access token using the configured service credentials.
// The credentials never come from chat input.
func (c *PlatformClient) Authenticate(ctx context.Context) (*clients.AuthResult, error) {
	reqBody := authRequest{
		Email:    c.serviceEmail,
		Password: c.servicePassword,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/auth", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var authResp authResponse
	if err := json.Unmarshal(body, &authResp); err != nil {
		return nil, fmt.Errorf("%w: %s", clients.ErrMalformedResponse, string(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &clients.AuthResult{OK: false, ErrorMessage: authResp.Message}, nil
	}

	accessToken := ""
	if authResp.Session != nil {
		accessToken = authResp.Session.AccessToken
	}

	return &clients.AuthResult{OK: true, AccessToken: accessToken}, nil
}

// UpdateConfig forwards the configuration payload for the given deployment URL.
// The response body is read as text first and then JSON-decoded, so a
// non-JSON upstream answer surfaces as ErrMalformedResponse instead of a
// silent misread.
func (c *PlatformClient) UpdateConfig(
	ctx context.Context,
	accessToken, url string,
	config models.ConfigValue,
) (*clients.UpdateConfigResult, error) {
	reqBody := updateConfigRequest{
		URL:    url,
		Config: config,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		c.baseURL+"/api/deployments/update-config",
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to update config: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var updateResp updateConfigResponse
	if err := json.Unmarshal(body, &updateResp); err != nil {
		return nil, fmt.Errorf("%w: %s", clients.ErrMalformedResponse, string(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorMessage := updateResp.Error
		if errorMessage == "" {
			errorMessage = string(body)
		}
		return &clients.UpdateConfigResult{OK: false, ErrorMessage: errorMessage}, nil
	}

	return &clients.UpdateConfigResult{OK: true}, nil
}
