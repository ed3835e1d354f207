package vercel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"deploybot/clients"
)

const defaultAPIBaseURL = "https://api.vercel.com"

// VercelClient implements the clients.VercelClient interface. Every deployment
// is triggered with the same fixed payload: the configured git source against
// the staging target.
type VercelClient struct {
	httpClient    *http.Client
	apiToken      string
	baseURL       string
	targetProject string
	gitHubRemote  string
	gitHubOrg     string
	gitHubProject string
}

type createDeploymentRequest struct {
	GitMetadata struct {
		RemoteURL string `json:"remoteUrl"`
	} `json:"gitMetadata"`
	GitSource struct {
		Ref    string  `json:"ref"`
		RepoID *string `json:"repoId"`
		SHA    string  `json:"sha"`
		Type   string  `json:"type"`
		Org    string  `json:"org"`
		Repo   string  `json:"repo"`
	} `json:"gitSource"`
	Name    string `json:"name"`
	Project string `json:"project"`
	Target  string `json:"target"`
}

type createDeploymentResponse struct {
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// NewVercelClient creates a new Vercel deployments client
func NewVercelClient(apiToken, targetProject, gitHubRemote, gitHubOrg, gitHubProject string) clients.VercelClient {
	return &VercelClient{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		apiToken:      apiToken,
		baseURL:       defaultAPIBaseURL,
		targetProject: targetProject,
		gitHubRemote:  gitHubRemote,
		gitHubOrg:     gitHubOrg,
		gitHubProject: gitHubProject,
	}
}

// CreateDeployment triggers one deployment of the configured project against
// the staging target and reports the API-level outcome
func (c *VercelClient) CreateDeployment(ctx context.Context) (*clients.DeploymentResult, error) {
	reqBody := createDeploymentRequest{
		Name:    c.targetProject,
		Project: c.targetProject,
		Target:  "staging",
	}
	reqBody.GitMetadata.RemoteURL = c.gitHubRemote
	reqBody.GitSource.Ref = "main"
	reqBody.GitSource.Type = "github"
	reqBody.GitSource.Org = c.gitHubOrg
	reqBody.GitSource.Repo = c.gitHubProject

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		c.baseURL+"/v13/deployments",
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to trigger deployment: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var deployResp createDeploymentResponse
	if err := json.Unmarshal(body, &deployResp); err != nil {
		return nil, fmt.Errorf("%w: %s", clients.ErrMalformedResponse, string(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorMessage := deployResp.Message
		if deployResp.Error != nil && deployResp.Error.Message != "" {
			errorMessage = deployResp.Error.Message
		}
		if errorMessage == "" {
			errorMessage = string(body)
		}
		return &clients.DeploymentResult{OK: false, ErrorMessage: errorMessage}, nil
	}

	return &clients.DeploymentResult{OK: true, URL: deployResp.URL}, nil
}
