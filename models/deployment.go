package models

// DeploymentAttemptResult represents the outcome of one triggered deployment
type DeploymentAttemptResult struct {
	Index        int
	OK           bool
	URL          string
	ErrorMessage string
}

// AuthSession holds the access token obtained for one configure run.
// It lives for a single command invocation and is never cached.
type AuthSession struct {
	AccessToken string
}
