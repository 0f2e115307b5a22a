package githost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// apiVersion is the GitHub REST API version header. Pinning the version
// ensures consistent behavior as the API evolves.
const apiVersion = "2022-11-28"

// defaultBaseURL is the base URL for the public GitHub API.
const defaultBaseURL = "https://api.github.com"

// maxResponseBody bounds how much of a response body the client will read.
// The largest payloads are base64-encoded image blobs.
const maxResponseBody = 64 << 20 // 64 MiB

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// "https://api.github.com". Must use HTTPS.
	BaseURL string

	// Token is the bearer token used for every request. Required. The
	// client never stores it anywhere but in memory and never rotates it.
	Token string

	// HTTPClient is used for all HTTP requests. Timeouts and cancellation
	// are its concern; the client itself never retries. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the GitHub REST API surfaces tracket uses.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from the given configuration. Returns an error
// if the token is missing or the base URL is not HTTPS.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("githost: client requires HTTPS (got %q)", baseURL)
	}
	if config.Token == "" {
		return nil, fmt.Errorf("githost: no token configured")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		token:      config.Token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// do executes an authenticated request. The path is relative to the base
// URL (e.g. "/repos/owner/repo/contents/x.yml"). A non-nil requestBody is
// JSON-encoded. On non-2xx responses the body is parsed into a typed
// *Error; transport failures classify as Unavailable.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	url := client.baseURL + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("githost: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("githost: creating request: %w", err)
	}

	request.Header.Set("Authorization", "Bearer "+client.token)
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", apiVersion)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, transportError(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBody))
	if err != nil {
		return nil, transportError(fmt.Errorf("reading response body: %w", err))
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiErr := parseAPIError(response.StatusCode, body)
		client.logger.Debug("request failed",
			"method", method,
			"path", path,
			"status", response.StatusCode,
			"kind", string(apiErr.Kind),
		)
		return nil, apiErr
	}

	return body, nil
}

// get executes a GET request and decodes the JSON response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return malformedError("decoding response for "+path, err)
	}
	return nil
}

// parseAPIError builds a typed *Error from a non-2xx response. GitHub
// returns structured JSON error bodies with a top-level message.
func parseAPIError(statusCode int, body []byte) *Error {
	hostErr := &Error{
		Kind:       classifyStatus(statusCode),
		StatusCode: statusCode,
	}

	var wireError struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Message != "" {
		hostErr.Message = wireError.Message
	} else {
		hostErr.Message = strings.TrimSpace(string(body))
	}

	return hostErr
}
