// Package subgraph queries the protocol's GraphQL indexer.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"vaultScope/internal/retry"
)

const maxResponseBytes = 16 << 20

// Config controls the subgraph client.
type Config struct {
	Endpoint     string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Client posts GraphQL queries to a subgraph endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a Client. A nil httpClient uses one with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("subgraph endpoint is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}, nil
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// statusError is a non-200 response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d: %s", e.code, e.body)
}

// Query runs a GraphQL query and decodes its data field into T. Transport
// failures and 5xx responses are retried; GraphQL errors are not.
func Query[T any](ctx context.Context, c *Client, query string, variables map[string]interface{}) (T, error) {
	var result T

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return result, fmt.Errorf("marshal query: %w", err)
	}

	var payload []byte
	var rejected error
	err = retry.Do(ctx, c.cfg.MaxRetries, c.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		payload, err = c.post(ctx, body)
		var se *statusError
		if errors.As(err, &se) && se.code < 500 {
			rejected = err
			return nil
		}
		if err != nil {
			c.logger.Warn("subgraph request failed", zap.Error(err), zap.String("endpoint", c.cfg.Endpoint))
		}
		return err
	})
	if err != nil {
		return result, err
	}
	if rejected != nil {
		return result, rejected
	}

	var resp graphQLResponse[T]
	if err := json.Unmarshal(payload, &resp); err != nil {
		return result, fmt.Errorf("failed to unmarshal json: %w", err)
	}
	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return result, fmt.Errorf("graphql: %s", strings.Join(messages, "; "))
	}
	return resp.Data, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(data))}
	}
	return data, nil
}
