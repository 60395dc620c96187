package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"stylesuggest/internal/suggestion/model"

	"github.com/goccy/go-json"
)

// RemoteError reports a store response outside the 2xx range.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: store responded %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: store responded %d", e.Op, e.Status)
}

type remote struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
}

func newRemote(baseURL string, httpClient *http.Client, token string) (*remote, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("client: base URL is required in %s mode", ModeRemote)
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}
	if httpClient == nil {
		// No timeout: a hung store blocks the operation until ctx is done.
		httpClient = &http.Client{}
	}
	return &remote{baseURL: parsed, httpClient: httpClient, token: token}, nil
}

func (r *remote) list(ctx context.Context) ([]model.Suggestion, error) {
	var out []model.Suggestion
	if err := r.do(ctx, "list", http.MethodGet, "/suggestions", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Suggestion{}
	}
	return out, nil
}

func (r *remote) create(ctx context.Context, req model.SuggestionRequest) (model.Suggestion, error) {
	var out model.Suggestion
	err := r.do(ctx, "create", http.MethodPost, "/suggestions", req, &out)
	return out, err
}

func (r *remote) update(ctx context.Context, id string, req model.SuggestionRequest) (model.Suggestion, error) {
	var out model.Suggestion
	err := r.do(ctx, "update", http.MethodPut, "/suggestions/"+url.PathEscape(id), req, &out)
	return out, err
}

func (r *remote) delete(ctx context.Context, id string) error {
	return r.do(ctx, "delete", http.MethodDelete, "/suggestions/"+url.PathEscape(id), nil, nil)
}

func (r *remote) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload model.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &RemoteError{Op: op, Status: resp.StatusCode, Message: payload.Message}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
