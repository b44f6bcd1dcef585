package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"memory_mapping/internal/http/dto"
	"memory_mapping/internal/http/middleware"
	"memory_mapping/internal/model"
)

// client is a thin JSON client for the memory_mapping HTTP API.
type client struct {
	base  string
	owner string
	http  *http.Client
}

func newClient(opts *RootOptions) *client {
	return &client{
		base:  strings.TrimRight(opts.Server, "/"),
		owner: opts.Owner,
		http:  &http.Client{Timeout: opts.Timeout},
	}
}

func (c *client) add(ctx context.Context, path string, req dto.AddMemoryRequest, out any) error {
	if c.owner == "" {
		return fmt.Errorf("--owner is required")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

func (c *client) latest(ctx context.Context) ([]model.Memory, error) {
	var out []model.Memory
	err := c.do(ctx, http.MethodGet, "/memories/latest", nil, &out)
	return out, err
}

func (c *client) count(ctx context.Context, path string) (int64, error) {
	var out dto.CountResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *client) ownerMemories(ctx context.Context, owner string) ([]model.Memory, error) {
	var out []model.Memory
	err := c.do(ctx, http.MethodGet, ownerPath(owner), nil, &out)
	return out, err
}

func (c *client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.owner != "" {
		req.Header.Set(middleware.OwnerHeader, c.owner)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= http.StatusBadRequest {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("%s %s: %s", method, path, res.Status)
		}
		return fmt.Errorf("%s %s: %s (%s)", method, path, apiErr.Message, apiErr.Code)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// ownerPath escapes owner as one path segment. '+' is escaped as well since
// the server unescapes raw segments with query rules.
func ownerPath(owner string) string {
	return "/owners/" + strings.ReplaceAll(url.PathEscape(owner), "+", "%2B") + "/memories"
}
