package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/getlisted/getlisted-go/internal/apierr"
	"github.com/getlisted/getlisted-go/internal/types"
)

// ListStartups fetches one page of the directory. filter may be nil; zero
// page/limit defer to server defaults.
func ListStartups(ctx context.Context, httpClient HTTPClient, baseURL string, filter *types.StartupFilter, page, limit int) (*types.ListStartupsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/startups/getstartups", baseURL)
	if q := filter.Values(page, limit).Encode(); q != "" {
		u += "?" + q
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport("list startups", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list startups", resp)
	}

	var lr types.ListStartupsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return &lr, nil
}

// GetStartup retrieves a single startup by ID.
func GetStartup(ctx context.Context, httpClient HTTPClient, baseURL, id string) (*types.Startup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apierr.Validation("get startup", "startup id is required")
	}
	u := fmt.Sprintf("%s/startups/getstartup/%s", baseURL, url.PathEscape(id))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport("get startup", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("get startup", resp)
	}

	var sr types.StartupResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr.Data, nil
}

// CreateStartup submits a new listing and returns the server's record,
// including the assigned identifier and owner reference.
func CreateStartup(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateStartupRequest) (*types.Startup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/startups/create", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport("create startup", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, statusError("create startup", resp)
	}

	var sr types.StartupResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr.Data, nil
}

// UpdateStartup applies a partial update and returns the server's record.
func UpdateStartup(ctx context.Context, httpClient HTTPClient, baseURL, id string, req types.UpdateStartupRequest) (*types.Startup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apierr.Validation("update startup", "startup id is required")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/startups/updatestartup/%s", baseURL, url.PathEscape(id))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport("update startup", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("update startup", resp)
	}

	var sr types.StartupResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr.Data, nil
}

// DeleteStartup removes a listing by ID.
func DeleteStartup(ctx context.Context, httpClient HTTPClient, baseURL, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return apierr.Validation("delete startup", "startup id is required")
	}
	u := fmt.Sprintf("%s/startups/deletestartup/%s", baseURL, url.PathEscape(id))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierr.FromTransport("delete startup", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return statusError("delete startup", resp)
	}
	return nil
}
