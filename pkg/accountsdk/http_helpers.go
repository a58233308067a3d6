package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/aussiebroadwan/accounts/pkg/idx"
)

// url builds a complete URL by appending the path to the base URL.
func (a *API) url(path string) string {
	return a.baseURL + path
}

// newRequest builds a request with a JSON body when body is non-nil. Every
// request carries a request id.
func (a *API) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.url(path), r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(idx.RequestIDHeader, idx.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doRequest performs an unauthenticated request.
func (a *API) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	req, err := a.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doAuthRequest performs a request with the handle's bearer token, refreshing
// it first if it has expired. State errors are returned before any I/O.
func (a *API) doAuthRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if a.token == nil {
		return nil, ErrNoToken
	}

	token, err := a.token.Valid(ctx)
	if err != nil {
		return nil, err
	}

	req, err := a.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a JSON response into target. Any status outside
// expected becomes a RemoteError.
func decodeJSON(resp *http.Response, target any, expected ...int) error {
	defer resp.Body.Close()

	// Read body once for both error parsing and success decoding
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if !slices.Contains(expected, resp.StatusCode) {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkStatus drains the response and returns a RemoteError if its status is
// not one of expected.
func checkStatus(resp *http.Response, expected ...int) error {
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if !slices.Contains(expected, resp.StatusCode) {
		return parseErrorResponse(resp, bodyBytes)
	}
	return nil
}
