package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 4 << 10

// DetailFunc extracts a human readable message from a non-2xx body.
type DetailFunc func(body []byte) string

// GetJSON issues a GET request and decodes a 2xx JSON body into out.
// Every failure is returned as *Error.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, header http.Header, out any, detail DetailFunc) error {
	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &Error{Kind: KindNetwork, URL: rawURL, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, URL: redact(req), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		fe := &Error{Kind: KindHTTP, URL: redact(req), Status: resp.StatusCode}
		if detail != nil {
			fe.Detail = detail(body)
		}
		if fe.Detail == "" {
			fe.Detail = strings.TrimSpace(string(body))
		}
		return fe
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, URL: redact(req), Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindDecode, URL: redact(req), Err: err}
	}

	return nil
}

// redact drops the query string; it may carry keys and is noise in notifications.
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}
