package hoyolab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"HoyoSentinel/internal/model"
)

type requestOptions struct {
	method    string
	cookie    Cookie
	requireDS bool
}

// fetchData performs a request and unwraps the {retcode, message, data}
// envelope into T.
func fetchData[T any](ctx context.Context, cd *ClientData, rawURL string, opts requestOptions) (*T, error) {
	body, err := do(ctx, cd, rawURL, opts)
	if err != nil {
		return nil, err
	}

	var env model.Response[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpointName(rawURL), err)
	}
	if env.Retcode != 0 {
		return nil, &APIError{Retcode: env.Retcode, Message: env.Message}
	}
	if env.Data == nil {
		return nil, fmt.Errorf("decode %s: empty data", endpointName(rawURL))
	}
	return env.Data, nil
}

func do(ctx context.Context, cd *ClientData, rawURL string, opts requestOptions) ([]byte, error) {
	method := opts.method
	if method == "" {
		method = http.MethodGet
	}
	var reqBody io.Reader
	if method == http.MethodPost {
		reqBody = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rpc-app_version", appVersion)
	req.Header.Set("x-rpc-client_type", clientType)
	req.Header.Set("x-rpc-language", cd.Language)
	req.Header.Set("User-Agent", cd.UserAgent)
	if opts.cookie != nil {
		req.Header.Set("Cookie", opts.cookie.Header())
	}
	if opts.requireDS {
		req.Header.Set("DS", GenerateDS(time.Now()))
	}
	if strings.Contains(rawURL, "luna/hkrpg") {
		req.Header.Set("x-rpc-signgame", "hkrpg")
	} else if strings.Contains(rawURL, "luna/zzz") {
		req.Header.Set("x-rpc-signgame", "zzz")
	}

	resp, err := cd.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpointName(rawURL), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpointName(rawURL), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d, body: %s", endpointName(rawURL), resp.StatusCode, string(body))
	}
	return body, nil
}

// endpointName trims the query string so cookies and act ids stay out of errors.
func endpointName(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// withQuery appends key/value pairs, respecting an existing query string.
func withQuery(rawURL string, kv ...string) string {
	var b strings.Builder
	b.WriteString(rawURL)
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(kv[i])
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[i+1]))
		sep = "&"
	}
	return b.String()
}
