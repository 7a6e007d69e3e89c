package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":     {},
	"requestId":     {},
	"reservedUntil": {},
	"timeLeft":      {},
	"bookedOn":      {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// Browser talks to the running server over HTTP and keeps the session cookie
// between requests.
type Browser struct {
	t      testing.TB
	client *http.Client
	base   string
}

func newBrowser(t testing.TB, server *httptest.Server) *Browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := &http.Client{
		Transport: server.Client().Transport,
		Jar:       jar,
	}

	return &Browser{t: t, client: client, base: server.URL}
}

func (b *Browser) Do(method, path, body string) *http.Response {
	b.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, b.base+path, reader)
	require.NoError(b.t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := b.client.Do(req)
	require.NoError(b.t, err)

	return res
}

// Expect performs the request and checks its status and, when given, its body.
func (b *Browser) Expect(method, path, body string, status int, expected string) {
	b.t.Helper()

	res := b.Do(method, path, body)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(b.t, err)

	require.Equal(b.t, status, res.StatusCode, "unexpected status for %s %s: %s", method, path, raw)

	if expected != "" {
		compareResponse(b.t, bytes.NewReader(raw), expected)
	}
}
