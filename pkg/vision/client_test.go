package vision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FreshTrack/domain"
)

func newTestClient(serverURL string) *geminiClient {
	return &geminiClient{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    serverURL,
		apiKey:     "test-key",
		model:      "test-model",
	}
}

func candidateBody(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestExtract_FencedJSON(t *testing.T) {
	var gotRequest geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(candidateBody("```json\n{\"product_name\":\"Sour Cream\",\"expiration_date\":\"2024-12-31\"}\n```")))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	result, err := c.Extract(context.Background(), []byte("fake-image"), "image/jpeg")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.ProductName != "Sour Cream" {
		t.Errorf("ProductName = %q, want %q", result.ProductName, "Sour Cream")
	}
	if result.ExpirationDate == nil || *result.ExpirationDate != "2024-12-31" {
		t.Errorf("ExpirationDate = %v, want 2024-12-31", result.ExpirationDate)
	}

	if len(gotRequest.Contents) != 1 || len(gotRequest.Contents[0].Parts) != 2 {
		t.Fatalf("request shape = %+v, want one content with two parts", gotRequest)
	}
	if gotRequest.Contents[0].Parts[0].Text == "" {
		t.Error("first part should carry the prompt text")
	}
	inline := gotRequest.Contents[0].Parts[1].InlineData
	if inline == nil || inline.MimeType != "image/jpeg" || inline.Data == "" {
		t.Errorf("second part inline data = %+v, want base64 image tagged image/jpeg", inline)
	}
}

func TestExtract_NullExpirationDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody(`{"product_name":"Milk","expiration_date":null}`)))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	result, err := c.Extract(context.Background(), []byte("fake-image"), "")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.ProductName != "Milk" {
		t.Errorf("ProductName = %q, want %q", result.ProductName, "Milk")
	}
	if result.ExpirationDate != nil {
		t.Errorf("ExpirationDate = %v, want nil", *result.ExpirationDate)
	}
}

func TestExtract_EmptyImage(t *testing.T) {
	c := newTestClient("http://unused")
	_, err := c.Extract(context.Background(), nil, "image/jpeg")
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Errorf("err = %v, want ErrInvalidImage", err)
	}
}

func TestExtract_BlockedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), []byte("fake-image"), "image/jpeg")
	if !errors.Is(err, domain.ErrContentBlocked) {
		t.Fatalf("err = %v, want ErrContentBlocked", err)
	}

	var blocked *BlockedError
	if !errors.As(err, &blocked) || blocked.Reason != "SAFETY" {
		t.Errorf("blocked reason = %+v, want SAFETY", err)
	}
}

func TestExtract_UpstreamRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("api key invalid"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), []byte("fake-image"), "image/jpeg")
	if !errors.Is(err, domain.ErrUpstreamRejected) {
		t.Fatalf("err = %v, want ErrUpstreamRejected", err)
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err %v is not an UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusForbidden || upstream.Body != "api key invalid" {
		t.Errorf("upstream = %+v, want 403 with body", upstream)
	}
}

func TestExtract_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), []byte("fake-image"), "image/jpeg")
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestExtract_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), []byte("fake-image"), "image/jpeg")
	if !errors.Is(err, domain.ErrMalformedPayload) {
		t.Errorf("err = %v, want ErrMalformedPayload", err)
	}
}

func TestExtract_MalformedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody("```json\nthe label says milk\n```")))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), []byte("fake-image"), "image/jpeg")
	if !errors.Is(err, domain.ErrMalformedResult) {
		t.Fatalf("err = %v, want ErrMalformedResult", err)
	}

	var result *ResultError
	if !errors.As(err, &result) {
		t.Fatalf("err %v is not a ResultError", err)
	}
	if result.RawText == "" || result.SanitizedText != "the label says milk" {
		t.Errorf("diagnostics = %+v, want raw and sanitized text", result)
	}
}

func TestExtract_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), []byte("fake-image"), "image/jpeg")
	if !errors.Is(err, domain.ErrTransportFailure) {
		t.Errorf("err = %v, want ErrTransportFailure", err)
	}
}
