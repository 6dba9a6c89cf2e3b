package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGoogleProvider(t *testing.T, endpoint string, cache *Cache) *GoogleProvider {
	t.Helper()
	synth, err := NewGoogleProvider(&Config{GoogleEndpoint: endpoint}, cache)
	if err != nil {
		t.Fatalf("NewGoogleProvider() error = %v", err)
	}
	return synth.(*GoogleProvider)
}

func TestGoogleDownloadRequestParams(t *testing.T) {
	var gotQuery map[string][]string
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("fake mp3 data"))
	}))
	defer server.Close()

	provider := newTestGoogleProvider(t, server.URL, nil)

	data, err := provider.download(context.Background(), Request{
		Text:     "cat",
		Language: "en",
		Rate:     RateNormal,
	})
	if err != nil {
		t.Fatalf("download() error = %v", err)
	}
	if string(data) != "fake mp3 data" {
		t.Errorf("download() = %q, want %q", data, "fake mp3 data")
	}

	expected := map[string]string{
		"ie":     "UTF-8",
		"client": "tw-ob",
		"tl":     "en",
		"q":      "cat",
	}
	for key, want := range expected {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %v", key, got, want)
		}
	}
	if _, ok := gotQuery["ttsspeed"]; ok {
		t.Error("normal rate should not set ttsspeed")
	}
	if !strings.Contains(gotUserAgent, "Mozilla") {
		t.Errorf("User-Agent = %q, want a browser agent", gotUserAgent)
	}
}

func TestGoogleDownloadSlowRate(t *testing.T) {
	var gotSpeed string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSpeed = r.URL.Query().Get("ttsspeed")
		w.Write([]byte("fake mp3 data"))
	}))
	defer server.Close()

	provider := newTestGoogleProvider(t, server.URL, nil)

	_, err := provider.download(context.Background(), Request{
		Text:     "cat",
		Language: "en",
		Rate:     RateSlow,
	})
	if err != nil {
		t.Fatalf("download() error = %v", err)
	}
	if gotSpeed != "0.24" {
		t.Errorf("ttsspeed = %q, want %q", gotSpeed, "0.24")
	}
}

func TestGoogleDownloadErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			errMsg: "returned status 500",
		},
		{
			name: "empty response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			errMsg: "no audio data received",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := newTestGoogleProvider(t, server.URL, nil)

			_, err := provider.download(context.Background(), Request{Text: "cat", Language: "en"})
			if err == nil {
				t.Fatal("download() expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("download() error = %v, want error containing %v", err, tt.errMsg)
			}
		})
	}
}

func TestGoogleFetchUsesCache(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("fake mp3 data"))
	}))
	defer server.Close()

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	provider := newTestGoogleProvider(t, server.URL, cache)

	req := Request{Text: "cat", Language: "en", Rate: RateNormal}
	ctx := context.Background()

	first, err := provider.fetch(ctx, req)
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	second, err := provider.fetch(ctx, req)
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}

	if requests != 1 {
		t.Errorf("Expected 1 network request, got %d", requests)
	}
	if string(first) != string(second) {
		t.Error("Cached response differs from the original")
	}
}

func TestGoogleBreakerOpensAfterFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := newTestGoogleProvider(t, server.URL, nil)

	if err := provider.IsAvailable(); err != nil {
		t.Fatalf("IsAvailable() before failures error = %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		if _, err := provider.fetch(ctx, Request{Text: "cat", Language: "en"}); err == nil {
			t.Fatal("fetch() expected error from failing server")
		}
	}

	if err := provider.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error after the breaker opened")
	}
}

func TestGoogleSynthesizeRejectsUndecodableAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not mp3 audio"))
	}))
	defer server.Close()

	provider := newTestGoogleProvider(t, server.URL, nil)

	_, err := provider.Synthesize(context.Background(), Request{Text: "cat", Language: "en"})
	if err == nil {
		t.Fatal("Synthesize() expected error for undecodable audio")
	}
	if !strings.Contains(err.Error(), "undecodable") {
		t.Errorf("Synthesize() error = %v, want decode failure", err)
	}
}

func TestGoogleSynthesizeRejectsEmptyText(t *testing.T) {
	provider := newTestGoogleProvider(t, "http://127.0.0.1:0", nil)

	_, err := provider.Synthesize(context.Background(), Request{Text: "   ", Language: "en"})
	if err == nil {
		t.Fatal("Synthesize() expected error for empty text")
	}
	if !strings.Contains(err.Error(), "text cannot be empty") {
		t.Errorf("Synthesize() error = %v, want validation failure", err)
	}
}
