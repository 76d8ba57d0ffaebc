package tiles

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skycast-app/skycast/internal/config"
)

func TestCloudTileOutOfRange(t *testing.T) {
	p := NewProxy(config.WeatherConfig{TileURL: "http://example.invalid", Timeout: 1})

	cases := []struct{ z, x, y int }{
		{-1, 0, 0},
		{20, 0, 0},
		{2, 4, 0},
		{2, 0, 4},
		{0, 0, -1},
	}

	for _, tc := range cases {
		if _, _, err := p.CloudTile(context.Background(), tc.z, tc.x, tc.y); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("CloudTile(%d,%d,%d): expected ErrOutOfRange, got %v", tc.z, tc.x, tc.y, err)
		}
	}
}

func TestCloudTileProxies(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clouds_new/5/10/12.png" {
			t.Errorf("Unexpected tile path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("appid") != "test-key" {
			t.Errorf("Expected API key on tile request, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer server.Close()

	p := NewProxy(config.WeatherConfig{TileURL: server.URL, APIKey: "test-key", Timeout: 5})

	body, contentType, err := p.CloudTile(context.Background(), 5, 10, 12)
	if err != nil {
		t.Fatalf("CloudTile failed: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("Expected image/png, got %q", contentType)
	}
	if string(body) != string(png) {
		t.Errorf("Tile bytes were altered in transit")
	}
}

func TestCloudTileUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewProxy(config.WeatherConfig{TileURL: server.URL, APIKey: "", Timeout: 5})

	if _, _, err := p.CloudTile(context.Background(), 0, 0, 0); err == nil {
		t.Error("Expected error for upstream failure")
	}
}
