package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skycast-app/skycast/internal/config"
)

// OverlayOpacity is the blend factor the viewer applies when layering
// the cloud tiles over the base map.
const OverlayOpacity = 0.6

// ErrOutOfRange reports tile indices outside the slippy-map grid for
// the requested zoom level.
var ErrOutOfRange = errors.New("tile coordinates out of range")

const maxZoom = 19

// Proxy fetches cloud-coverage raster tiles from the provider on
// behalf of clients, keeping the API key server-side.
type Proxy struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewProxy(cfg config.WeatherConfig) *Proxy {
	return &Proxy{
		baseURL: cfg.TileURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// CloudTile returns the PNG bytes and content type for one tile of the
// clouds overlay layer.
func (p *Proxy) CloudTile(ctx context.Context, z, x, y int) ([]byte, string, error) {
	if z < 0 || z > maxZoom {
		return nil, "", ErrOutOfRange
	}
	max := 1 << uint(z)
	if x < 0 || x >= max || y < 0 || y >= max {
		return nil, "", ErrOutOfRange
	}

	u := fmt.Sprintf("%s/clouds_new/%d/%d/%d.png?appid=%s", p.baseURL, z, x, y, p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("tile request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	return body, contentType, nil
}
