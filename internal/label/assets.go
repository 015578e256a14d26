package label

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"pantryapi/internal/config"
)

// Fetcher pulls the two remote images embedded into every label: the pantry
// logo and a code128 barcode of the form ID rendered by the barcode service.
type Fetcher struct {
	client  *http.Client
	logoURL string
	barcode string
}

// NewFetcher builds a Fetcher using the provided HTTP client (instrumented
// by the caller).
func NewFetcher(cfg config.LabelConfig, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client:  client,
		logoURL: cfg.LogoURL,
		barcode: cfg.BarcodeBaseURL,
	}
}

// Logo fetches the pantry logo PNG.
func (f *Fetcher) Logo(ctx context.Context) ([]byte, error) {
	return f.get(ctx, f.logoURL)
}

// Barcode renders text as a code128 PNG strip sized for the label foot.
func (f *Fetcher) Barcode(ctx context.Context, text string) ([]byte, error) {
	q := url.Values{}
	q.Set("text", text)
	q.Set("type", "code128")
	q.Set("format", "png")
	q.Set("width", "250")
	q.Set("height", "60")
	q.Set("margin", "0")
	return f.get(ctx, f.barcode+"?"+q.Encode())
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
