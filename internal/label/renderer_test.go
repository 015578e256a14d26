package label

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantryapi/internal/config"
)

// testPNG returns a minimal valid PNG for embedding.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRender(t *testing.T) {
	pngBytes := testPNG(t)

	var barcodeQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/barcode" {
			barcodeQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	}))
	defer srv.Close()

	fetcher := NewFetcher(config.LabelConfig{
		LogoURL:        srv.URL + "/logo.png",
		BarcodeBaseURL: srv.URL + "/barcode",
	}, srv.Client())

	out, err := NewRenderer(fetcher).Render(context.Background(), Params{
		FirstName:    "Mary",
		LastName:     "Bantin",
		PickupWindow: "Weekday 8am-4pm",
		DateText:     "2025-10-02",
		Index:        1,
		Total:        2,
		FormID:       "123456789012",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// One 4x6 page.
	pages, err := api.PageCount(bytes.NewReader(out), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)

	// The barcode request binds the label to the business key.
	assert.Contains(t, barcodeQuery, "text=123456789012")
	assert.Contains(t, barcodeQuery, "type=code128")
	assert.Contains(t, barcodeQuery, "format=png")
}

func TestRenderAssetFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	fetcher := NewFetcher(config.LabelConfig{
		LogoURL:        srv.URL + "/logo.png",
		BarcodeBaseURL: srv.URL + "/barcode",
	}, srv.Client())

	_, err := NewRenderer(fetcher).Render(context.Background(), Params{FormID: "123456789012", Index: 1, Total: 1})
	assert.Error(t, err)
}

func TestWrapLines(t *testing.T) {
	// Character-count measure keeps the cases easy to reason about.
	measure := func(s string) float64 { return float64(len(s)) }

	t.Run("packs greedily", func(t *testing.T) {
		lines := wrapLines(measure, "aa bb cc dd", 7)
		assert.Equal(t, []string{"aa bb", "cc dd"}, lines)
	})

	t.Run("single overlong word still emits", func(t *testing.T) {
		lines := wrapLines(measure, "supercalifragilistic", 5)
		assert.Equal(t, []string{"supercalifragilistic"}, lines)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, wrapLines(measure, "   ", 10))
	})

	t.Run("disclaimer fits the column", func(t *testing.T) {
		lines := wrapLines(measure, disclaimer, 30)
		assert.Greater(t, len(lines), 5)
		for _, l := range lines {
			assert.LessOrEqual(t, measure(l), 30.0)
		}
	})
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "M", initial("Mary"))
	assert.Equal(t, "", initial("  "))
	assert.Equal(t, "Å", initial("Åsa"))
}
