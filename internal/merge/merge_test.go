package merge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePagePDF renders a minimal single-page PDF.
func onePagePDF(t *testing.T, text string) []byte {
	t.Helper()
	doc := fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt", Size: fpdf.SizeType{Wd: 288, Ht: 432}})
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Text(40, 40, text)
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestRemoteMerger(t *testing.T) {
	ctx := context.Background()
	mergedBytes := onePagePDF(t, "merged")

	t.Run("posts base64 and url forms", func(t *testing.T) {
		var got wireRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/pdf")
			w.Write(mergedBytes)
		}))
		defer srv.Close()

		out, err := NewRemote(srv.URL, srv.Client()).Merge(ctx, []Input{
			{Name: "a.pdf", Data: []byte("%PDF-a")},
			{Name: "b.pdf", URL: "https://archive.example/b.pdf"},
		})
		require.NoError(t, err)
		assert.Equal(t, mergedBytes, out)

		require.Len(t, got.Files, 2)
		assert.Equal(t, "a.pdf", got.Files[0].Name)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-a")), got.Files[0].Data)
		assert.Empty(t, got.Files[0].URL)
		assert.Equal(t, "https://archive.example/b.pdf", got.Files[1].URL)
		assert.Empty(t, got.Files[1].Data)
	})

	t.Run("service error is surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "merge blew up", http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewRemote(srv.URL, srv.Client()).Merge(ctx, []Input{{Name: "a.pdf", Data: []byte("x")}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.Contains(t, err.Error(), "merge blew up")
	})

	t.Run("zero inputs", func(t *testing.T) {
		_, err := NewRemote("http://unused", nil).Merge(ctx, nil)
		assert.ErrorIs(t, err, ErrNoInputs)
	})

	t.Run("input without data or url", func(t *testing.T) {
		_, err := NewRemote("http://unused", nil).Merge(ctx, []Input{{Name: "ghost.pdf"}})
		assert.Error(t, err)
	})
}

func TestLocalMerger(t *testing.T) {
	ctx := context.Background()

	t.Run("concatenates in input order", func(t *testing.T) {
		out, err := NewLocal(nil).Merge(ctx, []Input{
			{Name: "1.pdf", Data: onePagePDF(t, "bag 1 of 2")},
			{Name: "2.pdf", Data: onePagePDF(t, "bag 2 of 2")},
		})
		require.NoError(t, err)

		pages, err := api.PageCount(bytes.NewReader(out), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, pages)
	})

	t.Run("fetches url inputs", func(t *testing.T) {
		pdf := onePagePDF(t, "remote page")
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(pdf)
		}))
		defer srv.Close()

		out, err := NewLocal(srv.Client()).Merge(ctx, []Input{
			{Name: "local.pdf", Data: onePagePDF(t, "local page")},
			{Name: "remote.pdf", URL: srv.URL + "/remote.pdf"},
		})
		require.NoError(t, err)

		pages, err := api.PageCount(bytes.NewReader(out), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, pages)
	})

	t.Run("zero inputs", func(t *testing.T) {
		_, err := NewLocal(nil).Merge(ctx, nil)
		assert.ErrorIs(t, err, ErrNoInputs)
	})
}
