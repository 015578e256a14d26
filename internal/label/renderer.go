package label

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/sync/errgroup"
)

// Page geometry: 4x6 inches at 72 dpi, drawn top-down in points.
const (
	pageWidth  = 288
	pageHeight = 432
)

const disclaimer = "These items have been provided as a good-faith effort to assist during a temporary need or crisis. The SPCA is not legally liable for the distribution, use, or consumption of these items. Items not picked up within 7 days of the date below will be repurposed for other clients."

// Params are the per-label inputs. Index and Total carry the "bag i of n"
// counter; FormID feeds the barcode binding the label to the intake record.
type Params struct {
	FirstName    string
	LastName     string
	PickupWindow string
	DateText     string
	Index        int
	Total        int
	FormID       string
}

// Renderer draws one fixed-layout pickup label. It is pure with respect to
// its inputs except for the logo and barcode fetches.
type Renderer struct {
	assets *Fetcher
}

// NewRenderer constructs a Renderer over the given asset Fetcher.
func NewRenderer(assets *Fetcher) *Renderer {
	return &Renderer{assets: assets}
}

// Render produces the label PDF bytes. Asset fetch and document write
// failures come back as errors for the pipeline to record; one failing
// label never aborts the batch.
func (r *Renderer) Render(ctx context.Context, p Params) ([]byte, error) {
	var logoPNG, barcodePNG []byte
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		logoPNG, err = r.assets.Logo(gctx)
		return err
	})
	eg.Go(func() error {
		var err error
		barcodePNG, err = r.assets.Barcode(gctx, p.FormID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("fetch label assets: %w", err)
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.AddPage()

	pngOpts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("logo", pngOpts, bytes.NewReader(logoPNG))
	doc.RegisterImageOptionsReader("barcode", pngOpts, bytes.NewReader(barcodePNG))

	doc.ImageOptions("logo", 25, 25, 95, 95, false, pngOpts, 0, "")

	doc.SetFont("Helvetica", "B", 16)
	doc.Text(140, 40, "Pet Food")
	doc.Text(140, 60, "Pantry Pickup")

	doc.SetFont("Helvetica", "", 7)
	y := float64(110)
	for _, line := range wrapLines(func(s string) float64 { return doc.GetStringWidth(s) }, disclaimer, 120) {
		doc.Text(140, y, line)
		y += 9
	}

	doc.SetFont("Helvetica", "B", 16)
	doc.Text(40, 182, fmt.Sprintf("Name: %s %s", initial(p.FirstName), p.LastName))

	doc.SetFont("Helvetica", "", 12)
	doc.Text(80, 207, fmt.Sprintf("Item/Bag: %d of %d", p.Index, p.Total))
	doc.Text(60, 232, "Date Prepared: "+p.DateText)
	doc.Text(30, 272, "Pickup Window: "+p.PickupWindow)

	doc.ImageOptions("barcode", 20, 347, 250, 60, false, pngOpts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write label pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapLines greedily packs words into lines no wider than width, as reported
// by measure. The measure callback sees the candidate line plus a trailing
// space, matching how the column was originally tuned.
func wrapLines(measure func(string) float64, text string, width float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		candidate := line + word + " "
		if measure(candidate) > width && line != "" {
			lines = append(lines, strings.TrimSpace(line))
			line = word + " "
			continue
		}
		line = candidate
	}
	if strings.TrimSpace(line) != "" {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return string([]rune(name)[0])
}
