package merge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// localMerger concatenates PDFs in-process with pdfcpu. Used when no merge
// service URL is configured. URL-form inputs are fetched first.
type localMerger struct {
	client *http.Client
	conf   *model.Configuration
}

// NewLocal builds an in-process Merger.
func NewLocal(client *http.Client) Merger {
	if client == nil {
		client = http.DefaultClient
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &localMerger{client: client, conf: conf}
}

func (m *localMerger) Merge(ctx context.Context, inputs []Input) ([]byte, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	readers := make([]io.ReadSeeker, 0, len(inputs))
	for _, in := range inputs {
		data := in.Data
		if len(data) == 0 {
			if in.URL == "" {
				return nil, fmt.Errorf("document %q has neither data nor url", in.Name)
			}
			var err error
			data, err = m.fetch(ctx, in.URL)
			if err != nil {
				return nil, fmt.Errorf("fetch %q: %w", in.Name, err)
			}
		}
		readers = append(readers, bytes.NewReader(data))
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, m.conf); err != nil {
		return nil, fmt.Errorf("merge documents: %w", err)
	}
	return buf.Bytes(), nil
}

func (m *localMerger) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
