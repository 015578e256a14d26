package merge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// remoteMerger talks to the external merge service: a POST of base64 payloads
// and/or fetchable URLs, answered with the combined PDF bytes.
type remoteMerger struct {
	client     *http.Client
	serviceURL string
}

// NewRemote builds a Merger backed by the merge service at serviceURL.
func NewRemote(serviceURL string, client *http.Client) Merger {
	if client == nil {
		client = http.DefaultClient
	}
	return &remoteMerger{client: client, serviceURL: serviceURL}
}

type wireFile struct {
	Name string `json:"name"`
	Data string `json:"data,omitempty"`
	URL  string `json:"url,omitempty"`
}

type wireRequest struct {
	Files []wireFile `json:"files"`
}

func (m *remoteMerger) Merge(ctx context.Context, inputs []Input) ([]byte, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	files := make([]wireFile, 0, len(inputs))
	for _, in := range inputs {
		wf := wireFile{Name: in.Name}
		switch {
		case len(in.Data) > 0:
			wf.Data = base64.StdEncoding.EncodeToString(in.Data)
		case in.URL != "":
			wf.URL = in.URL
		default:
			return nil, fmt.Errorf("document %q has neither data nor url", in.Name)
		}
		files = append(files, wf)
	}

	body, err := json.Marshal(wireRequest{Files: files})
	if err != nil {
		return nil, fmt.Errorf("encode merge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.serviceURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build merge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call merge service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("merge service returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	merged, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read merged document: %w", err)
	}
	if len(merged) == 0 {
		return nil, fmt.Errorf("merge service returned an empty document")
	}
	return merged, nil
}
