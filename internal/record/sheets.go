package record

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"pantryapi/internal/config"
)

// sheetsStore implements Store against a Google Sheets tab addressed by
// spreadsheet ID plus numeric gid. The tab title is resolved per call so a
// renamed tab keeps working between requests.
type sheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	gid           int64
}

// NewSheetsStore creates a Store backed by the Google Sheets API.
func NewSheetsStore(ctx context.Context, cfg config.GoogleConfig) (Store, error) {
	if cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("google service account credentials are required")
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	return &sheetsStore{svc: svc, spreadsheetID: cfg.SpreadsheetID, gid: int64(cfg.SheetGID)}, nil
}

func (s *sheetsStore) ReadGrid(ctx context.Context) (*Grid, error) {
	title, err := s.tabTitle(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, title).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	grid := &Grid{Title: title}
	if len(resp.Values) == 0 {
		return grid, nil
	}

	for _, h := range resp.Values[0] {
		grid.Headers = append(grid.Headers, cellString(h))
	}
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = cellString(v)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

func (s *sheetsStore) BatchUpdate(ctx context.Context, updates []CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, &sheets.ValueRange{
			Range:  u.Range,
			Values: [][]interface{}{{u.Value}},
		})
	}
	_, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update: %w", err)
	}
	return nil
}

// tabTitle resolves the tab title for the configured gid.
func (s *sheetsStore) tabTitle(ctx context.Context) (string, error) {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.SheetId == s.gid {
			return sh.Properties.Title, nil
		}
	}
	return "", fmt.Errorf("no sheet tab found for gid %d", s.gid)
}

// cellString renders a sheet cell as a trimmed string. UNFORMATTED_VALUE
// returns numeric cells as float64; 12-digit form ids must not pick up an
// exponent on the way through.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
