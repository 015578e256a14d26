package record

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pantryapi/internal/fault"
	"pantryapi/internal/model"
)

// PuppyKittenAlert is surfaced on every record with puppies or kittens.
const PuppyKittenAlert = "PUPPY/KITTEN ALERT! Did you check for Puppy/Kitten food?"

var formIDPattern = regexp.MustCompile(`^\d{12}$`)

// ValidFormID reports whether s is a well-formed 12-digit business key.
func ValidFormID(s string) bool {
	return formIDPattern.MatchString(s)
}

// Resolver turns the raw record-store grid into normalized IntakeRecord
// values and writes fulfillment metadata back. All other columns besides
// FormID are optional; historical header aliases are accepted.
type Resolver struct {
	store Store
}

// NewResolver constructs a Resolver over the given Store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// FulfillmentUpdate holds the derived fields written back after a run.
type FulfillmentUpdate struct {
	PDFID        string
	PDFURL       string
	GeneratedAt  time.Time
	FleaProvided bool
}

// Lookup returns the normalized record for a 12-digit form ID, or
// fault.ErrNotFound when no row matches exactly.
func (r *Resolver) Lookup(ctx context.Context, formID string) (*model.IntakeRecord, error) {
	if !ValidFormID(formID) {
		return nil, fault.Validation("formId", "must be a 12-digit Form ID")
	}

	grid, err := r.store.ReadGrid(ctx)
	if err != nil {
		return nil, fault.Upstream("read record store", err)
	}
	if len(grid.Rows) == 0 {
		return nil, fault.ErrNotFound
	}

	schema := BuildSchema(grid.Headers)
	keyCol, ok := schema.Col("FormID")
	if !ok {
		return nil, &fault.SchemaError{Missing: "FormID", Headers: grid.Headers}
	}

	row := findRow(grid.Rows, keyCol, formID)
	if row == nil {
		return nil, fault.ErrNotFound
	}

	colFirst, _ := schema.Col("First Name")
	colLast, _ := schema.Col("Last Name")
	colTimestamp, _ := schema.Col("Timestamp")
	colPickup, _ := schema.Col("Pickup Window", "Pick-up Window", "Preferred Pickup Window")
	colServices, _ := schema.Col("Additional Services")
	colPups, _ := schema.Col("CountPuppies")
	colKits, _ := schema.Col("CountKittens")

	services := splitServices(field(row, colServices))
	puppies := parseCount(field(row, colPups))
	kittens := parseCount(field(row, colKits))

	rec := &model.IntakeRecord{
		FormID:             field(row, keyCol),
		FirstName:          field(row, colFirst),
		LastName:           field(row, colLast),
		PickupWindow:       field(row, colPickup),
		DateRequested:      parseDateRequested(field(row, colTimestamp)),
		AdditionalServices: services,
		FleaRequested:      anyFlea(services),
		CountPuppies:       puppies,
		CountKittens:       kittens,
	}
	if puppies+kittens > 0 {
		rec.Alerts = []string{PuppyKittenAlert}
	} else {
		rec.Alerts = []string{}
	}
	return rec, nil
}

// ApplyFulfillment writes the generated-document fields onto the row keyed by
// formID. Only columns that actually exist in the current layout are written;
// having none of them is an error.
func (r *Resolver) ApplyFulfillment(ctx context.Context, formID string, upd FulfillmentUpdate) (*model.UpdateResult, error) {
	if !ValidFormID(formID) {
		return nil, fault.Validation("formId", "must be a 12-digit Form ID")
	}
	if upd.PDFID == "" && upd.PDFURL == "" {
		return nil, fault.Validation("pdfId", "missing PDF data")
	}

	grid, err := r.store.ReadGrid(ctx)
	if err != nil {
		return nil, fault.Upstream("read record store", err)
	}

	schema := BuildSchema(grid.Headers)
	keyCol, ok := schema.Col("FormID")
	if !ok {
		return nil, &fault.SchemaError{Missing: "FormID", Headers: grid.Headers}
	}

	rowIdx := -1
	for i, row := range grid.Rows {
		if field(row, keyCol) == formID {
			rowIdx = i
			break
		}
	}
	if rowIdx == -1 {
		return nil, fault.ErrNotFound
	}
	// Header row plus 1-based sheet addressing.
	targetRow := rowIdx + 2

	var updates []CellUpdate
	addCell := func(col int, ok bool, value any) {
		if ok {
			updates = append(updates, CellUpdate{
				Range: fmt.Sprintf("%s!%s%d", grid.Title, ColumnLetter(col), targetRow),
				Value: value,
			})
		}
	}

	colPDFID, ok1 := schema.Col("Generated PDF Id")
	colPDFURL, ok2 := schema.Col("Generated PDF URL")
	colGenAt, ok3 := schema.Col("Generated At")
	colFlea, ok4 := schema.Col("Flea Medication Provided")

	addCell(colPDFID, ok1, upd.PDFID)
	addCell(colPDFURL, ok2, upd.PDFURL)
	addCell(colGenAt, ok3, upd.GeneratedAt.UTC().Format(time.RFC3339))
	addCell(colFlea, ok4, boolCell(upd.FleaProvided))

	if len(updates) == 0 {
		return nil, fault.Validation("columns", "no matching columns found to update")
	}

	if err := r.store.BatchUpdate(ctx, updates); err != nil {
		return nil, fault.Upstream("update record store", err)
	}
	return &model.UpdateResult{UpdatedRow: targetRow, Columns: len(updates)}, nil
}

func findRow(rows [][]string, keyCol int, formID string) []string {
	for _, row := range rows {
		if field(row, keyCol) == formID {
			return row
		}
	}
	return nil
}

// field reads a cell defensively: absent optional columns and ragged rows
// both yield "".
func field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func splitServices(csv string) []string {
	out := []string{}
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func anyFlea(services []string) bool {
	for _, s := range services {
		if strings.Contains(strings.ToLower(s), "flea") {
			return true
		}
	}
	return false
}

func parseCount(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

// parseDateRequested turns the raw submission timestamp into a best-effort
// YYYY-MM-DD string. It never fails: unparseable text degrades to whatever
// precedes the first space.
func parseDateRequested(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if i := strings.IndexByte(raw, ' '); i > 0 {
		return raw[:i]
	}
	return raw
}

func boolCell(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
