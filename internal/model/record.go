package model

// IntakeRecord is one client's pantry request as normalized from the record
// store. This is a pure domain model with no store-specific dependencies or
// tags beyond JSON names; it can be used across layers without coupling to
// the sheet layout.
type IntakeRecord struct {
	FormID             string   `json:"formId"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	PickupWindow       string   `json:"pickupWindow"`
	DateRequested      string   `json:"dateRequested"`
	AdditionalServices []string `json:"additionalServices"`
	FleaRequested      bool     `json:"fleaRequested"`
	CountPuppies       int      `json:"countPuppies"`
	CountKittens       int      `json:"countKittens"`
	Alerts             []string `json:"alerts"`
}

// LabelRequest is the ephemeral input for one fulfillment run. It is never
// persisted; it exists only for the duration of one pipeline call.
type LabelRequest struct {
	FormID       string `json:"formId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PickupWindow string `json:"pickupWindow"`
	Count        int    `json:"count"`
	FleaProvided bool   `json:"fleaProvided"`
}

// MergedDocument references the single combined artifact produced by a
// successful run.
type MergedDocument struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// GenerateResult is the outcome of one fulfillment run. Count is the number
// of labels that actually made it into the merged document, so a partial
// success is distinguishable from a total one.
type GenerateResult struct {
	Count         int            `json:"count"`
	Merged        MergedDocument `json:"merged"`
	RecordUpdated bool           `json:"recordUpdated"`
}

// UpdateRequest writes fulfillment metadata back onto an intake record.
type UpdateRequest struct {
	FormID       string `json:"formId"`
	PDFID        string `json:"pdfId"`
	PDFURL       string `json:"pdfUrl"`
	FleaProvided bool   `json:"fleaProvided"`
}

// UpdateResult reports which sheet row was touched and how many columns
// were written.
type UpdateResult struct {
	UpdatedRow int `json:"updatedRow"`
	Columns    int `json:"columns"`
}
