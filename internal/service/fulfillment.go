package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"pantryapi/internal/fault"
	"pantryapi/internal/label"
	"pantryapi/internal/merge"
	"pantryapi/internal/model"
	"pantryapi/internal/record"
	"pantryapi/internal/storage"
)

const (
	minLabelCount = 1
	maxLabelCount = 5
)

// Resolver is the record-store surface the service needs.
type Resolver interface {
	Lookup(ctx context.Context, formID string) (*model.IntakeRecord, error)
	ApplyFulfillment(ctx context.Context, formID string, upd record.FulfillmentUpdate) (*model.UpdateResult, error)
}

// Renderer draws one label document.
type Renderer interface {
	Render(ctx context.Context, p label.Params) ([]byte, error)
}

// Folders names the archive locations for intermediate and merged documents.
type Folders struct {
	Labels string
	Merged string
}

// FulfillmentService defines the use cases for pantry order fulfillment.
type FulfillmentService interface {
	// Lookup returns the normalized intake record for a scanned form ID.
	Lookup(ctx context.Context, formID string) (*model.IntakeRecord, error)

	// GenerateLabels runs the pipeline: render N labels, archive each, merge,
	// archive the merged document, and write fulfillment metadata back onto
	// the intake record.
	GenerateLabels(ctx context.Context, req model.LabelRequest) (*model.GenerateResult, error)

	// UpdateAfterGenerate writes generated-document metadata onto the record
	// without running the pipeline.
	UpdateAfterGenerate(ctx context.Context, req model.UpdateRequest) (*model.UpdateResult, error)
}

type fulfillmentService struct {
	resolver Resolver
	renderer Renderer
	archive  storage.Archive
	merger   merge.Merger
	folders  Folders
	log      *slog.Logger
	now      func() time.Time
	tracer   trace.Tracer
}

// NewFulfillment constructs the FulfillmentService.
func NewFulfillment(resolver Resolver, renderer Renderer, archive storage.Archive, merger merge.Merger, folders Folders, log *slog.Logger) FulfillmentService {
	if log == nil {
		log = slog.Default()
	}
	return &fulfillmentService{
		resolver: resolver,
		renderer: renderer,
		archive:  archive,
		merger:   merger,
		folders:  folders,
		log:      log,
		now:      time.Now,
		tracer:   otel.Tracer("pantryapi/internal/service"),
	}
}

func (s *fulfillmentService) Lookup(ctx context.Context, formID string) (*model.IntakeRecord, error) {
	return s.resolver.Lookup(ctx, formID)
}

func (s *fulfillmentService) UpdateAfterGenerate(ctx context.Context, req model.UpdateRequest) (*model.UpdateResult, error) {
	return s.resolver.ApplyFulfillment(ctx, req.FormID, record.FulfillmentUpdate{
		PDFID:        req.PDFID,
		PDFURL:       req.PDFURL,
		GeneratedAt:  s.now(),
		FleaProvided: req.FleaProvided,
	})
}

// labelResult is one slot of the render fan-out, kept by submission index so
// the merged document preserves bag order regardless of completion order.
type labelResult struct {
	obj storage.Object
	err error
}

func (s *fulfillmentService) GenerateLabels(ctx context.Context, req model.LabelRequest) (*model.GenerateResult, error) {
	if !record.ValidFormID(req.FormID) {
		return nil, fault.Validation("formId", "must be a 12-digit Form ID")
	}
	if req.Count < minLabelCount || req.Count > maxLabelCount {
		return nil, fault.Validation("count", fmt.Sprintf("label count must be between %d and %d", minLabelCount, maxLabelCount))
	}

	ctx, span := s.tracer.Start(ctx, "fulfillment.generate", trace.WithAttributes(
		attribute.String("form_id", req.FormID),
		attribute.Int("labels.requested", req.Count),
	))
	defer span.End()

	now := s.now()
	dateText := now.Format("1/2/2006")
	lastName := req.LastName
	if lastName == "" {
		lastName = "Last"
	}

	// Render and archive each label; failures are recorded per slot and do
	// not abort the batch.
	results := make([]labelResult, req.Count)
	eg, gctx := errgroup.WithContext(ctx)
	for i := 1; i <= req.Count; i++ {
		idx := i
		eg.Go(func() error {
			obj, err := s.generateLabel(gctx, req, lastName, dateText, idx)
			if err != nil {
				s.log.Warn("label generation failed", "form_id", req.FormID, "index", idx, "error", err)
			}
			results[idx-1] = labelResult{obj: obj, err: err}
			return nil
		})
	}
	// Errors are captured in the result slots; Wait only synchronizes.
	_ = eg.Wait()

	var labels []storage.Object
	for _, res := range results {
		if res.err == nil {
			labels = append(labels, res.obj)
		}
	}
	if len(labels) == 0 {
		return nil, fault.ErrNoLabels
	}
	span.SetAttributes(attribute.Int("labels.generated", len(labels)))

	// Download the archived labels in submission order and merge them.
	// Per-label documents are deliberately left in place when the merge
	// fails; operators reconcile those out of band.
	inputs := make([]merge.Input, 0, len(labels))
	for _, obj := range labels {
		data, err := s.download(ctx, obj.ID)
		if err != nil {
			return nil, fault.Upstream("download label document", err)
		}
		inputs = append(inputs, merge.Input{Name: obj.ID + ".pdf", Data: data})
	}

	mergedBytes, err := s.merger.Merge(ctx, inputs)
	if err != nil {
		return nil, fault.Upstream("merge labels", err)
	}

	mergedName := fmt.Sprintf("BagLabels_%s_%s_%d.pdf", lastName, req.FormID, now.UnixMilli())
	mergedObj, err := s.archive.Create(ctx, s.folders.Merged, mergedName, "application/pdf",
		bytes.NewReader(mergedBytes), int64(len(mergedBytes)))
	if err != nil {
		return nil, fault.Upstream("archive merged document", err)
	}

	// Best-effort cleanup of the per-label intermediates.
	for _, obj := range labels {
		if err := s.archive.Delete(ctx, obj.ID); err != nil {
			s.log.Warn("could not delete intermediate label", "id", obj.ID, "error", err)
		}
	}

	// Record bookkeeping must not discard the merged artifact: a failure
	// here degrades to recordUpdated=false.
	recordUpdated := true
	if _, err := s.resolver.ApplyFulfillment(ctx, req.FormID, record.FulfillmentUpdate{
		PDFID:        mergedObj.ID,
		PDFURL:       mergedObj.URL,
		GeneratedAt:  now,
		FleaProvided: req.FleaProvided,
	}); err != nil {
		s.log.Error("record update failed after merge", "form_id", req.FormID, "error", err)
		recordUpdated = false
	}

	return &model.GenerateResult{
		Count:         len(labels),
		Merged:        model.MergedDocument{ID: mergedObj.ID, URL: mergedObj.URL},
		RecordUpdated: recordUpdated,
	}, nil
}

func (s *fulfillmentService) generateLabel(ctx context.Context, req model.LabelRequest, lastName, dateText string, idx int) (storage.Object, error) {
	data, err := s.renderer.Render(ctx, label.Params{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PickupWindow: req.PickupWindow,
		DateText:     dateText,
		Index:        idx,
		Total:        req.Count,
		FormID:       req.FormID,
	})
	if err != nil {
		return storage.Object{}, fmt.Errorf("render: %w", err)
	}

	name := fmt.Sprintf("BagLabel_%s_%s_%dof%d.pdf", lastName, req.FormID, idx, req.Count)
	obj, err := s.archive.Create(ctx, s.folders.Labels, name, "application/pdf",
		bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return storage.Object{}, fmt.Errorf("archive: %w", err)
	}
	return obj, nil
}

func (s *fulfillmentService) download(ctx context.Context, id string) ([]byte, error) {
	rc, err := s.archive.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
