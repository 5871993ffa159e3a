package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/internal/catalog"
	"github.com/postad/postad-api/internal/models"
	pkgerrors "github.com/postad/postad-api/pkg/errors"
	"github.com/postad/postad-api/pkg/logger"
	"github.com/postad/postad-api/pkg/metrics"
	"github.com/postad/postad-api/pkg/publisher"
	"github.com/postad/postad-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AdFormService runs form sessions: it checks that edits arriving over the
// wire are ones the page could have produced, forwards them to the session's
// form and publishes accepted listings.
type AdFormService struct {
	forms     FormStore
	catalog   CatalogProvider
	publisher publisher.Publisher
	clock     adform.Clock
	newID     func() string
}

// NewAdFormService creates a new ad form service instance
func NewAdFormService(forms FormStore, provider CatalogProvider, pub publisher.Publisher, clock adform.Clock) *AdFormService {
	if clock == nil {
		clock = adform.SystemClock{}
	}
	return &AdFormService{
		forms:     forms,
		catalog:   provider,
		publisher: pub,
		clock:     clock,
		newID:     uuid.NewString,
	}
}

func (s *AdFormService) CreateDraft(ctx context.Context) (*models.DraftResponse, error) {
	_, span := tracing.StartSpan(ctx, "adform.CreateDraft")
	defer span.End()

	id, form := s.forms.Create()
	span.SetAttributes(attribute.String("draft.id", id))
	logger.Debug("Form session created", zap.String("draft_id", id))

	return &models.DraftResponse{ID: id, Snapshot: form.Snapshot()}, nil
}

func (s *AdFormService) GetDraft(ctx context.Context, id string) (*models.DraftResponse, error) {
	form, err := s.form(id)
	if err != nil {
		return nil, err
	}
	return &models.DraftResponse{ID: id, Snapshot: form.Snapshot()}, nil
}

func (s *AdFormService) SetField(ctx context.Context, id, name, value string) (resp *models.DraftResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "adform.SetField",
		attribute.String("draft.id", id),
		attribute.String("draft.field", name))
	defer func() { tracing.EndSpan(span, err) }()

	form, err := s.form(id)
	if err != nil {
		return nil, err
	}

	field, err := adform.ParseField(name)
	if err != nil {
		return nil, pkgerrors.InvalidInputError(name, "Unknown field")
	}

	check, err := s.valueCheck(ctx, field, value)
	if err != nil {
		return nil, err
	}

	if err := form.SetFieldIf(field, value, check); err != nil {
		if errors.Is(err, adform.ErrUnknownField) {
			return nil, fmt.Errorf("set %s: %w", field, err)
		}
		return nil, err
	}
	metrics.FieldEdits.WithLabelValues(string(field)).Inc()

	return &models.DraftResponse{ID: id, Snapshot: form.Snapshot()}, nil
}

// valueCheck rejects values the rendered page never offers. Whether a
// select value is offered depends on its parent selection, so that part is
// returned as a check to run under the form lock. An empty value always
// passes since it clears the field.
func (s *AdFormService) valueCheck(ctx context.Context, field adform.Field, value string) (func(adform.Draft) error, error) {
	switch field {
	case adform.FieldCategory, adform.FieldCountry:
		return nil, pkgerrors.InvalidInputError(string(field), "Field is read-only")
	}

	if limit := field.MaxLength(); limit > 0 && utf8.RuneCountInString(value) > limit {
		return nil, pkgerrors.InvalidInputError(string(field), "Must not exceed "+strconv.Itoa(limit)+" characters")
	}

	if value == "" {
		return nil, nil
	}

	c, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, wrapUnavailable(err)
	}

	return func(d adform.Draft) error {
		return checkOffered(c, d, field, value)
	}, nil
}

func checkOffered(c *catalog.Catalog, d adform.Draft, field adform.Field, value string) error {
	var offered bool
	switch field {
	case adform.FieldBrand:
		offered = c.HasBrand(value)
	case adform.FieldModel:
		offered = c.HasModel(d.Brand, value)
	case adform.FieldVariant:
		offered = c.HasVariant(d.Model, value)
	case adform.FieldRegion:
		offered = c.HasRegion(value)
	case adform.FieldCity:
		offered = c.HasCity(d.Region, value)
	case adform.FieldFuel:
		offered = c.HasOption(catalog.GroupFuel, value)
	case adform.FieldTransmission:
		offered = c.HasOption(catalog.GroupTransmission, value)
	case adform.FieldOwners:
		offered = c.HasOption(catalog.GroupOwners, value)
	default:
		return nil
	}

	if !offered {
		return pkgerrors.InvalidInputError(string(field), "Value is not one of the offered options")
	}
	return nil
}

func (s *AdFormService) UploadImage(ctx context.Context, id string, index int, open adform.OpenFunc) error {
	form, err := s.form(id)
	if err != nil {
		return err
	}

	if err := form.UploadImage(ctx, index, open); err != nil {
		if errors.Is(err, adform.ErrSlotOutOfRange) {
			return pkgerrors.InvalidInputError(string(adform.FieldImages),
				fmt.Sprintf("Slot must be between 0 and %d", adform.MaxImages-1))
		}
		return err
	}
	return nil
}

func (s *AdFormService) UploadProfileImage(ctx context.Context, id string, open adform.OpenFunc) error {
	form, err := s.form(id)
	if err != nil {
		return err
	}

	form.UploadProfileImage(ctx, open)
	return nil
}

// WaitUploads blocks until the session's uploads have landed or ctx is done
func (s *AdFormService) WaitUploads(ctx context.Context, id string) error {
	form, err := s.form(id)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		form.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AdFormService) SelectLocationTab(ctx context.Context, id, tab string) (*models.DraftResponse, error) {
	form, err := s.form(id)
	if err != nil {
		return nil, err
	}

	parsed, err := adform.ParseLocationTab(tab)
	if err != nil {
		return nil, pkgerrors.InvalidInputError("locationTab", "Must be list or current")
	}
	if err := form.SelectLocationTab(parsed); err != nil {
		return nil, err
	}

	return &models.DraftResponse{ID: id, Snapshot: form.Snapshot()}, nil
}

// Submit validates the draft. An accepted draft becomes a listing that is
// handed to the publisher; delivery problems are logged, not returned.
func (s *AdFormService) Submit(ctx context.Context, id string) (resp *models.SubmitResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "adform.Submit", attribute.String("draft.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	form, err := s.form(id)
	if err != nil {
		return nil, err
	}

	result := form.Submit()
	if !result.Accepted {
		metrics.Submissions.WithLabelValues("rejected").Inc()
		for field := range result.Errors {
			metrics.ValidationErrors.WithLabelValues(string(field)).Inc()
		}
		span.SetAttributes(attribute.Int("draft.errors", len(result.Errors)))
		logger.Debug("Submit rejected",
			zap.String("draft_id", id),
			zap.Int("errors", len(result.Errors)))
		return &models.SubmitResponse{Success: false, Errors: result.Errors}, nil
	}

	metrics.Submissions.WithLabelValues("accepted").Inc()
	listing := models.NewListing(s.newID(), id, result.Draft, s.clock.Now())
	span.SetAttributes(attribute.String("listing.id", listing.ID))

	if pubErr := s.publisher.Publish(ctx, publisher.Message{ID: listing.ID, Payload: listing}); pubErr != nil {
		logger.Error("Failed to publish listing",
			zap.String("draft_id", id),
			zap.String("listing_id", listing.ID),
			zap.Error(pubErr))
	}

	logger.Info("Listing submitted",
		zap.String("draft_id", id),
		zap.String("listing_id", listing.ID),
		zap.Int("images", len(listing.Images)))

	return &models.SubmitResponse{Success: true, Listing: listing}, nil
}

func (s *AdFormService) form(id string) (*adform.Form, error) {
	form, ok := s.forms.Get(id)
	if !ok {
		return nil, pkgerrors.NotFoundError("draft")
	}
	return form, nil
}

func wrapUnavailable(err error) error {
	return fmt.Errorf("catalog: %w: %w", pkgerrors.ErrUnavailable, err)
}
