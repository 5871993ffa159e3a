// Package adform implements the state and validation core of the ad
// posting form: field edits with cascading resets, image slots,
// submit-time validation and the self-dismissing success notification.
package adform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/postad/postad-api/pkg/logger"
	"go.uber.org/zap"
)

// DefaultNotificationInterval is how long the success notification stays visible
const DefaultNotificationInterval = 3 * time.Second

// ProfileSlot is the slot number reported to OnUpload for the profile image
const ProfileSlot = -1

// LocationTab is the active tab of the location section
type LocationTab string

const (
	TabList    LocationTab = "list"
	TabCurrent LocationTab = "current"
)

// ParseLocationTab accepts "list" and "current"
func ParseLocationTab(s string) (LocationTab, error) {
	switch LocationTab(s) {
	case TabList, TabCurrent:
		return LocationTab(s), nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidTab)
	}
}

// State is the resting position of the form in the submission cycle.
// Validation itself happens inside Submit under the form lock, so a
// rejected submit lands back in StateEditing and an accepted one in
// StateNotificationShowing until the dismissal timer fires.
type State string

const (
	StateEditing             State = "editing"
	StateNotificationShowing State = "notification_showing"
)

// Config wires the collaborators of a form. Zero values get defaults.
type Config struct {
	Clock                Clock
	Encoder              ImageEncoder
	Validator            *Validator
	NotificationInterval time.Duration

	// OnUpload, when set, is called after every finished upload with the
	// slot (ProfileSlot for the profile image) and the encoding error, if any.
	OnUpload func(slot int, err error)
}

// Snapshot is a consistent copy of the form for rendering
type Snapshot struct {
	Draft               Draft       `json:"draft"`
	Errors              Errors      `json:"errors"`
	LocationTab         LocationTab `json:"locationTab"`
	NotificationVisible bool        `json:"notificationVisible"`
	State               State       `json:"state"`
}

// SubmitResult is the outcome of Submit. Draft is the completed record
// when Accepted is true.
type SubmitResult struct {
	Accepted bool
	Errors   Errors
	Draft    Draft
}

// Form owns one draft and its validation state. It is safe for concurrent
// use; all methods except Wait return without blocking on I/O.
type Form struct {
	mu                  sync.Mutex
	draft               Draft
	errors              Errors
	tab                 LocationTab
	notificationVisible bool
	state               State
	generation          uint64

	clock     Clock
	encoder   ImageEncoder
	validator *Validator
	interval  time.Duration
	onUpload  func(slot int, err error)

	uploads sync.WaitGroup
}

// New creates a form holding a default draft
func New(cfg Config) *Form {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Encoder == nil {
		cfg.Encoder = NewDataURIEncoder(DefaultMaxImageBytes)
	}
	if cfg.Validator == nil {
		cfg.Validator = NewValidator(cfg.Clock)
	}
	if cfg.NotificationInterval <= 0 {
		cfg.NotificationInterval = DefaultNotificationInterval
	}

	return &Form{
		draft:     NewDraft(),
		errors:    Errors{},
		tab:       TabCurrent,
		state:     StateEditing,
		clock:     cfg.Clock,
		encoder:   cfg.Encoder,
		validator: cfg.Validator,
		interval:  cfg.NotificationInterval,
		onUpload:  cfg.OnUpload,
	}
}

// SetField replaces a scalar field. A new brand clears model and variant,
// a new model clears variant. Any error recorded for the field is removed.
// Values are not checked here; that waits for Submit.
func (f *Form) SetField(field Field, value string) error {
	return f.SetFieldIf(field, value, nil)
}

// SetFieldIf is SetField behind check, which sees the draft under the
// lock the write takes, so a concurrent brand or region change cannot land
// between the two. A check error is returned as is and changes nothing.
// check must not call back into the form.
func (f *Form) SetFieldIf(field Field, value string, check func(Draft) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if check != nil {
		if err := check(f.draft); err != nil {
			return err
		}
	}

	if !f.draft.set(field, value) {
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}

	switch field {
	case FieldBrand:
		f.draft.Model = ""
		f.draft.Variant = ""
	case FieldModel:
		f.draft.Variant = ""
	}

	delete(f.errors, field)
	return nil
}

// SetImage replaces one image slot and nothing else
func (f *Form) SetImage(index int, encoded string) error {
	if index < 0 || index >= MaxImages {
		return fmt.Errorf("slot %d: %w", index, ErrSlotOutOfRange)
	}

	f.mu.Lock()
	f.draft.Images[index] = encoded
	f.mu.Unlock()
	return nil
}

// SetProfileImage replaces the profile image
func (f *Form) SetProfileImage(encoded string) {
	f.mu.Lock()
	f.draft.ProfileImage = encoded
	f.mu.Unlock()
}

// UploadImage encodes the selected file in the background and stores it in
// slot index once done. The slot keeps its previous value until then, and
// keeps it for good when nothing was selected or the file cannot be read.
func (f *Form) UploadImage(ctx context.Context, index int, open OpenFunc) error {
	if index < 0 || index >= MaxImages {
		return fmt.Errorf("slot %d: %w", index, ErrSlotOutOfRange)
	}
	if open == nil {
		return nil
	}

	f.encodeAsync(ctx, index, open, func(encoded string) {
		_ = f.SetImage(index, encoded) //nolint:errcheck // index checked above
	})
	return nil
}

// UploadProfileImage is UploadImage for the profile image
func (f *Form) UploadProfileImage(ctx context.Context, open OpenFunc) {
	if open == nil {
		return
	}
	f.encodeAsync(ctx, ProfileSlot, open, f.SetProfileImage)
}

func (f *Form) encodeAsync(ctx context.Context, slot int, open OpenFunc, apply func(string)) {
	// Reads are never cancelled, but trace values should follow the work.
	ctx = context.WithoutCancel(ctx)

	f.uploads.Add(1)
	go func() {
		defer f.uploads.Done()

		encoded, err := f.encoder.Encode(ctx, open)
		if err != nil {
			logger.Debug("Image upload ignored",
				zap.Int("slot", slot),
				zap.Error(err))
		} else {
			apply(encoded)
		}

		if f.onUpload != nil {
			f.onUpload(slot, err)
		}
	}()
}

// Wait blocks until every upload started so far has been applied or dropped
func (f *Form) Wait() {
	f.uploads.Wait()
}

// SelectLocationTab switches the location section tab
func (f *Form) SelectLocationTab(tab LocationTab) error {
	if _, err := ParseLocationTab(string(tab)); err != nil {
		return err
	}

	f.mu.Lock()
	f.tab = tab
	f.mu.Unlock()
	return nil
}

// Validate checks the current draft without touching the form state
func (f *Form) Validate() Errors {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	return f.validator.Validate(draft)
}

// Submit validates the draft and installs the result as the current
// errors. On success it shows the notification and schedules its
// dismissal; the draft itself is left as it is.
func (f *Form) Submit() SubmitResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := f.validator.Validate(f.draft)
	f.errors = errs

	if len(errs) > 0 {
		// A notification from an earlier success keeps its own timer.
		return SubmitResult{Accepted: false, Errors: errs.Clone()}
	}

	f.showNotificationLocked()

	return SubmitResult{Accepted: true, Errors: Errors{}, Draft: f.draft}
}

func (f *Form) showNotificationLocked() {
	f.generation++
	gen := f.generation

	f.notificationVisible = true
	f.state = StateNotificationShowing

	f.clock.AfterFunc(f.interval, func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		// A later submit re-armed the notification; leave it to its own timer.
		if f.generation != gen {
			return
		}
		f.notificationVisible = false
		f.state = StateEditing
	})
}

// Snapshot returns a copy of the whole form state
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		Draft:               f.draft,
		Errors:              f.errors.Clone(),
		LocationTab:         f.tab,
		NotificationVisible: f.notificationVisible,
		State:               f.state,
	}
}

// NotificationVisible reports whether the success notification is showing
func (f *Form) NotificationVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notificationVisible
}

// State returns the current submission state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
