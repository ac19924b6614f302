package subscriptions

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrackhq/subtrack-backend/pkg/enums"
	pkgerrors "github.com/subtrackhq/subtrack-backend/pkg/errors"
	"github.com/subtrackhq/subtrack-backend/pkg/notion"
)

// FormState tracks where a form is in its submit lifecycle.
type FormState string

const (
	FormEditing    FormState = "editing"
	FormValidating FormState = "validating"
	FormSubmitting FormState = "submitting"
	FormSuccess    FormState = "success"
	FormFailed     FormState = "failed"
)

// ErrSubmitInFlight rejects a re-submit while one is outstanding. The
// caller disables its submit trigger; nothing is queued.
var ErrSubmitInFlight = pkgerrors.New(pkgerrors.CodeValidation, "a submit is already in progress")

// Form drives one create or edit flow: Editing -> Validating ->
// Submitting -> Success or Failed. Validation runs synchronously before
// any network call; a failed submit keeps the entered values.
type Form struct {
	mu          sync.Mutex
	state       FormState
	values      Input
	pageID      string
	fieldErrors map[string]string
	store       Store
}

// NewForm builds a create form with the same defaults the add screen
// starts from: monthly billing, trial status, work use case, and a start
// date two weeks out.
func NewForm(store Store) *Form {
	start := DefaultStartDate(time.Now())
	return &Form{
		state: FormEditing,
		store: store,
		values: Input{
			BillingCycle: enums.BillingCycleMonthly.String(),
			Status:       enums.StatusTrial.String(),
			UseCase:      enums.UseCaseWork.String(),
			StartDate:    &start,
		},
	}
}

// NewEditForm builds a form pre-populated from a decoded record. Submit
// patches the existing page instead of creating a new one.
func NewEditForm(store Store, sub Subscription) *Form {
	values := Input{
		Name:         sub.Name,
		BillingCycle: sub.BillingCycle.String(),
		Status:       sub.Status.String(),
		UseCase:      sub.UseCase.String(),
		StartDate:    sub.StartDate,
	}
	if !sub.Price.IsZero() {
		values.Price = sub.Price.StringFixed(2)
	}
	return &Form{
		state:  FormEditing,
		store:  store,
		pageID: sub.ID,
		values: values,
	}
}

// State returns the current form state.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Values returns the current field values.
func (f *Form) Values() Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// FieldErrors returns the per-field annotations from the last failed
// validation pass.
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// SetValues replaces the field values. Rejected while a submit is
// outstanding; allowed after a failure so the user can correct and retry.
func (f *Form) SetValues(in Input) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting || f.state == FormValidating {
		return ErrSubmitInFlight
	}
	f.values = in
	f.state = FormEditing
	return nil
}

// Submit validates and, when every field passes, encodes the record and
// sends it to the remote store. Validation failures return to Editing
// with field annotations and no request is issued. A remote failure moves
// to Failed with the values retained; the error message carries the
// remote response body.
func (f *Form) Submit(ctx context.Context) (Subscription, error) {
	f.mu.Lock()
	if f.state == FormSubmitting || f.state == FormValidating {
		f.mu.Unlock()
		return Subscription{}, ErrSubmitInFlight
	}

	f.state = FormValidating
	if errs := ValidateInput(f.values); len(errs) > 0 {
		f.fieldErrors = errs
		f.state = FormEditing
		f.mu.Unlock()
		return Subscription{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(errs)
	}
	f.fieldErrors = nil

	sub, err := f.toSubscription()
	if err != nil {
		f.state = FormEditing
		f.mu.Unlock()
		return Subscription{}, err
	}

	f.state = FormSubmitting
	pageID := f.pageID
	f.mu.Unlock()

	var page *notion.Page
	props := EncodeProperties(sub)
	if pageID == "" {
		page, err = f.store.CreatePage(ctx, props)
	} else {
		page, err = f.store.UpdatePage(ctx, pageID, props)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = FormFailed
		return Subscription{}, err
	}

	f.state = FormSuccess
	result := sub
	if pageID == "" {
		result.ID = page.ID
	} else {
		// Edit flows hand back the patched in-memory record; the page is
		// not re-fetched.
		result.ID = pageID
	}
	return result, nil
}

// toSubscription converts validated raw values into the canonical record.
func (f *Form) toSubscription() (Subscription, error) {
	price, err := decimal.NewFromString(f.values.Price)
	if err != nil {
		return Subscription{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{FieldPrice: "Price must be a positive number"})
	}
	return Subscription{
		ID:           f.pageID,
		Name:         f.values.Name,
		Price:        price,
		BillingCycle: enums.BillingCycle(f.values.BillingCycle),
		Status:       enums.Status(f.values.Status),
		UseCase:      enums.UseCase(f.values.UseCase),
		StartDate:    f.values.StartDate,
	}, nil
}
