package subscriptions

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrackhq/subtrack-backend/pkg/enums"
)

// Field keys used for per-field error annotations.
const (
	FieldName         = "name"
	FieldPrice        = "price"
	FieldStartDate    = "start_date"
	FieldBillingCycle = "billing_cycle"
	FieldStatus       = "status"
	FieldUseCase      = "use_case"
)

// ValidateInput runs every field validator and returns the failures keyed
// by field. An empty map means the input is ready to encode. Validators
// are pure and run synchronously before any network access.
func ValidateInput(in Input) map[string]string {
	errs := map[string]string{}

	if msg := validateName(in.Name); msg != "" {
		errs[FieldName] = msg
	}
	if msg := validatePrice(in.Price); msg != "" {
		errs[FieldPrice] = msg
	}
	if msg := validateStartDate(in.StartDate); msg != "" {
		errs[FieldStartDate] = msg
	}
	if msg := validateSelection(in.BillingCycle); msg != "" {
		errs[FieldBillingCycle] = msg
	} else if !enums.BillingCycle(in.BillingCycle).IsValid() {
		errs[FieldBillingCycle] = "Billing cycle must be Monthly or Annually"
	}
	if msg := validateSelection(in.Status); msg != "" {
		errs[FieldStatus] = "Please select a status."
	} else if !enums.Status(in.Status).IsValid() {
		errs[FieldStatus] = "Status must be Active, Trial, or Inactive"
	}
	if msg := validateSelection(in.UseCase); msg != "" {
		errs[FieldUseCase] = msg
	} else if !enums.UseCase(in.UseCase).IsValid() {
		errs[FieldUseCase] = "Use case must be Work or Personal"
	}

	return errs
}

func validateName(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Name is required"
	}
	return ""
}

func validatePrice(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "Price is required"
	}
	num, err := decimal.NewFromString(trimmed)
	if err != nil || !num.IsPositive() {
		return "Price must be a positive number"
	}
	return ""
}

func validateStartDate(value *time.Time) string {
	if value == nil {
		return "Start date is required"
	}
	return ""
}

func validateSelection(value string) string {
	if strings.TrimSpace(value) == "" {
		return "A selection is required"
	}
	return ""
}
