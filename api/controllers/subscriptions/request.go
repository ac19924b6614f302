package subscriptions

import (
	"time"

	internalsubs "github.com/subtrackhq/subtrack-backend/internal/subscriptions"
	pkgerrors "github.com/subtrackhq/subtrack-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

type upsertRequest struct {
	Name         string `json:"name" validate:"required"`
	Price        string `json:"price" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"required"`
	Status       string `json:"status" validate:"required"`
	UseCase      string `json:"use_case" validate:"required"`
	StartDate    string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

func (req upsertRequest) toInput() (internalsubs.Input, error) {
	in := internalsubs.Input{
		Name:         req.Name,
		Price:        req.Price,
		BillingCycle: req.BillingCycle,
		Status:       req.Status,
		UseCase:      req.UseCase,
	}
	if req.StartDate != "" {
		start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
		if err != nil {
			return internalsubs.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start date").
				WithDetails(map[string]string{"start_date": "must be a date in 2006-01-02 format"})
		}
		in.StartDate = &start
	}
	return in, nil
}
