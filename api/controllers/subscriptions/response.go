package subscriptions

import (
	internalsubs "github.com/subtrackhq/subtrack-backend/internal/subscriptions"
)

type subscriptionResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price,omitempty"`
	PriceDisplay string `json:"price_display,omitempty"`
	BillingCycle string `json:"billing_cycle,omitempty"`
	Status       string `json:"status,omitempty"`
	StatusLabel  string `json:"status_label,omitempty"`
	UseCase      string `json:"use_case,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
}

func toResponse(sub internalsubs.Subscription) subscriptionResponse {
	resp := subscriptionResponse{
		ID:           sub.ID,
		Name:         sub.Name,
		PriceDisplay: sub.PriceDisplay(),
		BillingCycle: sub.BillingCycle.String(),
		Status:       sub.Status.String(),
		UseCase:      sub.UseCase.String(),
		StartDate:    sub.StartDateString(),
	}
	if !sub.Price.IsZero() {
		resp.Price = sub.Price.StringFixed(2)
	}
	if sub.Status != "" {
		resp.StatusLabel = sub.Status.DisplayLabel()
	}
	return resp
}

func toResponseList(subs []internalsubs.Subscription) []subscriptionResponse {
	out := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toResponse(sub))
	}
	return out
}
