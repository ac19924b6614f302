package subscriptions

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrackhq/subtrack-backend/pkg/enums"
	"github.com/subtrackhq/subtrack-backend/pkg/notion"
)

// EncodeProperties maps a subscription into the remote property bag. A
// field without a value produces no key at all; the remote schema rejects
// explicit nulls for absent optional properties. The id never appears in
// the bag because the store assigns it.
func EncodeProperties(sub Subscription) notion.Properties {
	var props notion.Properties

	if sub.Name != "" {
		props.Subscription = notion.NewTitle(sub.Name)
	}
	if sub.UseCase != "" {
		props.UseCase = notion.NewSelect(sub.UseCase.String())
	}
	if sub.BillingCycle != "" {
		props.BillingCycle = notion.NewSelect(sub.BillingCycle.String())
	}
	if sub.Status != "" {
		props.Status = notion.NewSelect(sub.Status.String())
	}
	if !sub.Price.IsZero() {
		props.Price = notion.NewNumber(sub.Price.InexactFloat64())
	}
	if sub.StartDate != nil {
		props.StartDate = notion.NewDate(sub.StartDate.Format(dateLayout))
	}

	return props
}

// DecodePage maps a stored page back into a subscription plus a list of
// diagnostics for any property that arrived in a degraded shape. Decoding
// never fails: malformed upstream data degrades to best-effort values so
// display keeps working.
func DecodePage(page notion.Page) (Subscription, []string) {
	var diags []string
	props := page.Properties

	sub := Subscription{ID: page.ID}

	sub.Name = props.Subscription.PlainText()
	if sub.Name == "" {
		sub.Name = placeholderName
	}
	if props.Subscription.Degraded() {
		diags = append(diags, degradedDiag(page.ID, "Subscription"))
	}

	if props.Price != nil {
		if v := props.Price.Value(); v != 0 {
			sub.Price = decimal.NewFromFloat(v)
		}
		if props.Price.Degraded() {
			diags = append(diags, degradedDiag(page.ID, "Price"))
		}
	}

	// Selector values pass through as-is; decoding tolerates options the
	// enumerations no longer know about.
	sub.BillingCycle = enums.BillingCycle(props.BillingCycle.Name())
	if props.BillingCycle.Degraded() {
		diags = append(diags, degradedDiag(page.ID, "Billing cycle"))
	}
	sub.Status = enums.Status(props.Status.Name())
	if props.Status.Degraded() {
		diags = append(diags, degradedDiag(page.ID, "Status"))
	}
	sub.UseCase = enums.UseCase(props.UseCase.Name())
	if props.UseCase.Degraded() {
		diags = append(diags, degradedDiag(page.ID, "Use case"))
	}

	if start := props.StartDate.Start(); start != "" {
		if parsed, err := time.ParseInLocation(dateLayout, start, time.UTC); err == nil {
			sub.StartDate = &parsed
		} else {
			diags = append(diags, fmt.Sprintf("page %s: unparseable start date %q", page.ID, start))
		}
	}
	if props.StartDate.Degraded() {
		diags = append(diags, degradedDiag(page.ID, "Start date"))
	}

	return sub, diags
}

func degradedDiag(pageID, property string) string {
	return fmt.Sprintf("page %s: property %q arrived as a bare scalar", pageID, property)
}
