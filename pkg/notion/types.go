package notion

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Properties is the typed property bag for one subscription page. The key
// set is fixed and matches the remote database schema exactly, including
// casing and spaces. A nil field marshals to no key at all; the API rejects
// explicit nulls for absent optional properties.
type Properties struct {
	Subscription *TitleProperty  `json:"Subscription,omitempty"`
	UseCase      *SelectProperty `json:"Use case,omitempty"`
	BillingCycle *SelectProperty `json:"Billing cycle,omitempty"`
	Status       *SelectProperty `json:"Status,omitempty"`
	Price        *NumberProperty `json:"Price,omitempty"`
	StartDate    *DateProperty   `json:"Start date,omitempty"`
}

// Page is the envelope the API wraps around one stored record. The id is
// server-assigned and lives outside the property bag.
type Page struct {
	ID         string     `json:"id"`
	URL        string     `json:"url,omitempty"`
	Archived   bool       `json:"archived,omitempty"`
	Properties Properties `json:"properties"`
}

// QueryRequest is the body for a database query. Filter and sorts pass
// through opaque; the client does not interpret them.
type QueryRequest struct {
	Filter   json.RawMessage `json:"filter,omitempty"`
	Sorts    json.RawMessage `json:"sorts,omitempty"`
	PageSize int             `json:"page_size,omitempty"`
}

// QueryResponse is a single page of query results. Cursor following is not
// implemented; HasMore and NextCursor are surfaced for the caller.
type QueryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// RichText is one text run inside a title property. Encode writes the
// nested text content; decode prefers the flattened plain_text the API
// returns.
type RichText struct {
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

// TitleProperty carries the page title as a list of rich text runs.
type TitleProperty struct {
	Title []RichText `json:"title"`

	degraded bool
}

// NewTitle builds a title property with a single text run.
func NewTitle(content string) *TitleProperty {
	return &TitleProperty{Title: []RichText{{Text: &TextContent{Content: content}}}}
}

// PlainText returns the first run's text, or "" when the title is empty.
func (p *TitleProperty) PlainText() string {
	if p == nil || len(p.Title) == 0 {
		return ""
	}
	run := p.Title[0]
	if run.PlainText != "" {
		return run.PlainText
	}
	if run.Text != nil {
		return run.Text.Content
	}
	return ""
}

// Degraded reports whether the value arrived as a bare scalar instead of
// the expected container shape.
func (p *TitleProperty) Degraded() bool {
	return p != nil && p.degraded
}

func (p *TitleProperty) UnmarshalJSON(data []byte) error {
	type container TitleProperty
	var c container
	if err := json.Unmarshal(data, &c); err == nil {
		*p = TitleProperty(c)
		return nil
	}
	if s, ok := scalarString(data); ok {
		p.Title = []RichText{{PlainText: s}}
		p.degraded = true
		return nil
	}
	p.degraded = true
	return nil
}

// SelectOption is the named value of a single-choice selector.
type SelectOption struct {
	Name string `json:"name"`
}

// SelectProperty is a single-choice selector. The remote schema uses
// select, not multi_select, for every choice field of the subscription
// database.
type SelectProperty struct {
	Select *SelectOption `json:"select"`

	degraded bool
}

// NewSelect builds a select property carrying exactly one value.
func NewSelect(name string) *SelectProperty {
	return &SelectProperty{Select: &SelectOption{Name: name}}
}

// Name returns the selected value, or "" when nothing is selected.
func (p *SelectProperty) Name() string {
	if p == nil || p.Select == nil {
		return ""
	}
	return p.Select.Name
}

// Degraded reports whether the value arrived as a bare scalar.
func (p *SelectProperty) Degraded() bool {
	return p != nil && p.degraded
}

func (p *SelectProperty) UnmarshalJSON(data []byte) error {
	type container SelectProperty
	var c container
	if err := json.Unmarshal(data, &c); err == nil {
		*p = SelectProperty(c)
		return nil
	}
	if s, ok := scalarString(data); ok {
		p.Select = &SelectOption{Name: s}
		p.degraded = true
		return nil
	}
	p.degraded = true
	return nil
}

// NumberProperty is a numeric property.
type NumberProperty struct {
	Number float64 `json:"number"`

	degraded bool
}

// NewNumber builds a number property.
func NewNumber(value float64) *NumberProperty {
	return &NumberProperty{Number: value}
}

// Value returns the numeric value.
func (p *NumberProperty) Value() float64 {
	if p == nil {
		return 0
	}
	return p.Number
}

// Degraded reports whether the value arrived as a bare scalar.
func (p *NumberProperty) Degraded() bool {
	return p != nil && p.degraded
}

func (p *NumberProperty) UnmarshalJSON(data []byte) error {
	type container NumberProperty
	var c container
	if err := json.Unmarshal(data, &c); err == nil {
		*p = NumberProperty(c)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		p.Number = f
		p.degraded = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			p.Number = f
		}
		p.degraded = true
		return nil
	}
	p.degraded = true
	return nil
}

// DateValue is the start/end pair of a date property. Only the start date
// is used; values are calendar dates without a time component.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// DateProperty wraps a calendar date.
type DateProperty struct {
	Date *DateValue `json:"date"`

	degraded bool
}

// NewDate builds a date property from a YYYY-MM-DD string.
func NewDate(start string) *DateProperty {
	return &DateProperty{Date: &DateValue{Start: start}}
}

// Start returns the start date string, or "" when unset.
func (p *DateProperty) Start() string {
	if p == nil || p.Date == nil {
		return ""
	}
	return p.Date.Start
}

// Degraded reports whether the value arrived as a bare scalar.
func (p *DateProperty) Degraded() bool {
	return p != nil && p.degraded
}

func (p *DateProperty) UnmarshalJSON(data []byte) error {
	type container DateProperty
	var c container
	if err := json.Unmarshal(data, &c); err == nil {
		*p = DateProperty(c)
		return nil
	}
	if s, ok := scalarString(data); ok {
		p.Date = &DateValue{Start: s}
		p.degraded = true
		return nil
	}
	p.degraded = true
	return nil
}

// scalarString coerces a bare JSON scalar into a string. Containers
// report false so callers fall back to an empty degraded value.
func scalarString(data []byte) (string, bool) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", false
	}
	switch typed := v.(type) {
	case string:
		return typed, true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return fmt.Sprintf("%t", typed), true
	default:
		return "", false
	}
}
