// Package normalizer provides field normalization, record validation and
// partitioning for the retail transaction pipeline.
package normalizer

import (
	"strconv"
	"strings"
	"time"

	"retailetl/internal/models"
	"retailetl/pkg/utils"
)

// shortYearCutoff windows two-digit years: a parse landing past this year is
// shifted back a century.
const shortYearCutoff = 2050

// minPhoneDigits is the minimum digit count for a usable phone number.
const minPhoneDigits = 10

// timeLayout is the strict layout time columns must match.
const timeLayout = "15:04:05"

// canonicalDateLayout is the canonical text form of normalized dates.
const canonicalDateLayout = "2006-01-02"

type dateLayout struct {
	layout    string
	shortYear bool
}

// dateLayouts is tried in order; the first successful parse wins, so
// ambiguous strings resolve by priority: month-day layouts come before their
// day-month counterparts.
var dateLayouts = []dateLayout{
	{"01-02-06", true},
	{"02-01-06", true},
	{"01/02/06", true},
	{"02/01/06", true},
	{"01-02-2006", false},
	{"02-01-2006", false},
	{"01/02/2006", false},
	{"02/01/2006", false},
	{"2006-01-02", false},
	{"2006/01/02", false},
	{"02.01.2006", false},
	{"02.01.06", true},
	{"20060102", false},
	{"01022006", false},
	{"Jan 2, 2006", false},
	{"January 2, 2006", false},
	{"2 Jan 2006", false},
	{"2 January 2006", false},
}

// fallbackDateLayouts is the generic last resort after the known patterns.
var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// FieldNormalizer coerces raw field values into canonical typed values.
// Every method returns a value, never an error; failures surface as null.
type FieldNormalizer struct {
	strings *utils.StringHelper
}

// NewFieldNormalizer creates a new field normalizer.
func NewFieldNormalizer() *FieldNormalizer {
	return &FieldNormalizer{
		strings: utils.NewStringHelper(),
	}
}

// Normalize dispatches to the normalizer matching the column role.
func (n *FieldNormalizer) Normalize(raw string, role models.Kind) models.Value {
	switch role {
	case models.KindDate:
		return n.Date(raw)
	case models.KindTime:
		return n.Time(raw)
	case models.KindNumeric:
		return n.Numeric(raw)
	case models.KindPhone:
		return n.Phone(raw)
	default:
		return n.Text(raw)
	}
}

// Date parses a date against the known layouts in priority order, then the
// generic fallbacks. Two-digit-year parses landing past the cutoff are
// shifted back a century.
func (n *FieldNormalizer) Date(raw string) models.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Value{Raw: raw, Kind: models.KindDate, Null: true}
	}

	for _, dl := range dateLayouts {
		t, err := time.Parse(dl.layout, s)
		if err != nil {
			continue
		}

		if dl.shortYear && t.Year() > shortYearCutoff {
			t = t.AddDate(-100, 0, 0)
		}

		return dateValue(raw, t)
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateValue(raw, t)
		}
	}

	return models.Value{Raw: raw, Kind: models.KindDate, Null: true}
}

func dateValue(raw string, t time.Time) models.Value {
	return models.Value{
		Raw:  raw,
		Kind: models.KindDate,
		Date: t,
		Text: t.Format(canonicalDateLayout),
	}
}

// Time parses a strict hour:minute:second value.
func (n *FieldNormalizer) Time(raw string) models.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Value{Raw: raw, Kind: models.KindTime, Null: true}
	}

	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return models.Value{Raw: raw, Kind: models.KindTime, Null: true}
	}

	return models.Value{
		Raw:  raw,
		Kind: models.KindTime,
		Text: t.Format(timeLayout),
	}
}

// Phone strips every non-digit character; fewer than ten remaining digits is
// not a usable number.
func (n *FieldNormalizer) Phone(raw string) models.Value {
	digits := n.strings.DigitsOnly(raw)
	if len(digits) < minPhoneDigits {
		return models.Value{Raw: raw, Kind: models.KindPhone, Null: true}
	}

	return models.Value{
		Raw:  raw,
		Kind: models.KindPhone,
		Text: digits,
	}
}

// Text trims and collapses internal whitespace runs to single spaces.
func (n *FieldNormalizer) Text(raw string) models.Value {
	cleaned := n.strings.CollapseWhitespace(raw)
	if cleaned == "" {
		return models.Value{Raw: raw, Kind: models.KindText, Null: true}
	}

	return models.Value{
		Raw:  raw,
		Kind: models.KindText,
		Text: cleaned,
	}
}

// Numeric parses a floating value. Negative magnitudes are invalid in this
// domain, not signed quantities.
func (n *FieldNormalizer) Numeric(raw string) models.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Value{Raw: raw, Kind: models.KindNumeric, Null: true}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return models.Value{Raw: raw, Kind: models.KindNumeric, Null: true}
	}

	return models.Value{
		Raw:  raw,
		Kind: models.KindNumeric,
		Num:  f,
		Text: strconv.FormatFloat(f, 'f', -1, 64),
	}
}
