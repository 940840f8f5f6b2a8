package models

import "strings"

// Rule identifies a validation rule.
type Rule string

// Validation rules, in evaluation order.
const (
	RuleInvalidDate    Rule = "invalid_date"
	RuleInvalidTime    Rule = "invalid_time"
	RuleInvalidNumeric Rule = "invalid_numeric"
	RuleMissingValues  Rule = "missing_values"
	RuleDuplicate      Rule = "duplicate"
	RuleZero           Rule = "zero"
)

// Violation records one violated rule, with the offending column for
// column-scoped rules.
type Violation struct {
	Rule   Rule
	Column string
}

// Tag renders the violation as "rule:column", or just "rule" for row-level
// rules.
func (v Violation) Tag() string {
	if v.Column == "" {
		return string(v.Rule)
	}

	return string(v.Rule) + ":" + v.Column
}

// Verdict is the validation outcome for one record. A record is accepted
// iff it accumulated no violations. Violations keep rule-evaluation order.
type Verdict struct {
	Violations []Violation
}

// Accepted reports whether the record passed every rule.
func (v *Verdict) Accepted() bool {
	return len(v.Violations) == 0
}

// Reason serializes the violations into the reject-reason string.
func (v *Verdict) Reason() string {
	tags := make([]string, 0, len(v.Violations))
	for _, viol := range v.Violations {
		tags = append(tags, viol.Tag())
	}

	return strings.Join(tags, "; ")
}
