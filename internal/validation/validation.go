package validation

import (
	"fmt"
	"strings"
)

// Error describes a single failed validation rule.
type Error struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every rule a candidate failed.
type Errors []Error

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Rule is a single named predicate over a candidate snapshot.
type Rule struct {
	Field   string
	Name    string
	Message string
	Ok      func() bool
}

// Check evaluates every rule and returns the full set of failures, or
// nil when all rules pass. The rules are independent conjunctions, so
// evaluation order never affects the verdict.
func Check(rules []Rule) error {
	var failed Errors
	for _, r := range rules {
		if !r.Ok() {
			failed = append(failed, Error{Field: r.Field, Rule: r.Name, Message: r.Message})
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return failed
}

// Reasons an order can fail its catalog consistency check.
const (
	ReasonNotFound    = "not_found"
	ReasonUnavailable = "unavailable"
)

// ReferentialError reports an order line whose menu item reference
// cannot be honored. The faulty input is the order body, so it maps to
// a client input error rather than a not-found response.
type ReferentialError struct {
	MenuItemID int
	Reason     string
	Message    string
}

func (e *ReferentialError) Error() string {
	return e.Message
}
