package validator

import (
	"fmt"

	"github.com/teranos/chronos/allen"
)

// Severity of an issue. Every relation clash is an error.
type Severity string

const SeverityError Severity = "Error"

// Issue reports two relation kinds that cannot both hold between the same
// ordered pair of entities.
type Issue struct {
	RuleName    string   `json:"rule_name"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`

	Subject  string `json:"subject"`
	Object   string `json:"object"`
	Relation string `json:"relation"` // short name of the rule's relation
	Clash    string `json:"clash"`    // short name of the clashing relation
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.RuleName, i.Suggestion)
}

// suggestionFormat is filled with the domain noun, subject, object, the
// rule's relation and the clashing relation.
const suggestionFormat = "TIME %s '%s' and '%s' should be adjusted to not clash on temporal relations (%s VS %s)"

func newIssue(rule Rule, subject, object string, clash allen.Kind) Issue {
	return Issue{
		RuleName:    rule.Name(),
		Severity:    SeverityError,
		Description: rule.Description(clash),
		Suggestion: fmt.Sprintf(suggestionFormat,
			rule.kind.Domain().Noun(), subject, object, rule.kind, clash),
		Subject:  subject,
		Object:   object,
		Relation: rule.kind.String(),
		Clash:    clash.String(),
	}
}
