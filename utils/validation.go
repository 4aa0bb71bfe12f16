// utils/validation.go - Business-rule validation for workflow payloads
package utils

import (
	"fmt"
	"strings"
)

const (
	MinAbstractLength = 100
	MinBodyLength     = 1000
	MinScore          = 1
	MaxScore          = 5
)

// FieldIssues maps a payload field to its list of problems. An empty map
// means the payload passed.
type FieldIssues map[string][]string

func (f FieldIssues) Add(field, issue string) {
	f[field] = append(f[field], issue)
}

func (f FieldIssues) HasIssues() bool {
	return len(f) > 0
}

// ValidateManuscriptComplete checks the completeness rules an article must
// satisfy before it can be submitted for review.
func ValidateManuscriptComplete(abstract, body string, manuscriptFile *string) FieldIssues {
	issues := FieldIssues{}

	if len(strings.TrimSpace(abstract)) < MinAbstractLength {
		issues.Add("abstract", fmt.Sprintf("abstract must be at least %d characters", MinAbstractLength))
	}
	if len(strings.TrimSpace(body)) < MinBodyLength {
		issues.Add("body", fmt.Sprintf("body must be at least %d characters", MinBodyLength))
	}
	if manuscriptFile == nil || strings.TrimSpace(*manuscriptFile) == "" {
		issues.Add("manuscript_file", "a manuscript file must be attached")
	}

	return issues
}

// ValidateReviewScores checks the four criterion scores and the overall
// score against the 1..5 range.
func ValidateReviewScores(technicalQuality, novelty, significance, clarity, overallScore int) FieldIssues {
	issues := FieldIssues{}

	scores := []struct {
		field string
		value int
	}{
		{"technical_quality", technicalQuality},
		{"novelty", novelty},
		{"significance", significance},
		{"clarity", clarity},
		{"overall_score", overallScore},
	}
	for _, s := range scores {
		if s.value < MinScore || s.value > MaxScore {
			issues.Add(s.field, fmt.Sprintf("score must be between %d and %d", MinScore, MaxScore))
		}
	}

	return issues
}

// ValidateRecommendation resolves and checks a recommendation value,
// reporting an issue when it is not one of the four valid codes.
func ValidateRecommendation(value string) (string, FieldIssues) {
	issues := FieldIssues{}
	canonical, ok := CanonicalRecommendation(value)
	if !ok {
		issues.Add("recommendation", "recommendation must be one of accept, minor_revision, major_revision, reject")
	}
	return canonical, issues
}

// ValidateDecision resolves and checks an editorial decision value.
func ValidateDecision(value string) (string, FieldIssues) {
	issues := FieldIssues{}
	canonical, ok := CanonicalDecision(value)
	if !ok {
		issues.Add("decision", "decision must be one of accept, reject, revision_required")
	}
	return canonical, issues
}

// SanitizeInput removes potentially harmful characters.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
