package utils

import (
	"strings"
)

// Article workflow statuses. The workflow engine is the only writer of
// articles.status; every write goes through CanTransitionArticle first.
const (
	ArticleStatusDraft            = "draft"
	ArticleStatusSubmitted        = "submitted"
	ArticleStatusUnderReview      = "under_review"
	ArticleStatusRevisionRequired = "revision_required"
	ArticleStatusAccepted         = "accepted"
	ArticleStatusRejected         = "rejected"
	ArticleStatusPublished        = "published"
	ArticleStatusWithdrawn        = "withdrawn"
)

// Submission sub-statuses.
const (
	SubmissionStatusPending      = "pending"
	SubmissionStatusAssigned     = "assigned"
	SubmissionStatusReviewing    = "reviewing"
	SubmissionStatusDecisionMade = "decision_made"
	SubmissionStatusCompleted    = "completed"
)

// Reviewer recommendations.
const (
	RecommendationAccept        = "accept"
	RecommendationMinorRevision = "minor_revision"
	RecommendationMajorRevision = "major_revision"
	RecommendationReject        = "reject"
)

// Editorial decisions.
const (
	DecisionAccept           = "accept"
	DecisionReject           = "reject"
	DecisionRevisionRequired = "revision_required"
)

var articleTransitions = map[string][]string{
	ArticleStatusDraft:            {ArticleStatusSubmitted, ArticleStatusWithdrawn},
	ArticleStatusSubmitted:        {ArticleStatusUnderReview, ArticleStatusWithdrawn},
	ArticleStatusUnderReview:      {ArticleStatusRevisionRequired, ArticleStatusAccepted, ArticleStatusRejected, ArticleStatusWithdrawn},
	ArticleStatusRevisionRequired: {ArticleStatusSubmitted, ArticleStatusWithdrawn},
	ArticleStatusAccepted:         {ArticleStatusPublished, ArticleStatusWithdrawn},
	ArticleStatusRejected:         {},
	ArticleStatusPublished:        {},
	ArticleStatusWithdrawn:        {},
}

var submissionTransitions = map[string][]string{
	SubmissionStatusPending:      {SubmissionStatusAssigned, SubmissionStatusReviewing, SubmissionStatusCompleted},
	SubmissionStatusAssigned:     {SubmissionStatusReviewing, SubmissionStatusDecisionMade, SubmissionStatusCompleted},
	SubmissionStatusReviewing:    {SubmissionStatusDecisionMade, SubmissionStatusCompleted},
	SubmissionStatusDecisionMade: {SubmissionStatusCompleted},
	SubmissionStatusCompleted:    {},
}

// Input aliases accepted from API clients. The UI historically sent both
// upper-case labels and a few legacy spellings; they all normalize to the
// canonical lower-case codes above.
var (
	recommendationSynonyms = map[string][]string{
		RecommendationAccept:        {"accept", "accepted"},
		RecommendationMinorRevision: {"minor_revision", "minor revision", "minor"},
		RecommendationMajorRevision: {"major_revision", "major revision", "major"},
		RecommendationReject:        {"reject", "rejected"},
	}
	decisionSynonyms = map[string][]string{
		DecisionAccept:           {"accept", "accepted"},
		DecisionReject:           {"reject", "rejected"},
		DecisionRevisionRequired: {"revision_required", "revision", "revise"},
	}
	recommendationAliases = buildAliasMap(recommendationSynonyms)
	decisionAliases       = buildAliasMap(decisionSynonyms)
)

func buildAliasMap(synonyms map[string][]string) map[string]string {
	aliasMap := make(map[string]string)
	for canonical, aliases := range synonyms {
		aliasMap[normalizeCode(canonical)] = canonical
		for _, alias := range aliases {
			if key := normalizeCode(alias); key != "" {
				aliasMap[key] = canonical
			}
		}
	}
	return aliasMap
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// CanonicalRecommendation resolves a client-supplied recommendation value
// to its canonical code.
func CanonicalRecommendation(value string) (string, bool) {
	canonical, ok := recommendationAliases[normalizeCode(value)]
	return canonical, ok
}

// CanonicalDecision resolves a client-supplied decision value to its
// canonical code.
func CanonicalDecision(value string) (string, bool) {
	canonical, ok := decisionAliases[normalizeCode(value)]
	return canonical, ok
}

// CanTransitionArticle reports whether the article status change is a row
// of the workflow transition table.
func CanTransitionArticle(from, to string) bool {
	return containsStatus(articleTransitions[normalizeCode(from)], normalizeCode(to))
}

// CanTransitionSubmission reports whether the submission status change is
// allowed.
func CanTransitionSubmission(from, to string) bool {
	return containsStatus(submissionTransitions[normalizeCode(from)], normalizeCode(to))
}

func containsStatus(allowed []string, to string) bool {
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// IsTerminalArticleStatus reports whether no further transition leaves the
// given status.
func IsTerminalArticleStatus(status string) bool {
	return len(articleTransitions[normalizeCode(status)]) == 0
}

// ArticleStatusForDecision maps an editorial decision to the resulting
// article status.
func ArticleStatusForDecision(decision string) (string, bool) {
	switch decision {
	case DecisionAccept:
		return ArticleStatusAccepted, true
	case DecisionReject:
		return ArticleStatusRejected, true
	case DecisionRevisionRequired:
		return ArticleStatusRevisionRequired, true
	}
	return "", false
}
