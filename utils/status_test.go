package utils

import "testing"

func TestCanTransitionArticle(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{ArticleStatusDraft, ArticleStatusSubmitted, true},
		{ArticleStatusSubmitted, ArticleStatusUnderReview, true},
		{ArticleStatusUnderReview, ArticleStatusAccepted, true},
		{ArticleStatusUnderReview, ArticleStatusRejected, true},
		{ArticleStatusUnderReview, ArticleStatusRevisionRequired, true},
		{ArticleStatusRevisionRequired, ArticleStatusSubmitted, true},
		{ArticleStatusAccepted, ArticleStatusPublished, true},
		{ArticleStatusDraft, ArticleStatusWithdrawn, true},
		{ArticleStatusAccepted, ArticleStatusWithdrawn, true},

		{ArticleStatusDraft, ArticleStatusUnderReview, false},
		{ArticleStatusDraft, ArticleStatusPublished, false},
		{ArticleStatusSubmitted, ArticleStatusAccepted, false},
		{ArticleStatusPublished, ArticleStatusWithdrawn, false},
		{ArticleStatusRejected, ArticleStatusSubmitted, false},
		{ArticleStatusWithdrawn, ArticleStatusDraft, false},
	}

	for _, tt := range tests {
		if got := CanTransitionArticle(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanTransitionArticle(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestCanTransitionSubmission(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{SubmissionStatusPending, SubmissionStatusReviewing, true},
		{SubmissionStatusPending, SubmissionStatusAssigned, true},
		{SubmissionStatusReviewing, SubmissionStatusDecisionMade, true},
		{SubmissionStatusDecisionMade, SubmissionStatusCompleted, true},
		{SubmissionStatusReviewing, SubmissionStatusCompleted, true},

		{SubmissionStatusPending, SubmissionStatusDecisionMade, false},
		{SubmissionStatusCompleted, SubmissionStatusPending, false},
		{SubmissionStatusDecisionMade, SubmissionStatusReviewing, false},
	}

	for _, tt := range tests {
		if got := CanTransitionSubmission(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanTransitionSubmission(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestIsTerminalArticleStatus(t *testing.T) {
	terminal := []string{ArticleStatusPublished, ArticleStatusRejected, ArticleStatusWithdrawn}
	for _, status := range terminal {
		if !IsTerminalArticleStatus(status) {
			t.Errorf("expected %s to be terminal", status)
		}
	}

	open := []string{ArticleStatusDraft, ArticleStatusSubmitted, ArticleStatusUnderReview,
		ArticleStatusRevisionRequired, ArticleStatusAccepted}
	for _, status := range open {
		if IsTerminalArticleStatus(status) {
			t.Errorf("expected %s to be non-terminal", status)
		}
	}
}

func TestCanonicalRecommendation(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"accept", RecommendationAccept, true},
		{"ACCEPT", RecommendationAccept, true},
		{" Accepted ", RecommendationAccept, true},
		{"minor_revision", RecommendationMinorRevision, true},
		{"minor", RecommendationMinorRevision, true},
		{"Major Revision", RecommendationMajorRevision, true},
		{"reject", RecommendationReject, true},
		{"maybe", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalRecommendation(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CanonicalRecommendation(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCanonicalDecision(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"accept", DecisionAccept, true},
		{"REJECT", DecisionReject, true},
		{"revision_required", DecisionRevisionRequired, true},
		{"revise", DecisionRevisionRequired, true},
		{"minor_revision", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalDecision(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CanonicalDecision(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestArticleStatusForDecision(t *testing.T) {
	tests := []struct {
		decision string
		status   string
		ok       bool
	}{
		{DecisionAccept, ArticleStatusAccepted, true},
		{DecisionReject, ArticleStatusRejected, true},
		{DecisionRevisionRequired, ArticleStatusRevisionRequired, true},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		got, ok := ArticleStatusForDecision(tt.decision)
		if ok != tt.ok || got != tt.status {
			t.Errorf("ArticleStatusForDecision(%q) = (%q, %v), want (%q, %v)", tt.decision, got, ok, tt.status, tt.ok)
		}
	}
}
