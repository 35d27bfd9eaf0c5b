package ai

import (
	"context"

	"github.com/ksergeev/resume-shortlister/internal/shortlist"
)

// Resume is one candidate document handed to the evaluator. FallbackName is
// used as the candidate identifier when no name can be found in the text.
type Resume struct {
	FallbackName string
	Text         string
}

// Analyzer delegates job-description parsing and resume evaluation to an
// external model provider.
type Analyzer interface {
	// ExtractRequirements turns free-form job description text into a
	// structured requirement set.
	ExtractRequirements(ctx context.Context, jobText string) (*shortlist.RequirementSet, error)

	// EvaluateResume scores a single resume against the requirement set.
	// The returned analysis is fully validated and typed; dynamic provider
	// output never leaks past this boundary.
	EvaluateResume(ctx context.Context, requirements *shortlist.RequirementSet, resume Resume) (*shortlist.CandidateAnalysis, error)
}
