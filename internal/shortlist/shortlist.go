package shortlist

import "fmt"

// EducationLevel is the minimal degree a job requires.
type EducationLevel string

const (
	EducationNone      EducationLevel = "none"
	EducationAssociate EducationLevel = "associate"
	EducationBachelor  EducationLevel = "bachelor"
	EducationMaster    EducationLevel = "master"
	EducationDoctorate EducationLevel = "doctorate"
)

// RequirementSet is the structured view of a job description produced by the
// requirement extractor. It is never mutated after creation.
type RequirementSet struct {
	JobTitle            string
	RequiredSkills      []string
	MinExperienceYears  float64
	EducationLevel      EducationLevel
	PreferredIndustries []string
}

// SubScores holds the per-category scores of a single candidate, each in the
// 0-100 range. Values outside the range are clamped during aggregation.
type SubScores struct {
	Technical  float64
	Experience float64
	Education  float64
	Industry   float64
	Additional float64
}

// CandidateAnalysis is the structured evaluation of one resume against a
// requirement set. Produced once by the resume evaluator; read-only afterward.
type CandidateAnalysis struct {
	Candidate     string
	MatchedSkills []string
	MissingSkills []string
	Scores        SubScores
	Summary       string
	Strengths     []string
	Weaknesses    []string
}

// RankedResult is a candidate analysis with its derived overall score and
// 1-based rank. Both fields are computed by Rank and never set directly.
type RankedResult struct {
	*CandidateAnalysis

	Overall float64
	Rank    int
}

// ValidationError reports a structurally invalid sub-score. It names the
// candidate and the offending field so the caller can decide whether to skip
// the candidate or abort the whole batch.
type ValidationError struct {
	Candidate string
	Field     string
	Value     float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("candidate %q: sub-score %s is not a valid number (%v)", e.Candidate, e.Field, e.Value)
}
