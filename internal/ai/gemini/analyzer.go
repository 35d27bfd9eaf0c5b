package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ksergeev/resume-shortlister/internal/ai"
	"github.com/ksergeev/resume-shortlister/internal/shortlist"
	"github.com/ksergeev/resume-shortlister/internal/util"
)

//go:embed prompt_requirements.md
var requirementsTemplate string

//go:embed prompt_evaluate.md
var evaluateTemplate string

const (
	requirementsSystem = "You are an expert HR analyst. Extract job requirements accurately and return only valid JSON."
	evaluateSystem     = "You are an expert recruiter analyzing resumes. Extract the candidate name exactly from the current resume text. " +
		"For matched_skills, only include skills explicitly listed in required_skills. " +
		"Score each category from 0 to 100 based on true matches; be fair but precise."

	defaultMaxLogLength = 200
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Analyzer implements ai.Analyzer on top of a Gemini content generator.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int

	// newID tags every evaluation prompt with a fresh identifier so the
	// provider cannot serve a cached answer for a different resume.
	newID func() string
}

var _ ai.Analyzer = (*Analyzer)(nil)

func NewAnalyzer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		newID:     uuid.NewString,
	}
}

// ExtractRequirements asks Gemini to turn a job description into a structured
// requirement set.
func (a *Analyzer) ExtractRequirements(ctx context.Context, jobText string) (*shortlist.RequirementSet, error) {
	jobText = strings.TrimSpace(jobText)
	if jobText == "" {
		return nil, fmt.Errorf("job description text is required")
	}

	prompt := strings.ReplaceAll(requirementsTemplate, "{{JOB_DESCRIPTION}}", jobText)

	a.logger.Debug("gemini extract requirements request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, requirementsSystem, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini extract requirements response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, a.maxLogLen)),
	)

	return parseRequirements(raw)
}

// EvaluateResume scores one resume against the requirement set.
func (a *Analyzer) EvaluateResume(ctx context.Context, requirements *shortlist.RequirementSet, resume ai.Resume) (*shortlist.CandidateAnalysis, error) {
	if requirements == nil {
		return nil, fmt.Errorf("requirement set is required")
	}
	if strings.TrimSpace(resume.Text) == "" {
		return nil, fmt.Errorf("resume text is required")
	}

	requirementsJSON, err := json.MarshalIndent(requirementsPayload(requirements), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal requirements payload: %w", err)
	}

	prompt := strings.ReplaceAll(evaluateTemplate, "{{ANALYSIS_ID}}", a.newID())
	prompt = strings.ReplaceAll(prompt, "{{REQUIREMENTS_JSON}}", string(requirementsJSON))
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resume.Text)

	a.logger.Debug("gemini evaluate resume request",
		zap.String("candidate_file", resume.FallbackName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, evaluateSystem, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini evaluate resume response",
		zap.String("candidate_file", resume.FallbackName),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, a.maxLogLen)),
	)

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	analysis.Candidate = resolveCandidateName(resume, analysis.Candidate)
	analysis.MatchedSkills = validateMatchedSkills(analysis.MatchedSkills, requirements.RequiredSkills)

	return analysis, nil
}

func requirementsPayload(requirements *shortlist.RequirementSet) map[string]any {
	return map[string]any{
		"job_title":                requirements.JobTitle,
		"required_skills":          requirements.RequiredSkills,
		"minimum_experience_years": requirements.MinExperienceYears,
		"education_level":          requirements.EducationLevel,
		"preferred_industries":     requirements.PreferredIndustries,
	}
}

// validateMatchedSkills drops skills the model claims as matches that are not
// actually in the required list. Comparison is case-insensitive and accepts
// close containment in either direction.
func validateMatchedSkills(matched, required []string) []string {
	if len(required) == 0 {
		return matched
	}

	valid := make([]string, 0, len(matched))
	for _, skill := range matched {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" {
			continue
		}
		for _, req := range required {
			reqLower := strings.ToLower(strings.TrimSpace(req))
			if lower == reqLower || strings.Contains(lower, reqLower) || strings.Contains(reqLower, lower) {
				valid = append(valid, skill)
				break
			}
		}
	}

	return valid
}
