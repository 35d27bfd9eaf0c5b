package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/mitchellh/mapstructure"

	"github.com/ksergeev/resume-shortlister/internal/ai"
	"github.com/ksergeev/resume-shortlister/internal/shortlist"
)

type requirementsWire struct {
	JobTitle            string   `mapstructure:"job_title"`
	RequiredSkills      []string `mapstructure:"required_skills"`
	MinExperienceYears  float64  `mapstructure:"minimum_experience_years"`
	EducationLevel      string   `mapstructure:"education_level"`
	PreferredIndustries []string `mapstructure:"preferred_industries"`
}

type scoresWire struct {
	Technical  float64 `mapstructure:"technical"`
	Experience float64 `mapstructure:"experience"`
	Education  float64 `mapstructure:"education"`
	Industry   float64 `mapstructure:"industry"`
	Additional float64 `mapstructure:"additional"`
}

type analysisWire struct {
	CandidateName string     `mapstructure:"candidate_name"`
	MatchedSkills []string   `mapstructure:"matched_skills"`
	MissingSkills []string   `mapstructure:"missing_skills"`
	Scores        scoresWire `mapstructure:"scores"`
	Summary       string     `mapstructure:"summary"`
	Strengths     []string   `mapstructure:"strengths"`
	Weaknesses    []string   `mapstructure:"weaknesses"`
}

func parseRequirements(raw string) (*shortlist.RequirementSet, error) {
	var wire requirementsWire
	if err := decodeResponse(raw, &wire); err != nil {
		return nil, fmt.Errorf("parse requirements response: %w", err)
	}

	return &shortlist.RequirementSet{
		JobTitle:            strings.TrimSpace(wire.JobTitle),
		RequiredSkills:      cleanList(wire.RequiredSkills),
		MinExperienceYears:  wire.MinExperienceYears,
		EducationLevel:      normalizeEducation(wire.EducationLevel),
		PreferredIndustries: cleanList(wire.PreferredIndustries),
	}, nil
}

func parseAnalysis(raw string) (*shortlist.CandidateAnalysis, error) {
	var wire analysisWire
	if err := decodeResponse(raw, &wire); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}

	return &shortlist.CandidateAnalysis{
		Candidate:     strings.TrimSpace(wire.CandidateName),
		MatchedSkills: cleanList(wire.MatchedSkills),
		MissingSkills: cleanList(wire.MissingSkills),
		Scores: shortlist.SubScores{
			Technical:  wire.Scores.Technical,
			Experience: wire.Scores.Experience,
			Education:  wire.Scores.Education,
			Industry:   wire.Scores.Industry,
			Additional: wire.Scores.Additional,
		},
		Summary:    strings.TrimSpace(wire.Summary),
		Strengths:  cleanList(wire.Strengths),
		Weaknesses: cleanList(wire.Weaknesses),
	}, nil
}

// decodeResponse unmarshals the model output into a dynamic map and then
// coerces it into the target struct. Weak typing absorbs the provider's habit
// of returning numbers as strings and vice versa; missing fields keep their
// zero values.
func decodeResponse(raw string, target any) error {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func normalizeEducation(level string) shortlist.EducationLevel {
	switch shortlist.EducationLevel(strings.ToLower(strings.TrimSpace(level))) {
	case shortlist.EducationAssociate:
		return shortlist.EducationAssociate
	case shortlist.EducationBachelor:
		return shortlist.EducationBachelor
	case shortlist.EducationMaster:
		return shortlist.EducationMaster
	case shortlist.EducationDoctorate:
		return shortlist.EducationDoctorate
	default:
		return shortlist.EducationNone
	}
}

func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

// resolveCandidateName picks the candidate identifier: a name found in the
// resume text wins, then the model-extracted name, then the file name.
func resolveCandidateName(resume ai.Resume, modelName string) string {
	if name := candidateNameFromText(resume.Text); name != "" {
		return name
	}

	modelName = strings.TrimSpace(modelName)
	if modelName != "" && !strings.EqualFold(modelName, "unknown candidate") {
		return modelName
	}

	return resume.FallbackName
}

// Section headers and technology terms that disqualify a line from being a
// person's name.
var nonNameWords = []string{
	"RESUME", "CV", "CURRICULUM", "PROFILE", "OBJECTIVE",
	"SUMMARY", "EXPERIENCE", "EDUCATION", "SKILLS", "PROFESSIONAL",
	"PYTHON", "JAVA", "GOLANG", "JAVASCRIPT", "SQL", "AWS", "DOCKER",
}

// candidateNameFromText scans the first lines of the resume for something
// shaped like a person's name: two to four alphabetic words, no list
// punctuation, none of the usual section headers.
func candidateNameFromText(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 3 || len(line) > 50 {
			continue
		}

		if strings.ContainsAny(line, ",:;|@0123456789") {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}

		if !allAlphabetic(words) {
			continue
		}

		upper := strings.ToUpper(line)
		if containsAnyWord(upper, nonNameWords) {
			continue
		}

		return strings.Join(words, " ")
	}

	return ""
}

func allAlphabetic(words []string) bool {
	for _, word := range words {
		for _, r := range strings.TrimRight(word, ".") {
			if !unicode.IsLetter(r) && r != '-' && r != '\'' {
				return false
			}
		}
	}
	return true
}

func containsAnyWord(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
