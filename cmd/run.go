package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ksergeev/resume-shortlister/internal/ai"
	"github.com/ksergeev/resume-shortlister/internal/ai/gemini"
	"github.com/ksergeev/resume-shortlister/internal/document"
	"github.com/ksergeev/resume-shortlister/internal/logger"
	"github.com/ksergeev/resume-shortlister/internal/report"
	"github.com/ksergeev/resume-shortlister/internal/secrets"
	"github.com/ksergeev/resume-shortlister/internal/shortlist"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptSummaryTable = "Summary table"
	PromptDistribution = "Score distribution"
	PromptDetailed     = "Detailed rankings"
	PromptShowAll      = "Show all"
	PromptExport       = "Export results to file"
	PromptExit         = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Results are ready. What next?",
	Items: []string{PromptSummaryTable, PromptDistribution, PromptDetailed, PromptShowAll, PromptExport, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the resume-shortlister main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "print the full report and export it without interactive prompts")
	runCmd.Flags().StringP("export-file", "o", "", "file to export results to. Default is "+report.DefaultExportFile)
	runCmd.Flags().Float64("min-score", 0, "drop candidates scoring below this threshold")

	viper.BindPFlag("export-file", runCmd.Flags().Lookup("export-file"))
	viper.BindPFlag("min-score", runCmd.Flags().Lookup("min-score"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-shortlister", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.JobFile == "" {
		logger.Fatal("job description file is required under job-file")
	}

	if config.Resumes == nil {
		logger.Fatal("resume sources are required under the resumes section")
	}

	analyzer, err := newAnalyzer(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal(
			"building ai analyzer",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	job, err := document.Read(config.JobFile)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	logger.Info("job description loaded",
		zap.String("path", job.Path),
		zap.Int("characters", len(job.Text)),
	)

	requirements, err := analyzer.ExtractRequirements(ctx, job.Text)
	if err != nil {
		logger.Fatal("extracting job requirements", zap.Error(err))
	}

	logger.Info("job requirements extracted",
		zap.String("job_title", requirements.JobTitle),
		zap.Int("required_skills", len(requirements.RequiredSkills)),
		zap.Float64("min_experience_years", requirements.MinExperienceYears),
		zap.String("education_level", string(requirements.EducationLevel)),
	)

	paths, err := document.Resolve(*config.Resumes)
	if err != nil {
		logger.Fatal("resolving resume files", zap.Error(err))
	}

	logger.Info("resumes resolved", zap.Int("count", len(paths)))

	analyses := evaluateAll(ctx, analyzer, requirements, paths, logger)

	results, skipped := shortlist.Rank(analyses)
	for _, err := range skipped {
		logger.Warn("candidate skipped by validation", zap.Error(err))
	}

	if config.MinScore > 0 {
		before := len(results)
		results = shortlist.ApplyMinScore(results, config.MinScore)
		logger.Info("applied minimum score threshold",
			zap.Float64("min_score", config.MinScore),
			zap.Int("dropped", before-len(results)),
			zap.Int("left", len(results)),
		)
	}

	summary := shortlist.Summarize(results)

	logger.Info("ranking complete", zap.Int("candidates", summary.Count))

	if cmd.Flag("auto-approve").Value.String() == "true" {
		report.Full(os.Stdout, results, summary)
		if err := exportResults(config, results, summary, logger); err != nil {
			logger.Fatal("exporting results", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, config, results, summary, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, config *Config, results []*shortlist.RankedResult, summary *shortlist.Summary, logger *zap.Logger) error {
	switch action {
	case PromptSummaryTable:
		report.SummaryTable(os.Stdout, results)
		return nil
	case PromptDistribution:
		report.Distribution(os.Stdout, summary)
		return nil
	case PromptDetailed:
		report.Rankings(os.Stdout, results)
		return nil
	case PromptShowAll:
		report.Full(os.Stdout, results, summary)
		return nil
	case PromptExport:
		return exportResults(config, results, summary, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func exportResults(config *Config, results []*shortlist.RankedResult, summary *shortlist.Summary, logger *zap.Logger) error {
	path := config.ExportFile
	if path == "" {
		path = report.DefaultExportFile
	}

	if err := report.Export(path, results, summary); err != nil {
		return err
	}

	logger.Info("results exported", zap.String("filename", path))
	return nil
}

// evaluateAll runs the AI evaluation for every resolved resume. A failure
// marks that candidate with a zero-score error entry instead of aborting the
// whole batch.
func evaluateAll(ctx context.Context, analyzer ai.Analyzer, requirements *shortlist.RequirementSet, paths []string, log *zap.Logger) []*shortlist.CandidateAnalysis {
	analyses := make([]*shortlist.CandidateAnalysis, 0, len(paths))

	for _, path := range paths {
		file, err := document.Read(path)
		if err != nil {
			log.Warn("skipping unreadable resume", zap.String("path", path), zap.Error(err))
			continue
		}

		log.Info("analyzing resume", zap.String("path", path))

		analysis, err := analyzer.EvaluateResume(ctx, requirements, ai.Resume{
			FallbackName: file.Name(),
			Text:         file.Text,
		})
		if err != nil {
			log.Warn("AI evaluation failed",
				logger.CandidateField(file.Name()),
				zap.Error(err),
			)
			analyses = append(analyses, errorAnalysis(file.Name(), err))
			continue
		}

		log.Info("resume analyzed",
			logger.CandidateField(analysis.Candidate),
			zap.Int("matched_skills", len(analysis.MatchedSkills)),
			zap.Int("missing_skills", len(analysis.MissingSkills)),
		)

		analyses = append(analyses, analysis)
	}

	return analyses
}

// errorAnalysis is the zero-score placeholder for a candidate whose
// evaluation failed.
func errorAnalysis(name string, err error) *shortlist.CandidateAnalysis {
	return &shortlist.CandidateAnalysis{
		Candidate: name,
		Summary:   fmt.Sprintf("analysis failed: %v", err),
	}
}

func newAnalyzer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Analyzer, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("ai.gemini configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAnalyzer(generator, cfg.Gemini.MaxLogLength, genLogger), nil
}
