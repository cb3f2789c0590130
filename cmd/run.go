package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/finploy/matcher/internal/filtering"
	"github.com/finploy/matcher/internal/logger"
	"github.com/finploy/matcher/internal/matching"
	"github.com/finploy/matcher/internal/xlsx"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	// reportFileName is the single combined artifact of a run.
	reportFileName = "all_job_candidate_matches.xlsx"
)

var overwritePrompt = promptui.Select{
	Label: "Report file already exists. Overwrite?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching pipeline and export the combined report",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before overwriting an existing report")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with placed candidates to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the finploy-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Jobs == nil || config.Jobs.File == "" {
		logger.Fatal("jobs file is required under jobs.file")
	}

	if config.Candidates == nil || config.Candidates.File == "" {
		logger.Fatal("candidates file is required under candidates.file")
	}

	jobs, err := xlsx.ReadTable(config.Jobs.File)
	if err != nil {
		logger.Fatal("loading jobs", zap.Error(err))
	}
	logger.Info("loading jobs", zap.Int("count", jobs.Len()), zap.String("file", config.Jobs.File))

	candidates, err := xlsx.ReadTable(config.Candidates.File)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}
	logger.Info("loading candidates", zap.Int("count", candidates.Len()), zap.String("file", config.Candidates.File))

	if err := jobs.RequireColumns(config.Jobs.IDColumn, config.Jobs.KeyColumn); err != nil {
		logger.Fatal("checking jobs table columns", zap.Error(err))
	}

	if err := candidates.RequireColumns(config.Candidates.IDColumn, config.Candidates.KeyColumn); err != nil {
		logger.Fatal("checking candidates table columns", zap.Error(err))
	}

	candidates, err = filtering.Run(
		prepareFilterConfig(config),
		filtering.Deps{Logger: logger},
		prepareFilters(),
		candidates,
	)
	if err != nil {
		logger.Fatal("filtering candidates", zap.Error(err))
	}

	index := matching.BuildIndex(candidates, matching.CandidateColumns{
		ID:  config.Candidates.IDColumn,
		Key: config.Candidates.KeyColumn,
	}, logger)

	logger.Info("building candidate index",
		zap.Int("indexed", index.Len()),
		zap.Int("skipped", index.Skipped()),
		zap.Int("unique_prefixes", len(index.Prefixes())),
	)

	results := matching.MatchAll(jobs, matching.JobColumns{
		ID:  config.Jobs.IDColumn,
		Key: config.Jobs.KeyColumn,
	}, index, logger)

	logger.Info("matching jobs",
		zap.Int("jobs_matched", results.Len()),
		zap.Int("jobs_skipped", results.Skipped()),
		zap.Int("total_matches", results.Matched()),
	)

	report := matching.Flatten(results, candidates, config.Jobs.IDColumn)

	if report.Empty() {
		printSummary(logger, results, "")
		logger.Info("exiting", zap.String("reason", "no matches found across all jobs, nothing to export"))
		return
	}

	output, err := exportReport(cmd, logger, config, report)
	if err != nil {
		logger.Fatal("exporting the report", zap.Error(err))
	}

	printSummary(logger, results, output)

	if output == "" {
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
	}
}

// exportReport writes the combined report under the configured output
// directory. It returns an empty path without error when the user declines to
// overwrite an existing report.
func exportReport(cmd *cobra.Command, logger *zap.Logger, config *Config, report *matching.Report) (string, error) {
	if err := xlsx.EnsureDir(config.Output.Dir); err != nil {
		return "", err
	}

	path := filepath.Join(config.Output.Dir, reportFileName)

	if xlsx.Exists(path) && cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := overwritePrompt.Run()
		if err != nil {
			return "", err
		}
		if action != PromptYes {
			return "", nil
		}
	}

	if err := xlsx.WriteReport(path, report); err != nil {
		return "", err
	}

	logger.Info("exporting matches to a single workbook",
		zap.Int("rows", report.Total),
		zap.String("file", path),
	)

	return path, nil
}

func prepareFilters() []filtering.Filter {
	return []filtering.Filter{
		filtering.NewExcludeIDs(),
		filtering.NewExcludeFile(),
	}
}

func prepareFilterConfig(config *Config) *filtering.Config {
	cfg := &filtering.Config{
		IDColumn: config.Candidates.IDColumn,
	}
	if config.Exclude != nil {
		cfg.Candidates = config.Exclude.Candidates
	}
	return cfg
}

// printSummary enumerates every processed job's match status.
func printSummary(logger *zap.Logger, results *matching.Results, output string) {
	for _, result := range results.Entries() {
		status := "HAS MATCHES"
		if result.Count() == 0 {
			status = "NO MATCHES"
		}
		logger.Info("job summary",
			zap.String("job_id", result.JobID),
			zap.String("status", status),
			zap.Int("candidates", result.Count()),
			zap.Float64("target_ceiling", result.Ceiling),
		)
	}

	fields := []zap.Field{
		zap.Int("jobs_processed", results.Len()),
		zap.Int("jobs_skipped", results.Skipped()),
		zap.Int("total_matches", results.Matched()),
	}
	if output != "" {
		fields = append(fields, zap.String("file", output))
	}

	logger.Info("summary", fields...)
}
