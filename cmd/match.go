package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caseworks/heartmatch/internal/ai"
	"github.com/caseworks/heartmatch/internal/ai/gemini"
	"github.com/caseworks/heartmatch/internal/ai/ollama"
	"github.com/caseworks/heartmatch/internal/logger"
	"github.com/caseworks/heartmatch/internal/matching"
	"github.com/caseworks/heartmatch/internal/pii"
	"github.com/caseworks/heartmatch/internal/profile"
	"github.com/caseworks/heartmatch/internal/screening"
	"github.com/caseworks/heartmatch/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExport            = "Export top matches to file"
	PromptReport            = "Show compatibility report"
	PromptDumpRoster        = "Dump roster to file"
	PromptAppendExcludeFile = "Append all families to exclude file"
	PromptQuit              = "Quit"
	PromptBack              = "back"
)

var errExit = errors.New("exit requested")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run the matching flow for the configured child profile",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolP("auto-approve", "y", false, "export top matches without asking what to do next")
	matchCmd.Flags().StringP("exclude-file", "e", "", "special file with families to exclude. Default is unset.")
	matchCmd.Flags().String("export-dir", "", "directory for exported results. Default is the current directory.")

	viper.BindPFlag("exclude-file", matchCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("export.dir", matchCmd.Flags().Lookup("export-dir"))
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting heartmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Child == nil {
		logger.Fatal("a child profile is required under the child section to run matching")
	}

	child := config.Child
	if !pii.Compliant(child.Map(), profile.ChildRequiredFields...) {
		logger.Fatal("child profile is missing required fields",
			zap.Strings("required_fields", profile.ChildRequiredFields),
			zap.String("hint", "fill in age, interests and location under the child section"),
		)
	}

	families, err := getRoster(config, logger)
	if err != nil {
		logger.Fatal("getting the family roster", zap.Error(err))
	}

	if families.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no families in roster"))
		return
	}

	steps := []screening.Filter{
		screening.NewCompliance(profile.FamilyRequiredFields),
		screening.NewExcludeFile(viper.GetString("exclude-file")),
	}

	screened, err := screening.Run(ctx, screening.Deps{Logger: logger}, steps, families)
	if err != nil {
		logger.Fatal("screening failed", zap.Error(err))
	}
	families = screened

	if families.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no families left after screening"))
		return
	}

	matcher, err := newMatcher(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building a matcher", zap.Error(err))
	}

	engine := matching.NewEngine(matcher, logger)
	result := engine.Match(ctx, child, families)

	if result.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no recommendations produced"))
		return
	}

	for i, rec := range result.Items {
		logger.Info("match",
			zap.Int("rank", i+1),
			zap.String("family_id", rec.FamilyID),
			zap.Int("score", rec.Score),
		)
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := export(config, result, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{PromptExport, PromptReport, PromptDumpRoster, PromptAppendExcludeFile, PromptQuit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, config, child, families, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, config *Config, child *profile.ChildProfile, families *profile.Families, result *matching.Result, logger *zap.Logger) error {
	switch action {
	case PromptExport:
		return export(config, result, logger)
	case PromptReport:
		return showReport(child, families, result, logger)
	case PromptDumpRoster:
		filename, err := families.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump roster to file: %w", err)
		}
		logger.Info("dumping roster to file", zap.String("filename", filename))
		return nil
	case PromptAppendExcludeFile:
		return appendToExcludeFile(families, logger)
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func export(config *Config, result *matching.Result, logger *zap.Logger) error {
	dir := "."
	limit := matching.DefaultExportLimit
	if config.Export != nil {
		if config.Export.Dir != "" {
			dir = config.Export.Dir
		}
		if config.Export.TopN > 0 {
			limit = config.Export.TopN
		}
	}

	path, err := result.ExportToDir(dir, limit)
	if err != nil {
		return fmt.Errorf("export results: %w", err)
	}

	logger.Info("exported top matches",
		zap.String("filename", path),
		zap.Int("top_n", limit),
		zap.Int("matches", result.Len()),
	)
	return nil
}

func showReport(child *profile.ChildProfile, families *profile.Families, result *matching.Result, logger *zap.Logger) error {
	items := make([]string, 0, result.Len()+1)
	for i, rec := range result.Items {
		items = append(items, fmt.Sprintf("#%d %s / score %d", i+1, rec.FamilyID, rec.Score))
	}

	reportPrompt := promptui.Select{
		Label: "Choose a match and press ENTER",
		Items: append(items, PromptBack),
	}

	_, selected, err := reportPrompt.Run()
	if err != nil {
		return err
	}

	if selected == PromptBack {
		return nil
	}

	familyID := strings.Split(selected, " ")[1]
	rec := findRecommendation(result, familyID)
	family := families.FindByID(familyID)
	if rec == nil || family == nil {
		return fmt.Errorf("there is no such family id %s", familyID)
	}

	fmt.Println(matching.Report(child, family, rec))
	return nil
}

func findRecommendation(result *matching.Result, familyID string) *matching.Recommendation {
	for _, rec := range result.Items {
		if rec.FamilyID == familyID {
			return rec
		}
	}
	return nil
}

func appendToExcludeFile(families *profile.Families, logger *zap.Logger) error {
	path := viper.GetString("exclude-file")
	if path == "" {
		return errors.New("exclude file is not configured")
	}

	excluded, err := profile.GetExcludedFamiliesFromFile(path)
	if err != nil {
		return err
	}

	excluded.Append(families.ToExcluded("excluded by caseworker"))

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path))
	return nil
}

func getRoster(config *Config, log *zap.Logger) (*profile.Families, error) {
	if config.RosterFile == "" {
		families := profile.SeedFamilies()
		log.Info("using built-in seed roster", zap.Int("count", families.Len()))
		return families, nil
	}

	families, err := profile.LoadRoster(config.RosterFile)
	if err != nil {
		return nil, err
	}

	log.Info("loaded roster file",
		zap.String("path", config.RosterFile),
		zap.Int("count", families.Len()),
	)
	return families, nil
}

func newMatcher(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Matcher, error) {
	if cfg == nil {
		cfg = &AIConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = "ollama"
	}

	var generator ai.ContentGenerator
	switch provider {
	case "ollama":
		ollamaCfg := &ollama.Config{}
		if cfg.Ollama != nil {
			ollamaCfg = &ollama.Config{
				Endpoint:    cfg.Ollama.Endpoint,
				Models:      cfg.Ollama.Models,
				Temperature: cfg.Ollama.Temperature,
				NumPredict:  cfg.Ollama.NumPredict,
				Timeout:     time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second,
			}
		}
		generator = ollama.NewGenerator(ollamaCfg, logger.WithProvider(log, provider, ""))

	case "gemini":
		if cfg.Gemini == nil {
			return nil, errors.New("gemini configuration is required when the gemini provider is selected")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		generator, err = gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, logger.WithProvider(log, provider, cfg.Gemini.Model))
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	matcherLogger := logger.WithProvider(log, provider, generator.Model())

	return ai.NewMatcher(generator, cfg.MaxLogLength, matcherLogger), nil
}
