package cmd

import (
	"log"

	"github.com/caseworks/heartmatch/internal/profile"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "heartmatch"
)

type Config struct {
	Child       *profile.ChildProfile `mapstructure:"child"`
	RosterFile  string                `mapstructure:"roster-file"`
	ExcludeFile string                `mapstructure:"exclude-file"`
	Export      *ExportConfig         `mapstructure:"export"`
	AI          *AIConfig             `mapstructure:"ai"`
}

type ExportConfig struct {
	Dir  string `mapstructure:"dir"`
	TopN int    `mapstructure:"top-n"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Ollama       *OllamaConfig `mapstructure:"ollama"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type OllamaConfig struct {
	Endpoint       string   `mapstructure:"endpoint"`
	Models         []string `mapstructure:"models"`
	Temperature    float64  `mapstructure:"temperature"`
	NumPredict     int      `mapstructure:"num-predict"`
	TimeoutSeconds int      `mapstructure:"timeout-seconds"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "heartmatch is a cli for matching a child profile against a roster of prospective families",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is heartmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the match command now. If there is no config, we
	// can skip initialization.
	if matchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
