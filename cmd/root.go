package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "finploy-matcher"
)

type Config struct {
	Jobs        *TableConfig  `mapstructure:"jobs"`
	Candidates  *TableConfig  `mapstructure:"candidates"`
	Output      *OutputConfig `mapstructure:"output"`
	ExcludeFile string        `mapstructure:"exclude-file"`
	Exclude     *struct {
		Candidates []string
	}
}

// TableConfig selects an input workbook and the recognized columns in it.
// Column overrides change only which column is read, never the matching
// semantics.
type TableConfig struct {
	File      string `mapstructure:"file"`
	IDColumn  string `mapstructure:"id-column"`
	KeyColumn string `mapstructure:"key-column"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "finploy-matcher matches job postings to candidates by composite key and exports the pairs to one Excel report",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("exclude-file", "MATCHER_EXCLUDE_FILE"); err != nil {
		log.Fatalf("binding MATCHER_EXCLUDE_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is finploy-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("jobs.id-column", "job_id")
	viper.SetDefault("jobs.key-column", "composit_key")
	viper.SetDefault("candidates.id-column", "candidate_id")
	viper.SetDefault("candidates.key-column", "composit_key")
	viper.SetDefault("output.dir", "matchfiles")
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
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
