package cmd

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/session"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "jobmatch"
	envPrefix = "JOBMATCH"
)

type Config struct {
	API     *APIConfig     `mapstructure:"api"`
	Session *SessionConfig `mapstructure:"session"`
	AI      *AIConfig      `mapstructure:"ai"`
	Metrics *MetricsConfig `mapstructure:"metrics"`
}

type APIConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Token     string        `mapstructure:"token" json:"-"`
	TokenFile string        `mapstructure:"token-file"`
	UserAgent string        `mapstructure:"user-agent"`
}

type SessionConfig struct {
	Backend string              `mapstructure:"backend"`
	File    string              `mapstructure:"file"`
	Redis   session.RedisConfig `mapstructure:"redis"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobmatch submits resumes for AI evaluation and matches posted jobs with candidates",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults()

	for key, env := range map[string]string{
		"api.token-file":         envPrefix + "_API_TOKEN_FILE",
		"ai.gemini.api-key":      "GEMINI_API_KEY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-url", "", "base url of the evaluation and matching service")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to a file instead of stderr")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func setDefaults() {
	viper.SetDefault("api.url", "http://localhost:3000")
	viper.SetDefault("api.timeout", "60s")
	viper.SetDefault("api.token", "")
	viper.SetDefault("api.user-agent", app+"/"+version)

	viper.SetDefault("session.backend", "file")
	viper.SetDefault("session.file", "")
	viper.SetDefault("session.redis.address", "localhost:6379")
	viper.SetDefault("session.redis.password", "")
	viper.SetDefault("session.redis.db", 0)

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-pro")
	viper.SetDefault("ai.gemini.max-log-length", 200)

	viper.SetDefault("metrics.textfile", "")
}

func initConfig() {
	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicitly requested config must exist and parse.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
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
