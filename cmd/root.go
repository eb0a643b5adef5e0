package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"onedocs/internal/config"
	"onedocs/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "onedocs",
	Short: "OneDocs - AI document analyzer",
	Long: `OneDocs sends document text to an OpenAI-compatible chat completion API
and prints the model's analysis. It can run as a one-shot command or as a
local HTTP bridge for the desktop frontend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	// AI flags, shared by analyze/ping/serve
	flags.String("provider", "openai", "AI provider preset (openai/deepseek/glm/ark/azure)")
	flags.String("engine", "http", "request engine (http/eino)")
	flags.String("api-key", "", "API key (recommend using env: ONEDOCS_AI_API_KEY)")
	flags.String("base-url", "", "API base URL (default: provider preset)")
	flags.StringP("model", "m", "", "model name (default: provider preset)")
	flags.Duration("timeout", 0, "request timeout (default: 2m)")

	// Log flags
	flags.String("log-level", "info", "log level (trace/debug/info/warn/error/fatal)")
	flags.String("log-format", "console", "log format (json/console)")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("ai.provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("ai.engine", flags.Lookup("engine"))
	_ = viper.BindPFlag("ai.api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("ai.base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("ai.model", flags.Lookup("model"))
	_ = viper.BindPFlag("ai.timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.onedocs")
	}

	// 环境变量设置
	viper.SetEnvPrefix("ONEDOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 7080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "180s")

	// AI
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.engine", "http")
	viper.SetDefault("ai.timeout", "120s")
	viper.SetDefault("ai.prompt.structured", false)
	viper.SetDefault("ai.prompt.prefix_content", true)
	viper.SetDefault("ai.options.generation_params", false)
	viper.SetDefault("ai.options.temperature", 0.7)
	viper.SetDefault("ai.options.max_tokens", 4000)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stderr")
	viper.SetDefault("log.time_format", "RFC3339")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
