package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"onedocs/internal/config"
	"onedocs/internal/model"
	"onedocs/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a document with the configured model",
	Long: `Send the document text together with a system prompt to the chat completion
API and print the reply to stdout.

  onedocs analyze --prompt "总结要点" --file report.txt
  cat report.txt | onedocs analyze --prompt-file prompt.json --structured --file -`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	flags.StringP("prompt", "p", "", "system prompt text")
	flags.String("prompt-file", "", "read system prompt from file")
	flags.StringP("file", "f", "-", "document text file, - for stdin")
	flags.Bool("structured", false, `system prompt is a {"role","instructions"} JSON descriptor`)
	flags.Bool("prefix", true, "prefix the document with an explanatory phrase")
	flags.Bool("generation-params", false, "send max_tokens and temperature")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.AI.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	flags := cmd.Flags()
	applyPromptFlags(cmd, cfg)

	systemPrompt, _ := flags.GetString("prompt")
	if path, _ := flags.GetString("prompt-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read prompt file: %w", err)
		}
		systemPrompt = string(data)
	}

	docPath, _ := flags.GetString("file")
	content, err := readDocument(cmd.InOrStdin(), docPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := service.NewAnalyzeService(&cfg.AI)
	result, err := svc.Analyze(ctx, &model.AnalyzeRequest{
		SystemPrompt: systemPrompt,
		TextContent:  content,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
	return err
}

// applyPromptFlags 显式传入的开关覆盖配置文件
// serve 也绑定了 ai.prompt.structured，这里不再走 viper 以免互相覆盖
func applyPromptFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("structured") {
		cfg.AI.Prompt.Structured, _ = flags.GetBool("structured")
	}
	if flags.Changed("prefix") {
		cfg.AI.Prompt.PrefixContent, _ = flags.GetBool("prefix")
	}
	if flags.Changed("generation-params") {
		cfg.AI.Options.GenerationParams, _ = flags.GetBool("generation-params")
	}
}

// readDocument 读取文档内容，- 表示 stdin
func readDocument(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" || path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}
