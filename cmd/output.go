package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"onedocs/internal/ai/analyzer"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen, color.Bold)
)

// printError 错误写到 stderr，能归类的附带处理建议
func printError(err error) {
	errorColor.Fprintf(os.Stderr, "✗ %v\n", err)
	if hint := analyzer.Hint(err); hint != "" {
		warningColor.Fprintf(os.Stderr, "\n%s\n", hint)
	}
}

func printSuccess(format string, args ...any) {
	successColor.Fprintf(os.Stderr, "✓ %s\n", fmt.Sprintf(format, args...))
}
