package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pumpline/pumpline/internal/wrapper"
)

var wrapCmd = &cobra.Command{
	Use:   "wrap [-- command args...]",
	Short: "Supervise a stdio MCP server, keeping stdout protocol-clean",
	Long: `wrap runs an MCP server as a child process and forwards only well-formed
JSON-RPC messages to stdout; stray output is redirected to stderr. Without an
explicit command it wraps "pumpline serve". The wrapper exits with the child's
exit code and forwards termination signals to it.`,
	RunE: runWrap,
}

func runWrap(cmd *cobra.Command, args []string) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	argv := args
	if len(argv) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return err
		}
		argv = []string{exe, "serve"}
	}

	code, err := wrapper.Run(context.Background(), argv, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	os.Exit(code)
	return nil
}
