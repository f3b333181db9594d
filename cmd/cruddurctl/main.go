// Command cruddurctl is a developer tool for the SQL templates behind the
// Cruddur backend. It resolves and prints templates, runs them through the
// same gateway the server uses, and mints bearer tokens for local testing.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	templateDir string
	databaseURL string
	verbose     bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "cruddurctl",
		Short:         "Inspect and run Cruddur SQL templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&opts.templateDir, "template-dir", envOr("CRUDDUR_DATABASE_TEMPLATE_DIR", "db/sql"),
		"Root directory of the SQL templates")
	rootCmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", envOr("CONNECTION_URL", ""),
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log executed SQL to stderr")

	rootCmd.AddCommand(
		templateCmd(opts),
		queryCmd(opts),
		tokenCmd(),
	)
	return rootCmd
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
