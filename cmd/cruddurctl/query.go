package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/config"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/postgres"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
	"github.com/spf13/cobra"
)

var queryModes = []string{postgres.ModeCommit, postgres.ModeObject, postgres.ModeArray, postgres.ModeValue}

func queryCmd(opts *rootOptions) *cobra.Command {
	var (
		params         []string
		acquireTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "query <mode> <segments...>",
		Short: "Run a template through the gateway",
		Long: "Run a template in one of the modes " + strings.Join(queryModes, ", ") + ".\n" +
			"Parameters are passed as text; PostgreSQL casts them to the column types.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := args[0]
			if !slices.Contains(queryModes, mode) {
				return fmt.Errorf("unknown mode %q (want one of %s)", mode, strings.Join(queryModes, ", "))
			}

			p, err := parseParams(params)
			if err != nil {
				return err
			}
			if opts.databaseURL == "" {
				return fmt.Errorf("no database url: set CONNECTION_URL or --database-url")
			}

			logger := opts.logger(cmd.ErrOrStderr())
			templates := postgres.NewTemplateStore(opts.templateDir, logger, nil)
			sql, err := templates.Load(args[1:]...)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
				URL:            opts.databaseURL,
				MaxConns:       1,
				AcquireTimeout: acquireTimeout,
			}, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			return runQuery(ctx, postgres.NewDb(pool, logger, nil), mode, sql, p, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Named parameter as key=value (repeatable)")
	cmd.Flags().DurationVar(&acquireTimeout, "acquire-timeout", postgres.DefaultAcquireTimeout,
		"How long to wait for a connection")
	return cmd
}

// runQuery executes sql in mode and writes the result to out.
func runQuery(ctx context.Context, gw store.Gateway, mode, sql string, params store.Params, out io.Writer) error {
	switch mode {
	case postgres.ModeCommit:
		res := gw.QueryCommit(ctx, sql, params)
		if res.Failed() {
			return res.Err()
		}
		if v, ok := res.Value(); ok {
			fmt.Fprintf(out, "%s %v\n", res.State(), formatValue(v))
			return nil
		}
		fmt.Fprintln(out, res.State())
		return nil

	case postgres.ModeObject:
		raw, err := gw.QueryObjectJSON(ctx, sql, params)
		if err != nil {
			return err
		}
		return writeJSON(out, raw)

	case postgres.ModeArray:
		raw, err := gw.QueryArrayJSON(ctx, sql, params)
		if err != nil {
			return err
		}
		return writeJSON(out, raw)

	case postgres.ModeValue:
		v, err := gw.QueryValue(ctx, sql, params)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatValue(v))
		return nil
	}
	return fmt.Errorf("unknown mode %q", mode)
}

// parseParams turns key=value pairs into gateway parameters.
func parseParams(pairs []string) (store.Params, error) {
	params := store.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", pair)
		}
		if _, dup := params[key]; dup {
			return nil, fmt.Errorf("parameter %q given more than once", key)
		}
		params[key] = value
	}
	return params, nil
}

func writeJSON(out io.Writer, raw json.RawMessage) error {
	if raw == nil {
		_, err := fmt.Fprintln(out, "null")
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

// formatValue prints byte-array UUIDs the way PostgreSQL does.
func formatValue(v any) any {
	if b, ok := v.([16]byte); ok {
		return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
	}
	return v
}
