package main

import (
	"fmt"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func templateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Resolve and print SQL templates",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path <segments...>",
			Short: "Print the file a template key resolves to",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				templates := postgres.NewTemplateStore(opts.templateDir, opts.logger(cmd.ErrOrStderr()), nil)
				fmt.Fprintln(cmd.OutOrStdout(), templates.Path(args...))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <segments...>",
			Short: "Print the text of a template",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				templates := postgres.NewTemplateStore(opts.templateDir, opts.logger(cmd.ErrOrStderr()), nil)
				sql, err := templates.Load(args...)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), sql)
				return nil
			},
		},
	)
	return cmd
}
