package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/sitepress/scaffold"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init <dir>",
		Short:   "Create a new site with a config file and sample posts",
		Example: "  sitepress init brightline",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Creating new sitepress site: %s\n\n", dir)

			created, err := scaffold.Generate(dir, scaffold.NewData(dir))
			if err != nil {
				return err
			}
			for _, path := range created {
				fmt.Fprintf(out, "  created %s\n", path)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Done! Next steps:")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  cd %s\n", dir)
			fmt.Fprintln(out, "  sitepress check")
			fmt.Fprintln(out, "  sitepress serve")
			return nil
		},
	}
}
