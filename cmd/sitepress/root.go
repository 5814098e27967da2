package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "sitepress",
		Short: "sitepress - an agency blog served with Go, Echo and templ",
		Long: `sitepress serves a small-business blog: a filterable listing with a
featured post, post pages with related articles and SEO metadata, a sitemap
and an RSS feed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(opts.envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading config")

	cmd.AddCommand(
		newServeCmd(opts),
		newCheckCmd(opts),
		newInitCmd(),
		newVersionCmd(),
	)
	return cmd
}

// loadEnvFile exports the variables of path unless they are already set. A
// missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
