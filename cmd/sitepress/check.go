package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/sitepress"
	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/content"
	"github.com/eringen/sitepress/logger"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Validate content and print what the blog will show",
		Long: `check loads a posts YAML file or a directory of Markdown posts (default: the
content path from the config, or the built-in sample posts), validates every
record and prints the listing the server would render.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := sitepress.LoadConfig(root.configFile)
				if err != nil {
					return err
				}
				path = cfg.ContentPath
			}

			log, err := logger.NewDevelopment("warn")
			if err != nil {
				return err
			}
			defer log.Sync()

			posts, err := content.Load(path, log)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), posts)
		},
	}
}

func printReport(out io.Writer, posts []blog.Post) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tCATEGORY\tDATE\tFEATURED")
	for _, p := range posts {
		mark := ""
		if p.Featured {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Slug, p.CategoryLabel, blog.FormatDate(p.Date), mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d posts\n", len(posts))
	for _, c := range blog.CollectCategories(posts) {
		n := len(blog.FilterGrid(posts, c.Key))
		fmt.Fprintf(out, "  %-20s %d in grid\n", c.Label, n)
	}

	if i := blog.FeaturedIndex(posts); i >= 0 {
		fmt.Fprintf(out, "featured slot: %s\n", posts[i].Slug)
	} else {
		fmt.Fprintln(out, "featured slot: empty")
	}

	report := content.Inspect(posts)
	for _, slug := range report.DuplicateSlugs {
		fmt.Fprintf(out, "warning: duplicate slug %q, only the first post is reachable\n", slug)
	}
	if len(report.Featured) > 1 {
		fmt.Fprintf(out, "warning: %d featured posts, the others appear in the grid\n", len(report.Featured))
	}
	return nil
}
