package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mdom/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		cfg      templates.Config
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create mdom.json and a starting document",
		Long: `Create mdom.json and a starting document in dir (default ".").

Templates:
  ` + templateList() + `

Existing files are never overwritten.

Examples:
  mdom init
  mdom init site --template list --title Groceries
  mdom init --template s3 --bucket pages --prefix site/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := tmpl.Create(dir, cfg); err != nil {
				return err
			}

			abs, _ := filepath.Abs(dir)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s project in %s\n", tmpl.Name, abs)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&template, "template", "t", "blank", "Project template ("+strings.Join(templates.List(), ", ")+")")
	flags.StringVar(&cfg.Title, "title", "", "Page title")
	flags.StringVar(&cfg.Document, "document", "", "Document name (default index.html)")
	flags.IntVarP(&cfg.Port, "port", "p", 0, "Live server port (default 3000)")
	flags.StringVar(&cfg.Bucket, "bucket", "", "S3 bucket (s3 template)")
	flags.StringVar(&cfg.Region, "region", "", "S3 region (s3 template)")
	flags.StringVar(&cfg.Prefix, "prefix", "", "S3 key prefix (s3 template)")

	return cmd
}

func templateList() string {
	var lines []string
	for _, name := range templates.List() {
		tmpl, _ := templates.Get(name)
		lines = append(lines, fmt.Sprintf("%-8s %s", name, tmpl.Description))
	}
	return strings.Join(lines, "\n  ")
}
