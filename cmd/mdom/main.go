// Command mdom reads and edits HTML documents through the mdom handle API
// and serves them live.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mdom/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	docPath    string
	write      bool
	jsonOut    bool
	loose      bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "mdom",
		Short: "Query and edit HTML documents from the command line",
		Long: `mdom wraps a node of an HTML document in a handle and reads or
changes it: attributes, inline styles, visibility, markup, text and
children.

Documents come from the store configured in mdom.json (a directory or an
S3 bucket), or from a single file with --doc. Changes are printed unless
--write saves them back.

Examples:
  mdom init --template list
  mdom attr '#app' title
  mdom attr '#app' title "" --write
  mdom style h1 color red --doc page.html
  mdom append ul tag:li=three text:! --write
  mdom serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "Path to mdom.json (default: nearest mdom.json)")
	flags.StringVarP(&g.docPath, "doc", "d", "", "Operate on this HTML file instead of the configured document")
	flags.BoolVarP(&g.write, "write", "w", false, "Save changes back to the store")
	flags.BoolVar(&g.jsonOut, "json", false, "Print results as JSON")
	flags.BoolVar(&g.loose, "loose", false, "Treat an empty value as a read")

	rootCmd.AddCommand(documentCmds(g)...)
	rootCmd.AddCommand(
		initCmd(),
		applyCmd(g),
		serveCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// printError prints err in the structured terminal format.
func printError(w io.Writer, err error) {
	errors.Fprint(w, err)
}
