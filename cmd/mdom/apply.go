package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/command"
)

func applyCmd(g *globals) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply JSON commands read from stdin, one per line",
		Long: `Apply JSON commands read from stdin, one per line, to one document.

Each line produces one JSON line on stdout: the result, or
{"error": {...}} for a failed command. The first failure stops the run
unless --keep-going is set. With --write the document is saved once,
after the last command run, whenever it differs from the loaded one.
Changes made before a failure are saved, including the entries a failed
bulk attr or style write applied before its bad entry.

Example:
  printf '%s\n' \
    '{"op":"attr","selector":"#app","key":"title","value":"Home"}' \
    '{"op":"text","selector":"h1"}' | mdom apply --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			doc, err := e.load(ctx, false)
			if err != nil {
				return err
			}
			host := e.host(doc)
			loaded := doc.String()

			out := json.NewEncoder(cmd.OutOrStdout())
			var firstErr error

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
			for line := 1; scanner.Scan(); line++ {
				text := bytes.TrimSpace(scanner.Bytes())
				if len(text) == 0 {
					continue
				}
				c, err := command.Parse(text)
				if err == nil {
					c.Loose = c.Loose || g.loose
					var res command.Result
					res, err = command.Apply(host, c)
					if err == nil {
						if encErr := out.Encode(res); encErr != nil {
							return encErr
						}
						continue
					}
				}

				e.logger.Debug("command failed", "line", line, "error", err)
				if encErr := out.Encode(map[string]any{"error": errors.FromError(err, "E041")}); encErr != nil {
					return encErr
				}
				if firstErr == nil {
					firstErr = fmt.Errorf("line %d: %w", line, err)
				}
				if !keepGoing {
					break
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			if g.write && doc.String() != loaded {
				if err := e.save(ctx, doc); err != nil {
					return err
				}
			}
			return firstErr
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Continue after a failed command")
	return cmd
}
