package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/command"
)

func documentCmds(g *globals) []*cobra.Command {
	return []*cobra.Command{
		accessCmd(g, command.OpAttr, "attr <selector> <name> [value]", "Read or set an attribute"),
		accessCmd(g, command.OpStyle, "style <selector> <property> [value]", "Read or set an inline style property"),
		simpleCmd(g, command.OpShow, "Set display to block"),
		simpleCmd(g, command.OpHide, "Set display to none"),
		contentCmd(g, command.OpHTML, "html <selector> [markup]", "Read or replace the inner HTML"),
		contentCmd(g, command.OpText, "text <selector> [text]", "Read or replace the rendered text"),
		simpleCmd(g, command.OpChildren, "List the element children"),
		simpleCmd(g, command.OpParent, "Print the parent element"),
		simpleCmd(g, command.OpRemove, "Detach the node from its parent"),
		simpleCmd(g, command.OpString, "Print the node's string form"),
		appendCmd(g),
		replaceCmd(g),
	}
}

func accessCmd(g *globals, op, use, short string) *cobra.Command {
	var entries map[string]string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

With two arguments the value is read; with three it is written, so an
empty third argument writes the empty string. --set writes several
values at once, in key order.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := command.Command{Op: op, Selector: args[0]}
			switch {
			case len(entries) > 0:
				if len(args) != 1 {
					return errors.New("E041").WithDetail("--set takes only a selector argument")
				}
				c.Entries = entries
			case len(args) == 1:
				return errors.New("E041").WithDetailf("%s needs a name", op)
			default:
				c.Key = args[1]
				if len(args) == 3 {
					c.Value = command.String(args[2])
				}
			}
			return run(cmd, g, c)
		},
	}
	cmd.Flags().StringToStringVar(&entries, "set", nil, "Write key=value pairs")
	return cmd
}

func contentCmd(g *globals, op, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := command.Command{Op: op, Selector: args[0]}
			if len(args) == 2 {
				c.Value = command.String(args[1])
			}
			return run(cmd, g, c)
		},
	}
}

func simpleCmd(g *globals, op, short string) *cobra.Command {
	return &cobra.Command{
		Use:   op + " <selector>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, command.Command{Op: op, Selector: args[0]})
		},
	}
}

func appendCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "append <selector> <item>...",
		Short: "Append nodes in order",
		Long: `Append nodes to the end of the matched node, in order.

Items:
  text:hello        a text node
  sel:#intro        an existing node, moved
  tag:li            a new element
  tag:li=hello      a new element holding text
  json:{...}        {"tag":"li","html":"<b>x</b>"} and friends`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := parseItems(args[1:])
			if err != nil {
				return err
			}
			return run(cmd, g, command.Command{Op: command.OpAppend, Selector: args[0], Items: items})
		},
	}
}

func replaceCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "replace <selector> <item>",
		Short: "Put one node in place of the matched node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := parseItems(args[1:])
			if err != nil {
				return err
			}
			return run(cmd, g, command.Command{Op: command.OpReplace, Selector: args[0], Items: items})
		},
	}
}

// run applies one command to the document. Mutations are saved with
// --write and printed otherwise.
func run(cmd *cobra.Command, g *globals, c command.Command) error {
	c.Loose = g.loose

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

	res, err := command.Apply(e.host(doc), c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.Mutates() {
		if g.write {
			return e.save(ctx, doc)
		}
		_, err := io.WriteString(out, doc.String()+"\n")
		return err
	}
	return printResult(out, c, res, g.jsonOut)
}

func printResult(w io.Writer, c command.Command, res command.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(res)
	}
	switch c.Op {
	case command.OpChildren, command.OpParent:
		for _, n := range res.Nodes {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(w, res.Value)
	return err
}
