package main

import (
	"encoding/json"
	"strings"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/command"
)

// parseItem reads one insertion argument:
//
//	text:hello        a text node
//	sel:#intro        an existing node, moved
//	tag:li            a new element
//	tag:li=hello      a new element holding text
//	json:{...}        a command.Item literal
func parseItem(arg string) (command.Item, error) {
	kind, rest, ok := strings.Cut(arg, ":")
	if !ok {
		return command.Item{}, badItem(arg)
	}
	switch kind {
	case "text":
		return command.Item{Text: command.String(rest)}, nil
	case "sel":
		if rest == "" {
			return command.Item{}, badItem(arg)
		}
		return command.Item{Selector: rest}, nil
	case "tag":
		tag, text, hasText := strings.Cut(rest, "=")
		if tag == "" {
			return command.Item{}, badItem(arg)
		}
		it := command.Item{Tag: tag}
		if hasText {
			it.Text = command.String(text)
		}
		return it, nil
	case "json":
		var it command.Item
		if err := json.Unmarshal([]byte(rest), &it); err != nil {
			return command.Item{}, errors.New("E041").WithDetailf("item %q: %v", arg, err)
		}
		return it, nil
	}
	return command.Item{}, badItem(arg)
}

func parseItems(args []string) ([]command.Item, error) {
	items := make([]command.Item, 0, len(args))
	for _, a := range args {
		it, err := parseItem(a)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func badItem(arg string) error {
	return errors.New("E041").
		WithDetailf("item %q", arg).
		WithSuggestion("Use text:..., sel:..., tag:name[=text] or json:{...}")
}
