package live

import (
	"encoding/json"
	stderrors "errors"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/command"
)

// Message types sent to sockets.
const (
	TypeDocument = "document"
	TypeEvent    = "event"
	TypeResult   = "result"
	TypeError    = "error"
)

// Message is the envelope of every outbound socket frame.
type Message struct {
	Type string `json:"type"`

	// HTML is the rendered document, for TypeDocument.
	HTML string `json:"html,omitempty"`

	// Selector, Event and Target describe a fired listener, for TypeEvent.
	Selector string `json:"selector,omitempty"`
	Event    string `json:"event,omitempty"`
	Target   string `json:"target,omitempty"`

	// Result answers the sender's command, for TypeResult.
	Result *command.Result `json:"result,omitempty"`

	// Error answers a failed command, for TypeError.
	Error *errors.MdomError `json:"error,omitempty"`
}

func (m Message) encode() []byte {
	data, err := json.Marshal(m)
	if err != nil {
		// Message holds only strings and JSON-safe values.
		panic(err)
	}
	return data
}

// asMdom converts err for the wire, defaulting to code.
func asMdom(err error, code string) *errors.MdomError {
	var me *errors.MdomError
	if stderrors.As(err, &me) {
		return me
	}
	return errors.New(code).Wrap(err)
}
