package syntax

import (
	"fmt"
	"strings"

	"github.com/QPC-github/fathom/source"
)

// MessageKind classifies a parse diagnostic.
type MessageKind int

const (
	// LexicalError wraps a failure from the lexer. The token stream
	// ends at the failing position.
	LexicalError MessageKind = iota
	// UnexpectedToken reports a token the grammar cannot accept at
	// its position.
	UnexpectedToken
	// UnrecognizedEOF reports that the input ended while more tokens
	// were expected.
	UnrecognizedEOF
	// ExtraToken reports input left over after a complete term.
	ExtraToken
)

// String returns a human-readable kind name.
func (k MessageKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case UnexpectedToken:
		return "unexpected token"
	case UnrecognizedEOF:
		return "unexpected end of input"
	case ExtraToken:
		return "extra token"
	}
	return fmt.Sprintf("message kind(%d)", int(k))
}

// Message is one parse diagnostic. Found describes the offending
// token (or lexical error); Expected lists acceptable alternatives
// for UnexpectedToken and UnrecognizedEOF.
type Message struct {
	Span     source.ByteRange
	Kind     MessageKind
	Found    string
	Expected []string
}

// String renders the message for logs and the REPL.
func (m Message) String() string {
	buf := strings.Builder{}
	fmt.Fprintf(&buf, "%s: ", m.Span)
	switch m.Kind {
	case LexicalError:
		fmt.Fprintf(&buf, "lexical error: %s", m.Found)
	case UnexpectedToken:
		fmt.Fprintf(&buf, "unexpected token %s", m.Found)
	case UnrecognizedEOF:
		buf.WriteString("unexpected end of input")
	case ExtraToken:
		fmt.Fprintf(&buf, "extra token %s after end of term", m.Found)
	}
	if len(m.Expected) > 0 {
		fmt.Fprintf(&buf, ", expected %s", strings.Join(m.Expected, ", "))
	}
	return buf.String()
}

// Messages accumulates parse diagnostics in the order they were
// reported.
type Messages struct {
	msgs []Message
}

// Report appends a message.
func (ms *Messages) Report(m Message) {
	ms.msgs = append(ms.msgs, m)
}

// Len returns the number of accumulated messages.
func (ms *Messages) Len() int { return len(ms.msgs) }

// Empty reports whether no diagnostic has been reported. Downstream
// phases gate on it before elaborating a parsed module.
func (ms *Messages) Empty() bool { return len(ms.msgs) == 0 }

// At returns the i-th message in report order.
func (ms *Messages) At(i int) Message { return ms.msgs[i] }

// Slice returns the accumulated messages in report order. The
// returned slice is owned by the accumulator.
func (ms *Messages) Slice() []Message { return ms.msgs }
