// Package diag turns the raw "Kind: message" / "Kind: /xpath: message"
// strings that pkg/assembler and pkg/xmldriver hand to an ErrorHandler into
// structured diagnostic values, so a caller such as cmd/ntac can render
// them as JSON, filter by kind, or correlate them to one parse session.
package diag

import (
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
)

// Severity distinguishes an error from a warning, mirroring the two
// ErrorHandler methods every frontend calls.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is the value-object form of one HandleError/HandleWarning
// call: spec.md §7/§9 asks for "per-error value objects" in place of the
// teacher's single global error buffer.
type Diagnostic struct {
	Session  uuid.UUID `json:"session"`
	Severity Severity  `json:"severity"`
	Kind     string    `json:"kind"`
	XPath    string    `json:"xpath,omitempty"`
	Message  string    `json:"message"`
}

// String reconstructs the original "Kind: message" / "Kind: /xpath: message"
// shape, so a Diagnostic round-trips back to what a plain-text consumer
// (e.g. a terminal) expects.
func (d Diagnostic) String() string {
	if d.XPath != "" {
		return d.Kind + ": " + d.XPath + ": " + d.Message
	}
	return d.Kind + ": " + d.Message
}

// parse splits a raw diagnostic string into kind, an optional XPath segment,
// and message. pkg/assembler emits "Kind: message"; pkg/xmldriver emits
// "Kind: /xpath: message" (the xpath segment always starts with "/", since
// Reader.xpath never returns anything else). A string that doesn't contain
// the "Kind: " separator at all is treated as a bare message with no kind.
func parse(raw string) (kind, xpath, message string) {
	head, rest, ok := strings.Cut(raw, ": ")
	if !ok {
		return "", "", raw
	}
	if strings.HasPrefix(rest, "/") {
		if path, msg, ok := strings.Cut(rest, ": "); ok {
			return head, path, msg
		}
	}
	return head, "", rest
}

// Collector implements the ErrorHandler interface every frontend (assembler,
// xmldriver, printer) expects, accumulating structured Diagnostics tagged
// with one session id instead of discarding the raw strings.
type Collector struct {
	Session uuid.UUID
	Diags   []Diagnostic
}

// NewCollector creates a Collector with a fresh session id, the way
// pkg/assembler.New stamps every Assembler with its own uuid.New().
func NewCollector() *Collector {
	return &Collector{Session: uuid.New()}
}

func (c *Collector) HandleError(msg string) {
	kind, xpath, message := parse(msg)
	c.Diags = append(c.Diags, Diagnostic{
		Session:  c.Session,
		Severity: SeverityError,
		Kind:     kind,
		XPath:    xpath,
		Message:  message,
	})
}

func (c *Collector) HandleWarning(msg string) {
	kind, xpath, message := parse(msg)
	c.Diags = append(c.Diags, Diagnostic{
		Session:  c.Session,
		Severity: SeverityWarning,
		Kind:     kind,
		XPath:    xpath,
		Message:  message,
	})
}

// HasErrors reports whether any diagnostic collected so far is an error
// rather than a warning.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics, in collection order.
func (c *Collector) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diags {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics, in collection
// order.
func (c *Collector) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diags {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// MarshalJSON renders every collected Diagnostic as a JSON array, for
// cmd/ntac's --json output mode.
func (c *Collector) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Diags)
}
