package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/txta-go/txta/internal/diag"
	"github.com/txta-go/txta/pkg/assembler"
	"github.com/txta-go/txta/pkg/ast"
	"github.com/txta-go/txta/pkg/builder"
	"github.com/txta-go/txta/pkg/textdriver"
	"github.com/txta-go/txta/pkg/xmldriver"
)

// looksLikeXML decides the frontend by sniffing the path, falling back to
// content sniffing for extensionless input (stdin, pipes).
func looksLikeXML(path string, data []byte) bool {
	if strings.HasSuffix(path, ".xml") {
		return true
	}
	if strings.HasSuffix(path, ".xta") {
		return false
	}
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "<")
}

// driveFile reads path and drives b (a builder.Builder) through either
// pkg/textdriver or pkg/xmldriver, as pkg/printer's round-trip test does,
// picking the frontend the same way looksLikeXML decides it.
func driveFile(path string, b builder.Builder) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if looksLikeXML(path, data) {
		if err := xmldriver.ParseXML(strings.NewReader(string(data)), b, textdriver.OldSyntax); err != nil {
			return err
		}
		return nil
	}
	if ret := textdriver.ParseXTA(string(data), b, textdriver.OldSyntax, textdriver.StartFile); ret != 0 {
		return fmt.Errorf("parse %s: syntax error", path)
	}
	return nil
}

// loadSystem drives path through the real assembler and returns the
// resulting *ast.System alongside every diagnostic the frontend raised.
func loadSystem(path string) (*ast.System, *diag.Collector, error) {
	collector := diag.NewCollector()
	a := assembler.New(collector)
	a.SessionID = collector.Session
	if err := driveFile(path, a); err != nil {
		return nil, collector, err
	}
	sys, err := a.Done()
	return sys, collector, err
}

// printDiagnostics writes every collected diagnostic to stderr, one per
// line, in the "Kind: message" shape Diagnostic.String reconstructs.
func printDiagnostics(c *diag.Collector) {
	for _, d := range c.Diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
