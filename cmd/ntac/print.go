package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/txta-go/txta/pkg/printer"
)

var printCommand = &cli.Command{
	Name:      "print",
	Usage:     "re-render a document as canonical text",
	ArgsUsage: "<file>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("print: missing <file> argument", 2)
		}
		p := printer.New()
		if err := driveFile(path, p); err != nil {
			return cli.Exit(err, 1)
		}
		if _, err := p.Done(); err != nil {
			return cli.Exit(err, 1)
		}
		if len(p.Errors()) > 0 {
			return cli.Exit(fmt.Sprintf("print: %d error(s) while rendering", len(p.Errors())), 1)
		}
		fmt.Print(p.String())
		return nil
	},
}
