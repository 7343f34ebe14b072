package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var docsCommand = &cli.Command{
	Name:  "docs",
	Usage: "print a man page for this command, generated from its flag/command tree",
	Action: func(c *cli.Context) error {
		man, err := c.App.ToMan()
		if err != nil {
			return fmt.Errorf("generate man page: %w", err)
		}
		fmt.Print(man)
		return nil
	},
}
