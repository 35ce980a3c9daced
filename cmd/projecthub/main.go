// Package main runs the Project Hub server.
package main

import (
	"context"
	"os"

	"github.com/dukex/projecthub/pkg/log"
	cli "github.com/urfave/cli/v3"
)

var version = "1.0.0"

func main() {
	logger := log.WithModule("projecthub")

	cmd := &cli.Command{
		Name:                  "projecthub",
		Usage:                 "Internal project hub for transcript, prompt and bulk analysis workflows",
		Version:               version,
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			RunCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("projecthub failed", "error", err)
		os.Exit(1)
	}
}
