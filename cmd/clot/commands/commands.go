// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete clot CLI command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/clot-foundation/clot/cmd/clot/cli"
	"github.com/clot-foundation/clot/lib/config"
	"github.com/clot-foundation/clot/lib/version"
)

// Root builds and returns the complete clot CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "clot",
		Description: `clot: inspect, validate, and convert BitTorrent metainfo files.

Torrent files are decoded with strict canonical-form checking and their
well-known fields are validated (tracker URLs, timestamps, DHT nodes,
text encodings). Unknown keys pass through untouched.`,
		Subcommands: []*cli.Command{
			CheckCommand(),
			DumpCommand(),
			VersionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Validate every .torrent file under the current directory",
				Command:     "clot check .",
			},
			{
				Description: "Render a torrent as indented JSON next to the input",
				Command:     "clot dump --indent 2 ubuntu.torrent",
			},
			{
				Description: "Dump with a fallback encoding for old cp1251 torrents",
				Command:     "clot dump --fallback-encoding cp1251 legacy.torrent",
			},
		},
	}
}

// VersionCommand reports the build version.
func VersionCommand() *cli.Command {
	var short bool

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flags.BoolVar(&short, "short", false, "print just the version number")
			return flags
		},
		Run: func(args []string) error {
			if short {
				fmt.Println(version.Short())
				return nil
			}
			fmt.Printf("clot %s\n", version.Full())
			return nil
		},
	}
}

// loadConfig resolves the effective configuration: an explicit
// --config path wins, then the CLOT_CONFIG environment variable, then
// the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("CLOT_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}
