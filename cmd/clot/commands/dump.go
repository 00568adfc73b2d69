// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/clot-foundation/clot/cmd/clot/cli"
	"github.com/clot-foundation/clot/lib/torrent"
)

// DumpCommand renders torrent files as JSON.
func DumpCommand() *cli.Command {
	var (
		configPath       string
		fallbackEncoding string
		outputDir        string
		indent           int
		tab              bool
		sortKeys         bool
		overwrite        bool
	)

	return &cli.Command{
		Name:    "dump",
		Summary: "Render torrent files as JSON",
		Description: `Render torrent files as JSON text.

Each input file produces a .json file with the same stem, written
next to the input or under --output. Binary values that are not valid
UTF-8 render as "hex::<hex digits>"; timestamps render as ISO-style
text with an explicit UTC offset.`,
		Usage: "clot dump [flags] <file>...",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("dump", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to a clot.yaml configuration file")
			flags.StringVar(&fallbackEncoding, "fallback-encoding", "",
				"character set tried last when text fields do not decode")
			flags.StringVarP(&outputDir, "output", "o", "", "directory for the .json output files")
			flags.IntVar(&indent, "indent", -1, "spaces per nesting level (0 for one-line output)")
			flags.BoolVar(&tab, "tab", false, "indent with tabs")
			flags.BoolVar(&sortKeys, "sort-keys", false, "sort dictionary keys")
			flags.BoolVar(&overwrite, "overwrite", false, "replace existing output files")
			return flags
		},
		Examples: []cli.Example{
			{Description: "Compact dump next to the input", Command: "clot dump ubuntu.torrent"},
			{Description: "Indented, sorted, into a directory", Command: "clot dump --indent 2 --sort-keys -o out/ *.torrent"},
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return errors.New("at least one file required")
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if fallbackEncoding == "" {
				fallbackEncoding = cfg.FallbackEncoding
			}
			if indent < 0 {
				indent = cfg.Dump.Indent
			}
			opts := torrent.DumpOptions{
				Indent:    indent,
				Tab:       tab || cfg.Dump.Tab,
				SortKeys:  sortKeys || cfg.Dump.SortKeys,
				Overwrite: overwrite,
			}

			logger := cli.NewCommandLogger().With("command", "dump")

			var loadOpts []torrent.Option
			if fallbackEncoding != "" {
				loadOpts = append(loadOpts, torrent.FallbackEncoding(fallbackEncoding))
			}
			if len(cfg.Schemes) > 0 {
				loadOpts = append(loadOpts, torrent.Schemes(cfg.Schemes...))
			}

			for _, path := range args {
				m, err := torrent.Load(path, loadOpts...)
				if err != nil {
					return err
				}

				outPath := jsonPath(path, outputDir)
				if err := m.Dump(outPath, opts); err != nil {
					return err
				}
				logger.Info("dumped", "input", path, "output", outPath)
			}
			return nil
		},
	}
}

// jsonPath derives the output file name: the input stem plus .json,
// in the input's directory or in outputDir when given.
func jsonPath(input, outputDir string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(input)
	if outputDir != "" {
		dir = outputDir
	}
	return filepath.Join(dir, stem+".json")
}
