// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"check", "check", 0},
		{"check", "chekc", 2},
		{"dump", "dmup", 2},
		{"", "dump", 4},
		{"kitten", "sitting", 3},
	}

	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "check"}, {Name: "dump"}, {Name: "version"}}

	if got := suggestCommand("chekc", commands); got != "check" {
		t.Errorf("suggestCommand(chekc) = %q", got)
	}
	if got := suggestCommand("vresion", commands); got != "version" {
		t.Errorf("suggestCommand(vresion) = %q", got)
	}
	if got := suggestCommand("frobnicate", commands); got != "" {
		t.Errorf("suggestCommand(frobnicate) = %q, want no suggestion", got)
	}
}

func TestSuggestFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("indent", 0, "")
	flags.Bool("sort-keys", false, "")

	if got := suggestFlag([]string{"--indnet"}, flags); got != "--indent" {
		t.Errorf("suggestFlag(--indnet) = %q", got)
	}
	if got := suggestFlag([]string{"--sort-key=1"}, flags); got != "--sort-keys" {
		t.Errorf("suggestFlag(--sort-key=1) = %q", got)
	}
	// Defined flags produce no suggestion.
	if got := suggestFlag([]string{"--indent"}, flags); got != "" {
		t.Errorf("suggestFlag(--indent) = %q, want none", got)
	}
}
