// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for clot packages.
package testutil

import (
	"os"
	"path/filepath"
)

// WriteFile creates name under a fresh temporary directory with the
// given contents and returns its path. The directory is removed when
// the test completes.
func WriteFile(t interface {
	Helper()
	Fatalf(format string, args ...any)
	TempDir() string
}, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// ReadFile reads path or fails the test.
func ReadFile(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

// TempPath returns a path for name in a fresh temporary directory
// without creating the file.
func TempPath(t interface {
	Helper()
	TempDir() string
}, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
