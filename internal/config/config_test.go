// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergeFilesParsesHuJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hujson")
	const body = `{
		// disable ANSI output for CI logs
		"noColor": true,
		"tableFormat": "%-10s %s",
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c := Default()
	if err := c.mergeFiles(singlePath(path)); err != nil {
		t.Fatalf("mergeFiles: %v", err)
	}
	if !c.NoColor {
		t.Error("NoColor = false, want true")
	}
	if c.TableFormat != "%-10s %s" {
		t.Errorf("TableFormat = %q, want %%-10s %%s", c.TableFormat)
	}
}

func TestMergeFilesMissingIsNotError(t *testing.T) {
	c := Default()
	if err := c.mergeFiles(singlePath(filepath.Join(t.TempDir(), "absent.hujson"))); err != nil {
		t.Errorf("mergeFiles on missing file: %v", err)
	}
}

func TestMergeEnvironment(t *testing.T) {
	t.Setenv("LUADIS_NO_COLOR", "1")
	c := Default()
	c.mergeEnvironment()
	if !c.NoColor {
		t.Error("NoColor = false after LUADIS_NO_COLOR=1, want true")
	}
}

func TestMergeEnvironmentNoColorStandard(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	c := Default()
	c.mergeEnvironment()
	if !c.NoColor {
		t.Error("NoColor = false after NO_COLOR set (even empty), want true")
	}
}

func TestLoadPrefersExplicitPathOverXDG(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.hujson")
	os.WriteFile(explicit, []byte(`{"noTagPersistence": true}`), 0o644)
	xdg := filepath.Join(dir, "xdg.hujson")
	os.WriteFile(xdg, []byte(`{"noTagPersistence": false, "noColor": true}`), 0o644)

	c, err := Load(explicit, func() string { return xdg })
	if err != nil {
		t.Fatal(err)
	}
	if !c.NoTagPersistence {
		t.Error("NoTagPersistence = false, want true from explicit path")
	}
	if c.NoColor {
		t.Error("NoColor = true, want false: xdg path should not have been consulted")
	}
}

func TestParseTableFormat(t *testing.T) {
	if _, ok := ParseTableFormat("  "); ok {
		t.Error("blank format reported ok")
	}
	if f, ok := ParseTableFormat(" %-6s %s "); !ok || f != "%-6s %s" {
		t.Errorf("ParseTableFormat = %q, %v", f, ok)
	}
}
