// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

// Package config loads luadis's process configuration: environment
// overrides and an optional HuJSON file, with the environment taking
// priority over the file. Command-line flags are applied on top of the
// result by cmd/luadis. Grounded on the teacher's cmd/zb/config.go.
package config

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
)

// Config is luadis's merged configuration.
type Config struct {
	NoColor          bool   `json:"noColor"`
	NoTagPersistence bool   `json:"noTagPersistence"`
	TableFormat      string `json:"tableFormat"`
}

// Default returns the configuration in effect before any environment
// or file overlay is applied.
func Default() *Config {
	return &Config{}
}

// mergeEnvironment overlays LUADIS_NO_COLOR and NO_COLOR, mirroring
// the teacher's globalConfig.mergeEnvironment.
func (c *Config) mergeEnvironment() {
	if v := os.Getenv("LUADIS_NO_COLOR"); v != "" {
		c.NoColor = true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.NoColor = true
	}
}

// mergeFiles reads each HuJSON path in turn, standardizing it to plain
// JSON before decoding, same as cmd/zb/config.go's mergeFiles. Missing
// files are skipped, not an error; malformed ones are.
func (c *Config) mergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, c, jsonv2.RejectUnknownMembers(true)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}
	return nil
}

// UnmarshalJSONFrom implements streaming decode merged onto c's
// existing values, in the same token-at-a-time style as the teacher's
// globalConfig.UnmarshalJSONFrom.
func (c *Config) UnmarshalJSONFrom(in *jsontext.Decoder) error {
	tok, err := in.ReadToken()
	if err != nil {
		return err
	}
	if got := tok.Kind(); got != '{' {
		return fmt.Errorf("config must be an object not a %v", got)
	}

	for {
		keyToken, err := in.ReadToken()
		if err != nil {
			return err
		}
		switch kind := keyToken.Kind(); kind {
		case '}':
			return nil
		case '"':
			// keep going.
		default:
			return fmt.Errorf("unexpected non-string key (%v) in object", kind)
		}

		switch k := keyToken.String(); k {
		case "noColor":
			if err := jsonv2.UnmarshalDecode(in, &c.NoColor); err != nil {
				return fmt.Errorf("unmarshal config.noColor: %w", err)
			}
		case "noTagPersistence":
			if err := jsonv2.UnmarshalDecode(in, &c.NoTagPersistence); err != nil {
				return fmt.Errorf("unmarshal config.noTagPersistence: %w", err)
			}
		case "tableFormat":
			if err := jsonv2.UnmarshalDecode(in, &c.TableFormat); err != nil {
				return fmt.Errorf("unmarshal config.tableFormat: %w", err)
			}
		default:
			if reject, _ := jsonv2.GetOption(in.Options(), jsonv2.RejectUnknownMembers); reject {
				return fmt.Errorf("unmarshal config: unknown field %q", k)
			}
		}
	}
}

// Load builds the final configuration: defaults, then configPath if
// non-empty, otherwise the XDG config file, then the environment, so
// that environment overrides win over the file.
func Load(configPath string, xdgPath func() string) (*Config, error) {
	c := Default()

	path := configPath
	if path == "" {
		path = xdgPath()
	}
	if path != "" {
		if err := c.mergeFiles(singlePath(path)); err != nil {
			return nil, err
		}
	}
	c.mergeEnvironment()
	return c, nil
}

func singlePath(p string) iter.Seq[string] {
	return func(yield func(string) bool) {
		yield(p)
	}
}

// ParseTableFormat reports whether format is non-empty and therefore
// should be installed via output.Formatter.LoadFormat.
func ParseTableFormat(format string) (string, bool) {
	format = strings.TrimSpace(format)
	return format, format != ""
}
