// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

// Command luadis is an interactive inspector for compiled Lua 5.1
// bytecode chunks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go4.org/xdgdir"
	"golang.org/x/term"
	"zombiezen.com/go/log"

	"lua51dis.dev/luadis/internal/config"
	"lua51dis.dev/luadis/internal/luabc"
	"lua51dis.dev/luadis/internal/output"
	"lua51dis.dev/luadis/internal/registry"
	"lua51dis.dev/luadis/internal/repl"
	"lua51dis.dev/luadis/internal/tagstore"
)

type globalOptions struct {
	debug            bool
	noColor          bool
	noTagPersistence bool
	configPath       string
}

func main() {
	rootCommand := &cobra.Command{
		Use:           "luadis FILE",
		Short:         "inspect a compiled Lua 5.1 bytecode chunk",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := new(globalOptions)
	rootCommand.PersistentFlags().BoolVarP(&g.debug, "debug", "d", false, "show debugging output")
	rootCommand.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable ANSI color output")
	rootCommand.PersistentFlags().BoolVar(&g.noTagPersistence, "no-tag-persistence", false, "do not load or save tags across sessions")
	rootCommand.PersistentFlags().StringVar(&g.configPath, "config", "", "`path` to a luadis.hujson config file")
	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogging(g.debug)
		return nil
	}
	rootCommand.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), g, args[0])
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		initLogging(g.debug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, g *globalOptions, path string) error {
	sessionID := uuid.New()
	log.Debugf(ctx, "session %s: opening %s", sessionID, path)

	cfg, err := config.Load(g.configPath, func() string {
		dir := xdgdir.Config.Path()
		if dir == "" {
			return ""
		}
		return filepath.Join(dir, "luadis", "config.hujson")
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if g.noColor {
		cfg.NoColor = true
	}
	if g.noTagPersistence {
		cfg.NoTagPersistence = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	reg := registry.New()
	chunk, err := luabc.Decode(data, reg)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	for _, w := range chunk.Warnings {
		log.Warnf(ctx, "%s: %s", path, w)
	}

	useColor := !cfg.NoColor && term.IsTerminal(int(os.Stdout.Fd()))
	out := output.New(os.Stdout)
	out.SetColor(useColor)
	if format, ok := config.ParseTableFormat(cfg.TableFormat); ok {
		out.LoadFormat(format)
	}

	s := repl.NewSession(filepath.Base(path), chunk, reg, out, os.Stdout)

	var store *tagstore.Store
	chunkHash := tagstore.ChunkHash(data)
	if !cfg.NoTagPersistence {
		store = tagstore.Open(filepath.Join(xdgdir.Cache.Path(), "luadis", "tags.db"))
		defer store.Close()

		saved, err := store.List(ctx, chunkHash)
		if err != nil {
			log.Warnf(ctx, "load saved tags: %v", err)
		}
		for _, t := range saved {
			a, err := reg.FindByAddress(t.Address)
			if err != nil {
				continue
			}
			if err := reg.SetTag(a, t.Name); err != nil {
				log.Warnf(ctx, "restore tag %s: %v", t.Name, err)
			}
		}

		s.OnTag = func(a *registry.Artifact, tag string) {
			if err := store.SetTag(ctx, chunkHash, a.Kind.String(), a.Address, tag); err != nil {
				log.Warnf(ctx, "persist tag %s: %v", tag, err)
			}
		}
	}

	s.Run(os.Stdin, os.Stdout, func() {
		fmt.Fprint(os.Stdout, "\x1b[H\x1b[2J")
	})
	return nil
}

var initLogOnce sync.Once

func initLogging(debug bool) {
	initLogOnce.Do(func() {
		minLevel := log.Info
		if debug {
			minLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLevel,
			Output: log.New(os.Stderr, "luadis: ", log.StdFlags, nil),
		})
	})
}
