// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ic10log is the thin structured-logging layer every component of
// this module logs through (spec.md SPEC_FULL.md ambient stack): a single
// process-wide root logger built on github.com/inconshreveable/log15, with
// per-component child loggers carved out via New(ctx...) the way the
// orchestrator tags each Tick with a correlation id.
package ic10log

import (
	"os"

	"github.com/fatih/color"
	"github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
)

// Logger is re-exported so callers never need to import log15 directly.
type Logger = log15.Logger

var root Logger = log15.New()

func init() {
	handler := log15.StreamHandler(os.Stderr, log15.LogfmtFormat())
	if isatty.IsTerminal(os.Stderr.Fd()) && color.NoColor == false {
		handler = log15.StreamHandler(os.Stderr, log15.TerminalFormat())
	}
	root.SetHandler(log15.LvlFilterHandler(log15.LvlInfo, handler))
}

// Root returns the process-wide root logger.
func Root() Logger { return root }

// New returns a child logger carrying ctx as permanent key/value pairs,
// e.g. ic10log.New("component", "orchestrator").
func New(ctx ...interface{}) Logger { return root.New(ctx...) }

// SetLevel adjusts the root logger's minimum level ("debug", "info",
// "warn", "error", "crit"); used by cmd/ic10run's -v flag.
func SetLevel(name string) error {
	lvl, err := log15.LvlFromString(name)
	if err != nil {
		return err
	}
	handler := log15.StreamHandler(os.Stderr, log15.LogfmtFormat())
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = log15.StreamHandler(os.Stderr, log15.TerminalFormat())
	}
	root.SetHandler(log15.LvlFilterHandler(lvl, handler))
	return nil
}
