// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command ic10bench runs many independent orchestrator.VM instances
// concurrently to measure host-side tick throughput (spec.md SPEC_FULL.md
// §5, concurrent scaling is a host concern the VM itself stays silent
// about). Each worker VM is fully independent — no shared graph, no
// shared journal — so this is an embarrassingly parallel fan-out rather
// than a test of the VM's own (single-threaded, per-tick) concurrency
// story.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/internal/ic10log"
	"github.com/ic10sim/ic10sim/orchestrator"
)

func main() {
	prefabPath := flag.String("prefab", "", "path to the prefab catalog JSON document")
	sourcePath := flag.String("source", "", "path to an .ic10 source file every worker runs")
	workers := flag.Int("workers", 8, "number of concurrent VM instances")
	ticks := flag.Int("ticks", 10000, "number of ticks each VM runs")
	flag.Parse()

	if *prefabPath == "" || *sourcePath == "" {
		fmt.Fprintln(os.Stderr, "ic10bench: -prefab and -source are required")
		os.Exit(1)
	}

	db, err := catalog.LoadPrefabDBFile(*prefabPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ic10bench:", err)
		os.Exit(1)
	}
	src, err := ioutil.ReadFile(*sourcePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ic10bench:", err)
		os.Exit(1)
	}

	log := ic10log.New("component", "ic10bench")
	start := time.Now()

	g, _ := errgroup.WithContext(context.Background())
	results := make([]int, *workers)
	for i := 0; i < *workers; i++ {
		i := i
		g.Go(func() error {
			v := orchestrator.New(db)
			holderID, err := v.AddObject("StructureCircuitHousing")
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			if _, err := v.AddIntegratedCircuit(holderID); err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			if errs := v.SetCode(holderID, string(src)); len(errs) > 0 {
				return fmt.Errorf("worker %d: %d parse error(s)", i, len(errs))
			}
			for t := 0; t < *ticks; t++ {
				v.Tick(1, 10)
			}
			results[i] = *ticks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "ic10bench:", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	total := 0
	for _, r := range results {
		total += r
	}
	log.Info("benchmark complete", "workers", *workers, "ticks_per_worker", *ticks, "total_ticks", total, "elapsed", elapsed, "ticks_per_sec", float64(total)/elapsed.Seconds())
	fmt.Printf("%d workers x %d ticks in %s (%.0f ticks/sec aggregate)\n", *workers, *ticks, elapsed, float64(total)/elapsed.Seconds())
}
