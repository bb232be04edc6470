// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command ic10run is the host-side CLI around one orchestrator.VM: load a
// prefab catalog and a single programmable-chip housing, run its program
// for a fixed number of ticks or step it one instruction at a time, and
// inspect the resulting state (spec.md §6, embedding API consumed from the
// outside instead of from an embedding Go program).
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/parser"
	"github.com/ic10sim/ic10sim/internal/ic10config"
	"github.com/ic10sim/ic10sim/internal/ic10log"
	"github.com/ic10sim/ic10sim/orchestrator"
)

var (
	prefabFlag = cli.StringFlag{Name: "prefab", Usage: "path to the prefab catalog JSON document"}
	holderFlag = cli.StringFlag{Name: "holder", Value: "StructureCircuitHousing", Usage: "prefab name of the chip housing to instantiate"}
	sourceFlag = cli.StringFlag{Name: "source", Usage: "path to an .ic10 source file"}
	configFlag = cli.StringFlag{Name: "config", Usage: "path to a TOML tuning file"}
	ticksFlag  = cli.IntFlag{Name: "ticks", Value: 1, Usage: "number of ticks to run"}
	verboseFlag = cli.StringFlag{Name: "v", Value: "info", Usage: "log level: debug, info, warn, error, crit"}
)

func main() {
	app := cli.NewApp()
	app.Name = "ic10run"
	app.Usage = "run and inspect IC10 programs against a simulated object graph"
	app.Flags = []cli.Flag{prefabFlag, configFlag, verboseFlag}
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "load a program into a fresh chip housing and run it for N ticks",
			Flags:  []cli.Flag{holderFlag, sourceFlag, ticksFlag},
			Action: runCommand,
		},
		{
			Name:   "step",
			Usage:  "like run, but execute exactly one instruction and print the result",
			Flags:  []cli.Flag{holderFlag, sourceFlag},
			Action: stepCommand,
		},
		{
			Name:   "disasm",
			Usage:  "parse a source file and print its normalized instruction listing",
			Flags:  []cli.Flag{sourceFlag},
			Action: disasmCommand,
		},
		{
			Name:   "repl",
			Usage:  "interactively step a chip housing one line at a time",
			Flags:  []cli.Flag{holderFlag, sourceFlag},
			Action: replCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ic10run:", err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) {
	if err := ic10log.SetLevel(ctx.GlobalString(verboseFlag.Name)); err != nil {
		fmt.Fprintln(os.Stderr, "ic10run: invalid -v level:", err)
	}
}

func loadVM(ctx *cli.Context) (*orchestrator.VM, error) {
	setupLogging(ctx)
	path := ctx.GlobalString(prefabFlag.Name)
	if path == "" {
		return nil, fmt.Errorf("ic10run: -prefab is required")
	}
	db, err := catalog.LoadPrefabDBFile(path)
	if err != nil {
		return nil, err
	}
	v := orchestrator.New(db)
	if cfgPath := ctx.GlobalString(configFlag.Name); cfgPath != "" {
		cfg, err := ic10config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		v.TickBudget = cfg.TickBudget
	}
	return v, nil
}

func loadHolderAndSource(v *orchestrator.VM, ctx *cli.Context) (uint32, error) {
	holderID, err := v.AddObject(ctx.String(holderFlag.Name))
	if err != nil {
		return 0, err
	}
	if _, err := v.AddIntegratedCircuit(holderID); err != nil {
		return 0, err
	}
	srcPath := ctx.String(sourceFlag.Name)
	if srcPath == "" {
		return holderID, nil
	}
	src, err := ioutil.ReadFile(srcPath)
	if err != nil {
		return 0, err
	}
	if errs := v.SetCode(holderID, string(src)); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 0, fmt.Errorf("ic10run: %d parse error(s)", len(errs))
	}
	return holderID, nil
}

func runCommand(ctx *cli.Context) error {
	v, err := loadVM(ctx)
	if err != nil {
		return err
	}
	holderID, err := loadHolderAndSource(v, ctx)
	if err != nil {
		return err
	}
	ticks := ctx.Int(ticksFlag.Name)
	for i := 0; i < ticks; i++ {
		v.Tick(1, 10)
	}
	printRegisters(v, holderID)
	return nil
}

func stepCommand(ctx *cli.Context) error {
	v, err := loadVM(ctx)
	if err != nil {
		return err
	}
	holderID, err := loadHolderAndSource(v, ctx)
	if err != nil {
		return err
	}
	lineErr, err := v.StepIC(holderID)
	if err != nil {
		return err
	}
	if lineErr != nil {
		fmt.Println(lineErr.Error())
	}
	printRegisters(v, holderID)
	return nil
}

func disasmCommand(ctx *cli.Context) error {
	srcPath := ctx.String(sourceFlag.Name)
	if srcPath == "" {
		return fmt.Errorf("ic10run: -source is required")
	}
	src, err := ioutil.ReadFile(srcPath)
	if err != nil {
		return err
	}
	prog, errs := parser.Parse(srcPath, string(src))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("ic10run: %d parse error(s)", len(errs))
	}
	fmt.Print(prog.String())
	return nil
}

func replCommand(ctx *cli.Context) error {
	v, err := loadVM(ctx)
	if err != nil {
		return err
	}
	holderID, err := loadHolderAndSource(v, ctx)
	if err != nil {
		return err
	}
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("ic10run repl — enter to step, 'regs' to dump registers, 'quit' to exit")
	for {
		input, err := line.Prompt("ic10> ")
		if err != nil {
			return nil
		}
		line.AppendHistory(input)
		switch input {
		case "quit", "exit":
			return nil
		case "regs":
			printRegisters(v, holderID)
		default:
			lineErr, err := v.StepIC(holderID)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			if lineErr != nil {
				fmt.Println(lineErr.Error())
			}
		}
	}
}

func printRegisters(v *orchestrator.VM, holderID uint32) {
	obj := v.GetObject(holderID)
	if obj == nil {
		return
	}
	ch := obj.Capabilities().CircuitHolder
	if ch == nil {
		return
	}
	chipID, ok := ch.Chip()
	if !ok {
		return
	}
	ic := v.GetObject(chipID).Capabilities().IntegratedCircuit
	if ic == nil {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"register", "value"})
	for i := 0; i < 16; i++ {
		table.Append([]string{fmt.Sprintf("r%d", i), fmt.Sprintf("%g", ic.Registers[i])})
	}
	table.Append([]string{"sp", fmt.Sprintf("%g", ic.Registers[16])})
	table.Append([]string{"ra", fmt.Sprintf("%g", ic.Registers[17])})
	table.Append([]string{"ip", fmt.Sprintf("%d", ic.IP)})
	table.Append([]string{"status", ic.Status.String()})
	table.Render()
}
