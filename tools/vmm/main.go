// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/tebeka/atexit"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./tools/vmm <command> <flags>

var (
	diagnosticsFlag = cli.IntFlag{
		Name:  "diagnostic-port",
		Usage: "enable hosting of a pprof server on localhost by providing a port",
		Value: 0,
	}
	cpuProfileFlag = cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "sets the target file for storing CPU profiles to, disabled if empty",
		Value: "",
	}
	traceFlag = cli.StringFlag{
		Name:  "tracefile",
		Usage: "sets the target file for execution traces to, disabled if empty",
		Value: "",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "vmm",
		Usage:     "demand paging emulator replaying memory access traces",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags: []cli.Flag{
			&diagnosticsFlag,
			&cpuProfileFlag,
			&traceFlag,
		},
		Commands: []*cli.Command{
			&Run,
			&Generate,
			&Policies,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withProfiling runs an action while recording the CPU profile and the
// execution trace requested by the global flags. Recordings are completed
// even if a fatal fault terminates the process.
func withProfiling(action cli.ActionFunc) cli.ActionFunc {
	return func(context *cli.Context) error {
		startDiagnosticServer(context.Int(diagnosticsFlag.Name))

		stop, err := startProfiling(context.String(cpuProfileFlag.Name), context.String(traceFlag.Name))
		if err != nil {
			return err
		}
		atexit.Register(stop)
		defer stop()

		return action(context)
	}
}

func startDiagnosticServer(port int) {
	if port <= 0 || port >= (1<<16) {
		return
	}
	addr := fmt.Sprintf("localhost:%d", port)
	log.Printf("serving pprof diagnostics at http://%s/debug/pprof", addr)
	go func() {
		log.Println(http.ListenAndServe(addr, nil))
	}()
}

// startProfiling starts the recordings for the given non-empty file names
// and returns a function stopping them. The returned function may be called
// more than once.
func startProfiling(cpuProfile, traceFile string) (func(), error) {
	var stops []func()
	stopped := false
	stopAll := func() {
		if stopped {
			return
		}
		stopped = true
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	if name := strings.TrimSpace(cpuProfile); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			f.Close()
		})
	}

	if name := strings.TrimSpace(traceFile); name != "" {
		f, err := os.Create(name)
		if err != nil {
			stopAll()
			return nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		if err := trace.Start(f); err != nil {
			f.Close()
			stopAll()
			return nil, fmt.Errorf("failed to start trace: %w", err)
		}
		stops = append(stops, func() {
			trace.Stop()
			f.Close()
		})
	}
	return stopAll, nil
}
