/*
facecube shows a work history on the faces of a cube that can be
dragged, clicked and left to drift in the terminal.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/facecube/engine"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a facecube TOML config file")
	flag.Parse()

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal("failed to load configuration: %s", err)
	}

	showcase := testbed.NewShowcase(&cfg)

	e, err := engine.New(showcase.Game)
	if err != nil {
		core.LogFatal("failed to create engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		fmt.Fprintf(os.Stderr, "failed to initialize engine: %s\n", err)
		os.Exit(1)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop the frame loop; Shutdown runs on the main goroutine
	go func() {
		<-sigCh
		e.Stop()
	}()

	// run engine
	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %s\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "facecube stopped: %s\n", runErr)
		os.Exit(1)
	}
}
