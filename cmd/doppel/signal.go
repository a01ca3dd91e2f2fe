package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// setupSignalHandler cancels the run context on the first SIGINT or SIGTERM.
// A second signal exits immediately, covering the case where the process is
// blocked on a terminal read that cancellation cannot unblock.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived signal: %v\n", sig)
		cancel()

		<-sigChan
		os.Exit(1)
	}()
}
