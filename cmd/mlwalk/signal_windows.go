//go:build windows

package main

import (
	"os"
	"os/signal"
)

// notifySignals subscribes ch to the signals that cancel a running simulation.
func notifySignals(ch chan<- os.Signal) {
	signal.Notify(ch, os.Interrupt)
}
