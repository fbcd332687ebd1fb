// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the console output of the viewer. Everything a user typed
// command wants to show ends up here, diagnostics go to slog instead.
package conlog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu sync.Mutex
	w  io.Writer = os.Stdout
	p  func(string, ...interface{})
	sp func(string, ...interface{})
)

func SetOutput(o io.Writer) {
	mu.Lock()
	w = o
	mu.Unlock()
}

func SetPrintf(f func(string, ...interface{})) {
	p = f
}

func SetSafePrintf(f func(string, ...interface{})) {
	sp = f
}

func write(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(w, format, v...)
}

func Printf(format string, v ...interface{}) {
	if p != nil {
		p(format, v...)
		return
	}
	write(format, v...)
}

// SafePrintf is for bulk output like listings which must never trigger a
// screen update on its own.
func SafePrintf(format string, v ...interface{}) {
	if sp != nil {
		sp(format, v...)
		return
	}
	write(format, v...)
}
