// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"log/slog"
	"strings"

	"goportal/conlog"
)

// Executor tries to handle a parsed line. It reports whether it did.
type Executor func(a Arguments) (bool, error)

// Buffer collects console text and executes it line by line. A "wait" line
// defers the rest of the buffer to the next Execute call.
type Buffer struct {
	text      string
	wait      bool
	executors []Executor
}

func NewBuffer(ex ...Executor) *Buffer {
	return &Buffer{executors: ex}
}

func (b *Buffer) SetExecutors(ex []Executor) {
	b.executors = ex
}

// AddText appends text. It always starts a new line.
func (b *Buffer) AddText(text string) {
	if n := len(b.text); n > 0 && b.text[n-1] != '\n' {
		b.text += "\n"
	}
	b.text += text
}

func (b *Buffer) InsertText(text string) {
	b.text = text + "\n" + b.text
}

func (b *Buffer) Empty() bool {
	return len(b.text) == 0
}

// nextLine splits at the first ';' or newline outside of quotes.
func (b *Buffer) nextLine() string {
	quote := false
	i := 0
loop:
	for ; i < len(b.text); i++ {
		switch b.text[i] {
		case '"':
			quote = !quote
		case ';':
			if !quote {
				break loop
			}
		case '\n':
			break loop
		}
	}
	line := b.text[:i]
	if i < len(b.text) {
		i++
	}
	b.text = b.text[i:]
	return line
}

func (b *Buffer) Execute() error {
	for len(b.text) != 0 {
		if err := b.execute(b.nextLine()); err != nil {
			return err
		}
		if b.wait {
			b.wait = false
			return nil
		}
	}
	return nil
}

func (b *Buffer) execute(line string) error {
	a := Parse(line)
	args := a.Args()
	if len(args) == 0 {
		return nil
	}
	if strings.EqualFold(args[0].String(), "wait") {
		b.wait = true
		return nil
	}
	for _, e := range b.executors {
		if ok, err := e(a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}
	name := args[0].String()
	slog.Debug("Unknown command", "name", name)
	conlog.Printf("Unknown command \"%s\"\n", name)
	return nil
}
