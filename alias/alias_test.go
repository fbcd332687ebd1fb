// SPDX-License-Identifier: GPL-2.0-or-later

package alias

import (
	"fmt"
	"testing"

	"goportal/cmd"
	"goportal/conlog"
)

func setup(t *testing.T) (*Aliases, *cmd.Commands, *cmd.Buffer) {
	t.Helper()
	al := New()
	cmds := cmd.New()
	if err := al.Register(cmds.Add); err != nil {
		t.Fatal(err)
	}
	cb := cmd.NewBuffer()
	cb.SetExecutors([]cmd.Executor{cmds.Execute, al.Executor(cb)})
	return al, cmds, cb
}

func TestRegisterTwice(t *testing.T) {
	al, cmds, _ := setup(t)
	if err := al.Register(cmds.Add); err == nil {
		t.Errorf("second Register succeeded")
	}
}

func TestExecuteAlias(t *testing.T) {
	al, cmds, cb := setup(t)
	worldCount := 0
	p := func(a cmd.Arguments) (bool, error) {
		if a.Full() != "world" {
			t.Errorf("Print() = %q, want %q", a.Full(), "world")
		} else {
			worldCount++
		}
		return true, nil
	}
	cb.SetExecutors([]cmd.Executor{
		cmds.Execute,    // execute 'alias'
		al.Executor(cb), // execute 'hello'
		p,               // execute 'world'
	})

	cb.AddText("alias hello world\n")
	if err := cb.Execute(); err != nil {
		t.Fatal(err)
	}
	cb.AddText("hello\n")
	cb.AddText("world\n")
	if err := cb.Execute(); err != nil {
		t.Fatal(err)
	}
	if worldCount != 2 {
		// once for 'hello' -> 'world' and once for 'world'
		t.Errorf("Executed 'world' %d times, want %d", worldCount, 2)
	}
}

func TestUnaliasAll(t *testing.T) {
	al, _, cb := setup(t)
	al.Set("a", "b")
	al.Set("c", "d")
	cb.AddText("unaliasall\n")
	if err := cb.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, ok := al.Get("a"); ok {
		t.Errorf("a still defined")
	}
}

func TestPrintAlias(t *testing.T) {
	var pfout, spfout string
	conlog.SetPrintf(func(s string, a ...interface{}) {
		pfout += fmt.Sprintf(s, a...)
	})
	conlog.SetSafePrintf(func(s string, a ...interface{}) {
		spfout += fmt.Sprintf(s, a...)
	})
	defer conlog.SetPrintf(nil)
	defer conlog.SetSafePrintf(nil)

	al, _, cb := setup(t)

	cb.AddText("alias\n")
	cb.Execute()
	if spfout != "no alias commands found\n" {
		t.Errorf("alias = %q", spfout)
	}
	spfout = ""
	cb.AddText("alias hello world\n")
	cb.AddText("alias\n")
	cb.Execute()
	if want := "  hello: world\n1 alias command(s)\n"; spfout != want {
		t.Errorf("alias = %q, want %q", spfout, want)
	}
	cb.AddText("alias HELLO\n")
	cb.Execute()
	if want := "  HELLO: world\n"; pfout != want {
		t.Errorf("alias HELLO = %q, want %q", pfout, want)
	}
	pfout = ""
	cb.AddText("unalias hello; unalias hello\n")
	cb.Execute()
	if want := "No alias named hello\n"; pfout != want {
		t.Errorf("unalias = %q, want %q", pfout, want)
	}
	if _, ok := al.Get("hello"); ok {
		t.Errorf("hello still defined")
	}
}
