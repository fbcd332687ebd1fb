// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"bytes"
	"os"
	"testing"

	"github.com/pkg/errors"

	"goportal/cmd"
	"goportal/conlog"
)

func run(t *testing.T, text string) {
	t.Helper()
	b := cmd.NewBuffer(cmd.Execute, Execute)
	b.AddText(text)
	if err := b.Execute(); err != nil {
		t.Fatal(err)
	}
}

func TestRegister(t *testing.T) {
	cv := MustRegister("test_register", "2.5", ARCHIVE)
	if cv.Value() != 2.5 || cv.String() != "2.5" || !cv.Archive() {
		t.Errorf("got %v/%q/%v", cv.Value(), cv.String(), cv.Archive())
	}
	if _, err := Register("test_register", "1", NONE); err == nil {
		t.Errorf("double Register succeeded")
	}
	if got, ok := Get("test_register"); !ok || got != cv {
		t.Errorf("Get returned %v,%v", got, ok)
	}
}

func TestROM(t *testing.T) {
	cv := MustRegister("test_rom", "1", ROM)
	cv.SetByString("0")
	if cv.String() != "1" {
		t.Errorf("read only cvar changed to %q", cv.String())
	}
}

func TestCallbackAndSetValue(t *testing.T) {
	cv := MustRegister("test_callback", "0", NONE)
	var seen []string
	cv.SetCallback(func(c *Cvar) { seen = append(seen, c.String()) })
	cv.SetValue(3)
	cv.SetValue(0.25)
	if len(seen) != 2 || seen[0] != "3" || seen[1] != "0.25" {
		t.Errorf("callback saw %q", seen)
	}
}

func TestSet(t *testing.T) {
	MustRegister("test_set", "0", NONE)
	if err := Set("test_set", "7"); err != nil {
		t.Fatal(err)
	}
	if err := Set("test_missing", "7"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Set(missing) = %v, want ErrUnknown", err)
	}
}

func TestConsoleCommands(t *testing.T) {
	cv := MustRegister("test_console", "0", NONE)
	run(t, "toggle test_console")
	if !cv.Bool() {
		t.Errorf("toggle left %q", cv.String())
	}
	run(t, "inc test_console 2")
	if cv.Value() != 3 {
		t.Errorf("inc gave %v, want 3", cv.Value())
	}
	run(t, "test_console 5")
	if cv.Value() != 5 {
		t.Errorf("direct set gave %v, want 5", cv.Value())
	}
	run(t, "cycle test_console 1 5 9")
	if cv.String() != "9" {
		t.Errorf("cycle gave %q, want 9", cv.String())
	}
	run(t, "cycle test_console 1 5 9")
	if cv.String() != "1" {
		t.Errorf("cycle wrap gave %q, want 1", cv.String())
	}
	run(t, "reset test_console")
	if cv.String() != "0" {
		t.Errorf("reset gave %q, want 0", cv.String())
	}
	run(t, "set test_user 4")
	if u, ok := Get("test_user"); !ok || !u.UserDefined() || u.Value() != 4 {
		t.Errorf("set did not create a user cvar")
	}
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	conlog.SetOutput(&out)
	defer conlog.SetOutput(os.Stdout)
	MustRegister("test_print", "abc", NONE)
	run(t, "test_print")
	if want := "\"test_print\" is \"abc\"\n"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestListMarksArchive(t *testing.T) {
	var out bytes.Buffer
	conlog.SetOutput(&out)
	defer conlog.SetOutput(os.Stdout)
	MustRegister("test_list_saved", "1", ARCHIVE)
	MustRegister("test_list_temp", "2", NONE)
	run(t, "cvarlist test_list_")
	want := "* test_list_saved \"1\"\n" +
		"  test_list_temp \"2\"\n" +
		"2 cvars beginning with \"test_list_\"\n"
	if out.String() != want {
		t.Errorf("cvarlist = %q, want %q", out.String(), want)
	}
}
