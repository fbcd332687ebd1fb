// SPDX-License-Identifier: GPL-2.0-or-later

package keys

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"goportal/cmd"
	"goportal/conlog"
)

func TestEvent(t *testing.T) {
	UnbindAll()
	SetDefaults()
	tests := []struct {
		key  string
		down bool
		want string
	}{
		{"W", true, "+forward 26\n"},
		{"W", false, "-forward 26\n"},
		{"Left Shift", true, "+speed 26\n"},
		{"L", true, "light 300\n"},
		{"L", false, ""},
		{"F12", true, ""},
	}
	for _, tt := range tests {
		if got := Event(tt.key, 26, tt.down); got != tt.want {
			t.Errorf("Event(%q, %v) = %q want %q", tt.key, tt.down, got, tt.want)
		}
	}
}

func TestBindCommands(t *testing.T) {
	var out bytes.Buffer
	conlog.SetOutput(&out)
	defer conlog.SetOutput(os.Stdout)

	UnbindAll()
	b := cmd.NewBuffer(cmd.Execute)
	b.AddText("bind F \"light 100 1 0 0\"; bind g +forward; bind f; unbind g; bindlist")
	if err := b.Execute(); err != nil {
		t.Fatal(err)
	}
	if got, _ := Binding("f"); got != "light 100 1 0 0" {
		t.Errorf("Binding(f) = %q", got)
	}
	if _, ok := Binding("g"); ok {
		t.Errorf("g is still bound")
	}
	want := "\"f\" = \"light 100 1 0 0\"\nf \"light 100 1 0 0\"\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q want %q", got, want)
	}
	if !strings.HasPrefix(Event("f", 3, true), "light") {
		t.Errorf("Event(f) did not return the binding")
	}
}
