// SPDX-License-Identifier: GPL-2.0-or-later

package input

import (
	"testing"

	"goportal/cmd"
)

func run(t *testing.T, text string) {
	t.Helper()
	b := cmd.NewBuffer(cmd.Execute)
	b.AddText(text)
	if err := b.Execute(); err != nil {
		t.Fatalf("Execute(%q): %v", text, err)
	}
}

func TestImpulse(t *testing.T) {
	tests := []struct {
		name string
		cmds string
		want float32
	}{
		{"idle", "", 0},
		{"pressed", "+forward 10", 0.5},
		{"tapped", "+forward 10; -forward 10", 0.25},
		{"tapped twice", "+forward 10; -forward 10; +forward 10", 0.75},
		{"other key", "+forward 10; -forward 11", 0.5},
		{"typed release", "+forward 10; +forward 11; -forward", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetAll()
			run(t, tt.cmds)
			if got := Forward.ConsumeImpulse(); got != tt.want {
				t.Errorf("Impulse after %q = %v want %v", tt.cmds, got, tt.want)
			}
		})
	}
}

func TestHeld(t *testing.T) {
	ResetAll()
	run(t, "+moveup 5; +moveup 6")
	MoveUp.ResetImpulse()
	if got := MoveUp.Impulse(); got != 1 {
		t.Errorf("held Impulse = %v want 1", got)
	}
	run(t, "-moveup 5")
	if !MoveUp.Down() {
		t.Errorf("released while key 6 holds it")
	}
	run(t, "-moveup 6")
	if MoveUp.Down() {
		t.Errorf("still down after both keys released")
	}
	if got := MoveUp.ConsumeImpulse(); got != 0 {
		t.Errorf("released Impulse = %v want 0", got)
	}
}

func TestAxis(t *testing.T) {
	ResetAll()
	run(t, "+left 1; +right 2")
	Left.ResetImpulse()
	Right.ResetImpulse()
	run(t, "-right 2")
	if got := Axis(&Left, &Right); got != 1 {
		t.Errorf("Axis = %v want 1", got)
	}
	if !IsButton("lookdown") || IsButton("attack") {
		t.Errorf("unexpected button set")
	}
}
