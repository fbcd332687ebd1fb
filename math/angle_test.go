// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestAngleMod(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{180, 180},
		{66.5, 66.5},
		{180 + 360, 180},
		{180 - 360, 180},
		{0, 0},
		{360, 0},
		{-90, 270},
	}
	for _, tt := range tests {
		if got := AngleMod(tt.in); got != tt.want {
			t.Errorf("AngleMod(%v) = %v want %v", tt.in, got, tt.want)
		}
	}
}
