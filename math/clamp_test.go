// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestClamp(t *testing.T) {
	for _, tt := range [][4]float32{
		{1, 0, 10, 1},
		{1, 100, 10, 10},
		{1, 5, 10, 5},
		{-89, -120, 89, -89},
	} {
		if got := Clamp(tt[0], tt[1], tt[2]); got != tt[3] {
			t.Errorf("Clamp(%v,%v,%v) = %v want %v", tt[0], tt[1], tt[2], got, tt[3])
		}
	}
	if got := Clamp(0, 7, 3); got != 3 {
		t.Errorf("Clamp(0,7,3) = %v", got)
	}
}
