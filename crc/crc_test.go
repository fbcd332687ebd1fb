// SPDX-License-Identifier: GPL-2.0-or-later

package crc

import (
	"testing"
)

func TestUpdate(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
	}{
		{"", 0xffff},
		{"123456789", 0x29b1},
	}
	for _, tt := range tests {
		if got := Update([]byte(tt.in)); got != tt.want {
			t.Errorf("Update(%q) = %04x want %04x", tt.in, got, tt.want)
		}
	}
}

func TestExtend(t *testing.T) {
	whole := Update([]byte("portal flood"))
	if got := Extend(Update([]byte("portal")), []byte(" flood")); got != whole {
		t.Errorf("Extend = %04x want %04x", got, whole)
	}
}
