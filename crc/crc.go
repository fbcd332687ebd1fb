// SPDX-License-Identifier: GPL-2.0-or-later

// Package crc implements CRC-16/CCITT-FALSE, polynomial 0x1021 with an
// initial value of 0xffff.
package crc

const (
	poly    = 0x1021
	initial = 0xffff
)

var table = func() (t [256]uint16) {
	for i := range t {
		c := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if c&0x8000 != 0 {
				c = (c << 1) ^ poly
			} else {
				c <<= 1
			}
		}
		t[i] = c
	}
	return t
}()

// Extend continues the checksum c over p.
func Extend(c uint16, p []byte) uint16 {
	for _, v := range p {
		c = table[byte(c>>8)^v] ^ (c << 8)
	}
	return c
}

// Update returns the checksum of p.
func Update(p []byte) uint16 {
	return Extend(initial, p)
}
