// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "cmp"

// Clamp limits val to [lo, hi].
func Clamp[K cmp.Ordered](lo, val, hi K) K {
	return min(max(val, lo), hi)
}
