// SPDX-License-Identifier: GPL-2.0-or-later

package qtime

import (
	"time"
)

var (
	startTime = time.Now()
)

func QTime() time.Duration {
	return time.Since(startTime)
}

// Clock hands out frame deltas in seconds. The first Frame returns 0.
type Clock struct {
	now  func() time.Duration
	last time.Duration
	init bool
	// MaxFrame caps a single delta, 0 means no cap.
	MaxFrame float32
}

func NewClock() *Clock {
	return &Clock{now: QTime, MaxFrame: 0.1}
}

func (c *Clock) Frame() float32 {
	t := c.now()
	if !c.init {
		c.init = true
		c.last = t
		return 0
	}
	dt := float32((t - c.last).Seconds())
	c.last = t
	if c.MaxFrame > 0 && dt > c.MaxFrame {
		dt = c.MaxFrame
	}
	return dt
}
