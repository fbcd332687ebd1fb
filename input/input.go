// SPDX-License-Identifier: GPL-2.0-or-later

// package input tracks the camera buttons driven by +/- console commands
package input

import (
	"goportal/cmd"
)

type Button struct {
	// key nums holding it down, can handle 2 keys with the same action
	holdingDown [2]int
	down        bool
	impulseDown bool
	impulseUp   bool
}

var (
	Forward   Button
	Back      Button
	MoveLeft  Button
	MoveRight Button
	MoveUp    Button
	MoveDown  Button
	Left      Button
	Right     Button
	LookUp    Button
	LookDown  Button
	Speed     Button
)

var buttons = map[string]*Button{
	"forward":   &Forward,
	"back":      &Back,
	"moveleft":  &MoveLeft,
	"moveright": &MoveRight,
	"moveup":    &MoveUp,
	"movedown":  &MoveDown,
	"left":      &Left,
	"right":     &Right,
	"lookup":    &LookUp,
	"lookdown":  &LookDown,
	"speed":     &Speed,
}

func (b *Button) Down() bool {
	return b.down
}

// Impulse returns 0.25 if the button was pressed and released since the
// last reset, 0.75 if it was released and pressed again, 0.5 if it was
// pressed and is held, 0 if it was released and 1 if it was held the whole
// time.
func (b *Button) Impulse() float32 {
	switch {
	case b.impulseDown && b.impulseUp:
		if b.down {
			return 0.75
		}
		return 0.25
	case b.impulseDown:
		return 0.5
	case b.impulseUp:
		return 0
	case b.down:
		return 1
	}
	return 0
}

func (b *Button) ResetImpulse() {
	b.impulseDown = false
	b.impulseUp = false
}

func (b *Button) ConsumeImpulse() float32 {
	i := b.Impulse()
	b.ResetImpulse()
	return i
}

// Reset releases the button.
func (b *Button) Reset() {
	*b = Button{}
}

func (b *Button) upKey(k int) {
	if b.holdingDown[0] == k {
		b.holdingDown[0] = 0
	} else if b.holdingDown[1] == k {
		b.holdingDown[1] = 0
	} else {
		return
	}
	if b.holdingDown[0] != 0 || b.holdingDown[1] != 0 {
		// some other key is still holding it down
		return
	}
	if !b.down {
		return
	}
	b.down = false
	b.impulseUp = true
}

func (b *Button) downKey(k int) {
	if b.holdingDown[0] == k || b.holdingDown[1] == k {
		return
	}
	if b.holdingDown[0] == 0 {
		b.holdingDown[0] = k
	} else if b.holdingDown[1] == 0 {
		b.holdingDown[1] = k
	} else {
		return
	}
	if b.down {
		return
	}
	b.down = true
	b.impulseDown = true
}

// Key events pass the key number as argument. Without one the command was
// typed and releases the button whatever holds it.
func (b *Button) upCmd(a cmd.Arguments) error {
	k := a.Args()[1:]
	if len(k) == 0 {
		b.holdingDown = [2]int{}
		if b.down {
			b.down = false
			b.impulseUp = true
		}
		return nil
	}
	b.upKey(k[0].Int())
	return nil
}

func (b *Button) downCmd(a cmd.Arguments) error {
	k := a.Args()[1:]
	if len(k) == 0 {
		b.downKey(-1)
		return nil
	}
	b.downKey(k[0].Int())
	return nil
}

// IsButton reports whether +name and -name are button commands.
func IsButton(name string) bool {
	_, ok := buttons[name]
	return ok
}

// Axis returns the impulse of pos minus the one of neg and resets both.
func Axis(pos, neg *Button) float32 {
	return pos.ConsumeImpulse() - neg.ConsumeImpulse()
}

// ResetAll releases every button.
func ResetAll() {
	for _, b := range buttons {
		b.Reset()
	}
}

func init() {
	for name, b := range buttons {
		cmd.Must(cmd.AddCommand("+"+name, b.downCmd))
		cmd.Must(cmd.AddCommand("-"+name, b.upCmd))
	}
}
