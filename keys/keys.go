// SPDX-License-Identifier: GPL-2.0-or-later

// Package keys maps key names to console commands.
package keys

import (
	"fmt"
	"slices"
	"strings"

	"goportal/cmd"
	"goportal/conlog"
)

var bindings = map[string]string{}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func Bind(key, command string) {
	bindings[normalize(key)] = command
}

func Unbind(key string) {
	delete(bindings, normalize(key))
}

func UnbindAll() {
	clear(bindings)
}

func Binding(key string) (string, bool) {
	b, ok := bindings[normalize(key)]
	return b, ok
}

// Event returns the console text for a key change or "" if nothing is
// bound. A binding starting with '+' is sent with the key number on press
// and as '-' command on release so a button is held by the key. Other
// bindings only run on press.
func Event(key string, num int, down bool) string {
	b, ok := Binding(key)
	if !ok || b == "" {
		return ""
	}
	if b[0] == '+' {
		name, _, _ := strings.Cut(b, " ")
		if down {
			return fmt.Sprintf("%s %d\n", name, num)
		}
		return fmt.Sprintf("-%s %d\n", name[1:], num)
	}
	if !down {
		return ""
	}
	return b + "\n"
}

// SetDefaults binds the camera controls.
func SetDefaults() {
	for k, v := range map[string]string{
		"w":          "+forward",
		"s":          "+back",
		"a":          "+moveleft",
		"d":          "+moveright",
		"space":      "+moveup",
		"c":          "+movedown",
		"left":       "+left",
		"right":      "+right",
		"up":         "+lookup",
		"down":       "+lookdown",
		"left shift": "+speed",
		"l":          "light 300",
		"escape":     "quit",
	} {
		Bind(k, v)
	}
}

func bind(a cmd.Arguments) error {
	args := a.Args()
	switch len(args) {
	case 1:
		conlog.Printf("bind <key> [command] : attach a command to a key\n")
	case 2:
		if b, ok := Binding(args[1].String()); ok {
			conlog.Printf("\"%s\" = \"%s\"\n", args[1], b)
		} else {
			conlog.Printf("\"%s\" is not bound\n", args[1])
		}
	default:
		var c []string
		for _, arg := range args[2:] {
			c = append(c, arg.String())
		}
		Bind(args[1].String(), strings.Join(c, " "))
	}
	return nil
}

func unbind(a cmd.Arguments) error {
	args := a.Args()
	if len(args) != 2 {
		conlog.Printf("unbind <key> : remove commands from a key\n")
		return nil
	}
	Unbind(args[1].String())
	return nil
}

func bindList(_ cmd.Arguments) error {
	var names []string
	for k := range bindings {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		conlog.Printf("%s \"%s\"\n", k, bindings[k])
	}
	return nil
}

func init() {
	cmd.Must(cmd.AddCommand("bind", bind))
	cmd.Must(cmd.AddCommand("unbind", unbind))
	cmd.Must(cmd.AddCommand("unbindall", func(cmd.Arguments) error {
		UnbindAll()
		return nil
	}))
	cmd.Must(cmd.AddCommand("bindlist", bindList))
}
