// SPDX-License-Identifier: GPL-2.0-or-later

// Package alias implements console aliases: named command lines which are
// expanded in place into the command buffer.
package alias

import (
	"slices"
	"strings"

	"goportal/cmd"
	"goportal/conlog"
)

type Aliases struct {
	aliases map[string]string
}

func New() *Aliases {
	return &Aliases{
		aliases: make(map[string]string),
	}
}

func (al *Aliases) alias(a cmd.Arguments) error {
	args := a.Args()[1:]
	switch len(args) {
	case 0:
		al.list()
	case 1:
		if v, ok := al.Get(args[0].String()); ok {
			conlog.Printf("  %s: %s", args[0], v)
		}
	default:
		c := make([]string, 0, len(args)-1)
		for _, arg := range args[1:] {
			c = append(c, arg.String())
		}
		al.Set(args[0].String(), strings.Join(c, " "))
	}
	return nil
}

func (al *Aliases) list() {
	if len(al.aliases) == 0 {
		conlog.SafePrintf("no alias commands found\n")
		return
	}
	names := make([]string, 0, len(al.aliases))
	for k := range al.aliases {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		// each value ends with a '\n'
		conlog.SafePrintf("  %s: %s", k, al.aliases[k])
	}
	conlog.SafePrintf("%v alias command(s)\n", len(al.aliases))
}

func (al *Aliases) unalias(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("unalias <name> : delete alias\n")
		return nil
	}
	name := strings.ToLower(args[0].String())
	if _, ok := al.aliases[name]; !ok {
		conlog.Printf("No alias named %s\n", name)
		return nil
	}
	delete(al.aliases, name)
	return nil
}

// Set defines name to expand into command.
func (al *Aliases) Set(name, command string) {
	al.aliases[strings.ToLower(name)] = strings.TrimSpace(command) + "\n"
}

func (al *Aliases) Get(name string) (string, bool) {
	a, ok := al.aliases[strings.ToLower(name)]
	return a, ok
}

// Register adds alias, unalias and unaliasall through add, which is either
// cmd.AddCommand or the Add method of a private command set.
func (al *Aliases) Register(add func(name string, f cmd.Func) error) error {
	if err := add("alias", al.alias); err != nil {
		return err
	}
	if err := add("unalias", al.unalias); err != nil {
		return err
	}
	return add("unaliasall", func(cmd.Arguments) error {
		clear(al.aliases)
		return nil
	})
}

// Executor expands an alias in front of the remaining text of b.
func (al *Aliases) Executor(b *cmd.Buffer) cmd.Executor {
	return func(a cmd.Arguments) (bool, error) {
		args := a.Args()
		if len(args) == 0 {
			return false, nil
		}
		v, ok := al.Get(args[0].String())
		if !ok {
			return false, nil
		}
		b.InsertText(strings.TrimSuffix(v, "\n"))
		return true, nil
	}
}
