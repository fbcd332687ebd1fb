// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strings"

	"goportal/conlog"
)

func init() {
	Must(AddCommand("cmdlist", printCmdList))
}

func printCmdList(a Arguments) error {
	args := a.Args()
	part := ""
	if len(args) > 1 {
		part = args[1].String()
	}
	count := 0
	for _, c := range List() {
		if strings.HasPrefix(c, part) {
			conlog.SafePrintf("  %s\n", c)
			count++
		}
	}
	if part == "" {
		conlog.SafePrintf("%v commands\n", count)
	} else {
		conlog.SafePrintf("%v commands beginning with \"%v\"\n", count, part)
	}
	return nil
}
