// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

type QArg struct {
	a string
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a QArg) Float32() float32 {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0
	}
	return float32(r)
}

func (a QArg) Bool() bool {
	switch strings.ToLower(a.a) {
	case "1", "t", "true", "on", "yes":
		return true
	default:
		return false
	}
}

type Arguments struct {
	args []QArg
	full string
}

func (c *Arguments) Argv(i int) QArg {
	if i < 0 || i >= len(c.args) {
		slog.Debug("Argv out of bounds", "i", i, "len", len(c.args))
		return QArg{}
	}
	return c.args[i]
}

func (c *Arguments) Full() string {
	return c.full
}

func (c *Arguments) Args() []QArg {
	return c.args
}

// ArgumentString is everything after the command name with one level of
// surrounding quotes removed.
func (c *Arguments) ArgumentString() string {
	if len(c.args) < 2 {
		return ""
	}
	r := strings.TrimPrefix(c.full, c.args[0].String())
	r = strings.TrimLeftFunc(r, unicode.IsSpace)
	if len(r) > 1 && r[0] == '"' {
		r = strings.Trim(r, "\"\t\n\v\f\r ")
	}
	return r
}

// Parse splits a single command line into arguments. Quoted strings form one
// argument, a // starts a comment which runs to the end of the line.
func Parse(s string) (args Arguments) {
	args.full = strings.TrimFunc(s, unicode.IsSpace)
	args.args = []QArg{}
	in := args.full
	for i := 0; i < len(in); {
		switch c := in[i]; {
		case c == '\n' || c == '\r':
			return
		case c <= ' ':
			i++
		case c == '"':
			end := strings.IndexAny(in[i+1:], "\"\n")
			if end < 0 || in[i+1+end] == '\n' {
				slog.Debug("unterminated string", "line", in)
				return
			}
			args.args = append(args.args, QArg{in[i+1 : i+1+end]})
			i += end + 2
		case strings.HasPrefix(in[i:], "//"):
			return
		default:
			j := i
			for j < len(in) && in[j] > ' ' && in[j] != '"' {
				j++
			}
			args.args = append(args.args, QArg{in[i:j]})
			i = j
		}
	}
	return
}
