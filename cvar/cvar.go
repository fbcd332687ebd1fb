// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"log"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"goportal/cmd"
	"goportal/conlog"
)

var (
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)

	ErrUnknown = errors.New("unknown cvar")
)

type flag uint64

const (
	NONE flag = 0
	// ARCHIVE marks user settings, cvarlist shows them with a "*".
	ARCHIVE flag = 1
	ROM     flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	id           int
}

func All() []*Cvar {
	return cvarArray
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) ReadOnly() bool {
	return cv.rom
}

func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		cv.SetByString(strconv.FormatInt(int64(value), 10))
	} else {
		cv.SetByString(strconv.FormatFloat(float64(value), 'f', -1, 32))
	}
}

func (cv *Cvar) Toggle() {
	if cv.Bool() {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0" && cv.stringValue != ""
}

func Get(name string) (*Cvar, bool) {
	cv, ok := cvarByName[name]
	return cv, ok
}

// Set changes an existing cvar.
func Set(name, value string) error {
	cv, ok := Get(name)
	if !ok {
		return errors.Wrap(ErrUnknown, name)
	}
	cv.SetByString(value)
	return nil
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.SetByString(value)
	cv.id = len(cvarArray)
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	if _, ok := cvarByName[name]; ok {
		return nil, errors.Errorf("can't register variable %s, already defined", name)
	}
	cv := create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.rom = flags&ROM != 0
	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		log.Panic(n)
	}
	return cv
}

// Execute handles a line whose first word names a cvar. With no value it
// prints the cvar, otherwise it sets it.
func Execute(a cmd.Arguments) (bool, error) {
	args := a.Args()
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := Get(args[0].String())
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	cv.SetByString(args[1].String())
	return true, nil
}

func init() {
	cmd.Must(cmd.AddCommand("cvarlist", list))
	cmd.Must(cmd.AddCommand("cycle", cycle))
	cmd.Must(cmd.AddCommand("inc", inc))
	cmd.Must(cmd.AddCommand("reset", reset))
	cmd.Must(cmd.AddCommand("resetall", resetAll))
	cmd.Must(cmd.AddCommand("set", set))
	cmd.Must(cmd.AddCommand("toggle", toggle))
}

func set(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("set <cvar> <value>\n")
		return nil
	}
	n := args[0].String()
	if cmd.Exists(n) {
		conlog.Printf("conflict with command\n")
		return nil
	}
	if cv, ok := cvarByName[n]; ok {
		cv.SetByString(args[1].String())
	} else {
		cv := create(n, args[1].String())
		cv.user = true
	}
	return nil
}

func toggle(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("toggle <cvar> : toggle cvar\n")
		return nil
	}
	arg := args[0].String()
	if cv, ok := Get(arg); ok {
		cv.Toggle()
	} else {
		slog.Debug("toggle: cvar not found", "name", arg)
		conlog.Printf("toggle: variable %v not found\n", arg)
	}
	return nil
}

func incr(n string, v float32) {
	if cv, ok := Get(n); ok {
		cv.SetValue(cv.Value() + v)
	} else {
		conlog.Printf("inc: variable %v not found\n", n)
	}
}

func inc(a cmd.Arguments) error {
	args := a.Args()[1:]
	switch len(args) {
	case 1:
		incr(args[0].String(), 1)
	case 2:
		incr(args[0].String(), args[1].Float32())
	default:
		conlog.Printf("inc <cvar> [amount] : increment cvar\n")
	}
	return nil
}

func reset(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("reset <cvar> : reset cvar to default\n")
		return nil
	}
	arg := args[0].String()
	if cv, ok := Get(arg); ok {
		cv.Reset()
	} else {
		conlog.Printf("reset: variable %v not found\n", arg)
	}
	return nil
}

func resetAll(_ cmd.Arguments) error {
	for _, cv := range All() {
		cv.Reset()
	}
	return nil
}

func list(a cmd.Arguments) error {
	args := a.Args()
	part := ""
	if len(args) > 1 {
		part = args[1].String()
	}
	count := 0
	for _, v := range All() {
		if !strings.HasPrefix(v.Name(), part) {
			continue
		}
		mark := " "
		if v.Archive() {
			mark = "*"
		}
		conlog.SafePrintf("%s %s \"%s\"\n", mark, v.Name(), v.String())
		count++
	}
	if part == "" {
		conlog.SafePrintf("%v cvars\n", count)
	} else {
		conlog.SafePrintf("%v cvars beginning with \"%v\"\n", count, part)
	}
	return nil
}

func cycle(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("cycle <cvar> <value list>: cycle cvar through a list of values\n")
		return nil
	}
	cv, ok := Get(args[0].String())
	if !ok {
		conlog.Printf("cycle: variable %v not found\n", args[0].String())
		return nil
	}
	old := cv.String()
	i := 0
	for i < len(args)-1 {
		i++
		if old == args[i].String() {
			break
		}
	}
	i %= len(args) - 1
	i++
	cv.SetByString(args[i].String())
	return nil
}
