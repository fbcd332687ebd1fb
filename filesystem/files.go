// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem resolves data file names against a search path of
// directories and pack files. Later entries shadow earlier ones.
package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"goportal/pack"
)

type File interface {
	io.ReadSeekCloser
	io.ReaderAt
}

type source interface {
	open(name string) (File, error)
	String() string
}

type dirSource string

func (d dirSource) open(name string) (File, error) {
	return os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
}

func (d dirSource) String() string {
	return string(d)
}

type packSource struct {
	p *pack.Pack
}

type closer struct {
	*io.SectionReader
}

func (*closer) Close() error {
	return nil
}

func (p packSource) open(name string) (File, error) {
	f, err := p.p.Open(name)
	if err != nil {
		return nil, err
	}
	return &closer{f}, nil
}

func (p packSource) String() string {
	return p.p.String()
}

var (
	mutex   sync.RWMutex
	baseDir string
	search  []source
)

func BaseDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return baseDir
}

// UseBaseDir drops the current search path and starts a new one at dir.
func UseBaseDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	for _, s := range search {
		if p, ok := s.(packSource); ok {
			p.p.Close()
		}
	}
	baseDir = dir
	search = nil
	addDir(dir)
}

// AddGameDir puts dir, relative to the base dir unless absolute, in front of
// the search path.
func AddGameDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	addDir(dir)
}

// addDir adds the directory itself followed by pak0.pak, pak1.pak, ... so a
// higher pak number wins over a lower one and every pak over loose files.
func addDir(dir string) {
	search = append(search, dirSource(dir))
	for i := 0; ; i++ {
		pfp := filepath.Join(dir, fmt.Sprintf("pak%d.pak", i))
		p, err := pack.NewPackReader(pfp)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("Skipping pack", slog.String("pack", pfp), slog.Any("err", err))
			}
			break
		}
		search = append(search, packSource{p})
	}
}

// SearchPath lists the sources from highest to lowest priority.
func SearchPath() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	r := make([]string, 0, len(search))
	for i := len(search) - 1; i >= 0; i-- {
		r = append(r, search[i].String())
	}
	return r
}

func Open(name string) (File, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	name = strings.TrimPrefix(filepath.ToSlash(name), "/")
	for i := len(search) - 1; i >= 0; i-- {
		f, err := search[i].open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, search[i].String())
		}
	}
	return nil, errors.Wrap(fs.ErrNotExist, name)
}

func ReadFile(name string) ([]byte, error) {
	file, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
