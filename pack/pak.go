// SPDX-License-Identifier: GPL-2.0-or-later

// Package pack reads and writes PACK archives: a header, the file data and a
// directory of fixed size entries.
package pack

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

var (
	magic = [4]byte{'P', 'A', 'C', 'K'}

	ErrNotPack  = errors.New("not a pack")
	ErrNameSize = errors.New("file name too long")
)

const (
	headerSize = 12
	entrySize  = 64
	nameSize   = 56
)

type header struct {
	ID     [4]byte
	Offset int32
	Size   int32
}

type entry struct {
	Name   [nameSize]byte
	Offset int32
	Size   int32
}

type Pack struct {
	r     io.ReaderAt
	c     io.Closer
	files map[string]qfile
	name  string
}

type qfile struct {
	offset int64
	size   int64
}

// Open returns a io.SectionReader for the named entry.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	q, ok := p.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NewSectionReader(p.r, q.offset, q.size), nil
}

// Names lists all entries sorted.
func (p *Pack) Names() []string {
	r := make([]string, 0, len(p.files))
	for n := range p.files {
		r = append(r, n)
	}
	sort.Strings(r)
	return r
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	if p.c == nil {
		return nil
	}
	return p.c.Close()
}

func (p *Pack) init(size int64) error {
	var h header
	if err := binary.Read(io.NewSectionReader(p.r, 0, headerSize), binary.LittleEndian, &h); err != nil {
		return errors.Wrap(ErrNotPack, err.Error())
	}
	if h.ID != magic {
		return ErrNotPack
	}
	if h.Offset < headerSize || h.Size < 0 || h.Size%entrySize != 0 ||
		int64(h.Offset)+int64(h.Size) > size {
		return errors.Wrapf(ErrNotPack, "bad directory %d+%d", h.Offset, h.Size)
	}
	filenum := int(h.Size / entrySize)
	dir := io.NewSectionReader(p.r, int64(h.Offset), int64(h.Size))
	p.files = make(map[string]qfile, filenum)
	for i := 0; i < filenum; i++ {
		var e entry
		if err := binary.Read(dir, binary.LittleEndian, &e); err != nil {
			return err
		}
		n := bytes.IndexByte(e.Name[:], 0)
		if n < 0 {
			n = nameSize
		}
		name := string(e.Name[:n])
		if _, ok := p.files[name]; ok {
			return errors.Errorf("files in pack are not unique: %s", name)
		}
		if e.Offset < 0 || e.Size < 0 || int64(e.Offset)+int64(e.Size) > size {
			return errors.Errorf("entry %s out of bounds", name)
		}
		p.files[name] = qfile{
			offset: int64(e.Offset),
			size:   int64(e.Size),
		}
	}
	return nil
}

func NewPackReader(name string) (*Pack, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	p := &Pack{r: f, c: f, name: name}
	if err := p.init(fi.Size()); err != nil {
		f.Close()
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}

// NewReader reads a pack held in memory or any other ReaderAt of known size.
func NewReader(name string, r io.ReaderAt, size int64) (*Pack, error) {
	p := &Pack{r: r, name: name}
	if err := p.init(size); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}

// Write stores files as a pack. Entries are written in name order.
func Write(w io.Writer, files map[string][]byte) error {
	names := make([]string, 0, len(files))
	for n := range files {
		if len(n) >= nameSize {
			return errors.Wrap(ErrNameSize, n)
		}
		names = append(names, n)
	}
	sort.Strings(names)

	var data bytes.Buffer
	dir := make([]entry, 0, len(names))
	for _, n := range names {
		var e entry
		copy(e.Name[:], n)
		e.Offset = int32(headerSize + data.Len())
		e.Size = int32(len(files[n]))
		data.Write(files[n])
		dir = append(dir, e)
	}
	h := header{
		ID:     magic,
		Offset: int32(headerSize + data.Len()),
		Size:   int32(len(dir) * entrySize),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, dir)
}
