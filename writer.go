/*
Copyright (c) 2013 Blake Smith <blakesmith0@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package coffar

import (
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Writer assembles a COFF import-library archive (a ".lib" file).
//
// Writing happens in two phases. Reserve queues members without doing any
// I/O. Flush then lays the whole archive out, builds the long-name table and
// both linker members from the final member offsets, and writes everything
// to the underlying io.Writer in one sequential pass.
//
// Example:
//
//	archive := coffar.NewWriter(f)
//	for _, obj := range objects {
//		if err := archive.Reserve(obj); err != nil {
//			return err
//		}
//	}
//	if err := archive.Flush(); err != nil {
//		return err
//	}
//
// A Writer builds exactly one archive and is not safe for concurrent use.
type Writer struct {
	// w is the underlying io.Writer to which the archive file is written.
	w io.Writer

	logger        logrus.FieldLogger
	timestamp     time.Time
	deterministic bool

	// members holds the reserved members in reservation order.
	members []Member

	// flushed is true once Flush has been called, whether or not it succeeded.
	flushed bool

	// names is the archive's long-name table, the payload of the "//" member.
	names *stringTable

	// symbols maps each defined symbol to its first defining member.
	symbols *symbolCollector

	// size is the number of bytes handed to w so far.
	size int64
}

// plannedRecord is a member whose header and position are known before
// anything is written.
type plannedRecord struct {
	header memberHeader
	data   []byte
	offset int64
}

func (r *plannedRecord) size() int64 {
	return HEADER_BYTE_SIZE + paddedSize(r.header.Size)
}

// NewWriter creates a new Writer that writes an archive to an underlying
// io.Writer.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	aw := &Writer{
		w:         w,
		logger:    logrus.StandardLogger(),
		timestamp: time.Unix(0, 0),
		names:     newStringTable(),
		symbols:   newSymbolCollector(),
	}
	for _, opt := range opts {
		opt(aw)
	}
	return aw
}

// Reserve includes m in the archive written by Flush. Members are written
// in reservation order, and an earlier member wins the symbol index entry
// for a symbol that several members define.
func (aw *Writer) Reserve(m Member) error {
	if aw.flushed {
		return ErrWriterFlushed.New()
	}
	m.Symbols = append([]string(nil), m.Symbols...)
	aw.members = append(aw.members, m)
	return nil
}

// DuplicateSymbols returns, sorted, the symbols defined more than once among
// the members seen so far by Flush. Duplicates are legal; the linker picks
// which definition to use.
func (aw *Writer) DuplicateSymbols() []string {
	return aw.symbols.duplicates()
}

// Size returns the number of bytes written to the underlying io.Writer.
func (aw *Writer) Size() int64 {
	return aw.size
}

func (aw *Writer) date(t time.Time) time.Time {
	if aw.deterministic || t.IsZero() {
		return time.Unix(0, 0)
	}
	return t
}

func (aw *Writer) reservedRecord(name string, size int64) *plannedRecord {
	return &plannedRecord{header: memberHeader{
		Name:    name,
		ModTime: aw.date(aw.timestamp),
		Uid:     -1,
		Gid:     -1,
		Size:    size,
	}}
}

// plan resolves member names, collects symbols and computes the final
// position of every record. The returned records are in emission order.
func (aw *Writer) plan() ([]*plannedRecord, error) {
	if len(aw.members) > maxIndexedMembers {
		return nil, ErrTooManyMembers.New(len(aw.members), maxIndexedMembers)
	}

	records := make([]*plannedRecord, len(aw.members))
	for i, m := range aw.members {
		if err := checkName(m.Name); err != nil {
			return nil, err
		}
		if err := checkSymbols(m.Name, m.Symbols); err != nil {
			return nil, err
		}
		records[i] = &plannedRecord{
			header: memberHeader{
				Name:    aw.names.resolveName(m.Name),
				ModTime: aw.date(m.ModTime),
				Uid:     -1,
				Gid:     -1,
				Mode:    m.Mode,
				Size:    int64(len(m.Data)),
			},
			data: m.Data,
		}
		for _, dup := range aw.symbols.register(i, m.Symbols) {
			owner, _ := aw.symbols.owner(dup)
			aw.logger.WithFields(logrus.Fields{
				"symbol": dup,
				"member": m.Name,
				"owner":  aw.members[owner].Name,
			}).Debug("duplicate symbol definition")
		}
	}

	// The sizes of the reserved members depend only on symbol and name
	// counts, so their position is fixed before any offset is known.
	first := aw.reservedRecord(linkerMemberName, symbolIndexSize(aw.symbols))
	second := aw.reservedRecord(linkerMemberName, memberIndexSize(len(records), aw.symbols))
	preamble := []*plannedRecord{first, second}
	if aw.names.len() > 0 {
		longNames := aw.reservedRecord(longNameMemberName, int64(aw.names.len()))
		longNames.data = aw.names.bytes()
		preamble = append(preamble, longNames)
	}

	pos := int64(len(GLOBAL_HEADER))
	for _, r := range preamble {
		r.offset = pos
		pos += r.size()
	}
	offsets := make([]uint32, len(records))
	for i, r := range records {
		if pos > math.MaxUint32 {
			return nil, ErrOffsetOverflow.New(aw.members[i].Name, pos)
		}
		r.offset = pos
		offsets[i] = uint32(pos)
		pos += r.size()
		aw.logger.WithFields(logrus.Fields{
			"member": aw.members[i].Name,
			"header": r.header.Name,
			"offset": r.offset,
			"size":   r.header.Size,
		}).Debug("planned archive member")
	}

	first.data = symbolIndex(aw.symbols, offsets)
	second.data = memberIndex(aw.symbols, offsets)
	return append(preamble, records...), nil
}

func (aw *Writer) write(p []byte) error {
	n, err := aw.w.Write(p)
	aw.size += int64(n)
	return err
}

// Flush writes out the whole archive. It may only be called once. Every
// header is encoded before the first write, so a field overflow leaves the
// underlying io.Writer untouched; errors from the io.Writer itself are
// returned as they are and whatever was already written stays written.
func (aw *Writer) Flush() error {
	if aw.flushed {
		return ErrWriterFlushed.New()
	}
	aw.flushed = true

	records, err := aw.plan()
	if err != nil {
		return err
	}

	headers := make([][]byte, len(records))
	for i, r := range records {
		if headers[i], err = encodeHeader(&r.header); err != nil {
			return err
		}
	}

	if err := aw.write([]byte(GLOBAL_HEADER)); err != nil {
		return err
	}
	for i, r := range records {
		if err := aw.write(headers[i]); err != nil {
			return err
		}
		if err := aw.write(r.data); err != nil {
			return err
		}
		if len(r.data)%2 == 1 { // data size must be aligned to an even byte
			if err := aw.write([]byte{padByte}); err != nil {
				return err
			}
		}
	}

	aw.logger.WithFields(logrus.Fields{
		"members":    len(aw.members),
		"symbols":    len(aw.symbols.discovery()),
		"duplicates": len(aw.symbols.duplicated),
		"bytes":      aw.size,
	}).Debug("archive written")
	return nil
}
