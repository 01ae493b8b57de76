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
	"bytes"
	"strconv"
	"time"
)

// headerEncoder fills a header buffer field by field and remembers the first
// field that did not fit.
type headerEncoder struct {
	s   slicer
	err error
}

func (e *headerEncoder) string(field string, width int, str string) {
	b := e.s.next(width)
	if e.err != nil {
		return
	}
	if len(str) > width {
		e.err = ErrFieldOverflow.New(field, str, width)
		return
	}
	n := copy(b, str)
	for ; n < len(b); n++ {
		b[n] = ' '
	}
}

func (e *headerEncoder) numeric(field string, width int, x int64) {
	e.string(field, width, strconv.FormatInt(x, 10))
}

func (e *headerEncoder) octal(field string, width int, x int64) {
	e.string(field, width, strconv.FormatInt(x, 8))
}

// id writes a user or group id, leaving the field blank for negative ids.
func (e *headerEncoder) id(field string, width int, x int) {
	if x < 0 {
		e.string(field, width, "")
		return
	}
	e.numeric(field, width, int64(x))
}

// encodeHeader renders hdr as a 60-byte member header. hdr.Name must already
// be the inline form: either a literal name or a "/<offset>" reference.
func encodeHeader(hdr *memberHeader) ([]byte, error) {
	header := make([]byte, HEADER_BYTE_SIZE)
	e := &headerEncoder{s: slicer(header)}
	e.string("name", nameWidth, hdr.Name)
	e.numeric("date", dateWidth, hdr.ModTime.Unix())
	e.id("uid", uidWidth, hdr.Uid)
	e.id("gid", gidWidth, hdr.Gid)
	e.octal("mode", modeWidth, hdr.Mode)
	e.numeric("size", sizeWidth, hdr.Size)
	copy(e.s.next(len(headerTerminator)), headerTerminator)
	if e.err != nil {
		return nil, e.err
	}
	return header, nil
}

func trimField(b []byte) string {
	return string(bytes.TrimRight(b, " "))
}

func parseField(field string, b []byte, base int) (int64, error) {
	s := trimField(b)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, ErrInvalidHeader.Wrap(err, field)
	}
	return n, nil
}

// decodeHeader parses a 60-byte member header. Blank uid and gid fields
// decode as -1 so that they survive a round trip through encodeHeader.
func decodeHeader(b []byte) (*memberHeader, error) {
	if len(b) != HEADER_BYTE_SIZE {
		return nil, ErrInvalidHeader.New("short header of " + strconv.Itoa(len(b)) + " bytes")
	}
	if string(b[HEADER_BYTE_SIZE-len(headerTerminator):]) != headerTerminator {
		return nil, ErrInvalidHeader.New("bad terminator")
	}

	s := slicer(b)
	hdr := &memberHeader{Name: trimField(s.next(nameWidth))}

	date, err := parseField("date", s.next(dateWidth), 10)
	if err != nil {
		return nil, err
	}
	hdr.ModTime = time.Unix(date, 0)

	for _, f := range []struct {
		name  string
		width int
		dst   *int
	}{
		{"uid", uidWidth, &hdr.Uid},
		{"gid", gidWidth, &hdr.Gid},
	} {
		raw := s.next(f.width)
		if trimField(raw) == "" {
			*f.dst = -1
			continue
		}
		n, err := parseField(f.name, raw, 10)
		if err != nil {
			return nil, err
		}
		*f.dst = int(n)
	}

	if hdr.Mode, err = parseField("mode", s.next(modeWidth), 8); err != nil {
		return nil, err
	}
	if hdr.Size, err = parseField("size", s.next(sizeWidth), 10); err != nil {
		return nil, err
	}
	return hdr, nil
}
