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
	"encoding/binary"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// scannedMember is one record found in an archive, with the offset of its
// header from the start of the archive.
type scannedMember struct {
	Offset int64
	Header *memberHeader
	Data   []byte
}

// scanArchive walks every record in b, checking the global header, the
// alignment padding and that records exactly cover the input.
func scanArchive(t *testing.T, b []byte) []scannedMember {
	t.Helper()
	require.True(t, bytes.HasPrefix(b, []byte(GLOBAL_HEADER)), "missing global header")

	var members []scannedMember
	pos := int64(len(GLOBAL_HEADER))
	for pos < int64(len(b)) {
		require.LessOrEqual(t, pos+HEADER_BYTE_SIZE, int64(len(b)), "short header at %d", pos)
		hdr, err := decodeHeader(b[pos : pos+HEADER_BYTE_SIZE])
		require.NoError(t, err)
		body := pos + HEADER_BYTE_SIZE
		end := body + hdr.Size
		require.LessOrEqual(t, end, int64(len(b)), "short payload at %d", pos)
		members = append(members, scannedMember{Offset: pos, Header: hdr, Data: b[body:end]})
		if hdr.Size%2 == 1 {
			require.Less(t, end, int64(len(b)), "missing pad byte at %d", end)
			require.Equal(t, byte(padByte), b[end])
			end++
		}
		pos = end
	}
	require.Equal(t, int64(len(b)), pos)
	return members
}

// memberName resolves the name of a scanned real member, following long-name
// references into the string table payload.
func memberName(t *testing.T, strtab []byte, hdr *memberHeader) string {
	t.Helper()
	if !strings.HasPrefix(hdr.Name, "/") {
		return hdr.Name
	}
	start, err := strconv.Atoi(hdr.Name[1:])
	require.NoError(t, err, "invalid string table offset %q", hdr.Name)
	require.Less(t, start, len(strtab))
	end := bytes.Index(strtab[start:], []byte(longNameTerminator))
	require.NotEqual(t, -1, end, "missing long name terminator")
	return string(strtab[start : start+end])
}

type symbolIndexEntry struct {
	Name   string
	Offset uint32
}

func parseSymbolIndex(t *testing.T, b []byte) []symbolIndexEntry {
	t.Helper()
	require.GreaterOrEqual(t, len(b), 4)
	n := int(binary.BigEndian.Uint32(b))
	s := slicer(b[4:])
	entries := make([]symbolIndexEntry, n)
	for i := range entries {
		entries[i].Offset = binary.BigEndian.Uint32(s.next(4))
	}
	names := bytes.Split(bytes.TrimSuffix([]byte(s), []byte{0}), []byte{0})
	if n == 0 {
		require.Empty(t, s)
		return entries
	}
	require.Len(t, names, n)
	for i := range entries {
		entries[i].Name = string(names[i])
	}
	return entries
}

type memberIndexTable struct {
	Offsets []uint32
	Indices []uint16
	Names   []string
}

func parseMemberIndex(t *testing.T, b []byte) memberIndexTable {
	t.Helper()
	var tbl memberIndexTable
	s := slicer(b)
	members := int(binary.LittleEndian.Uint32(s.next(4)))
	for i := 0; i < members; i++ {
		tbl.Offsets = append(tbl.Offsets, binary.LittleEndian.Uint32(s.next(4)))
	}
	symbols := int(binary.LittleEndian.Uint32(s.next(4)))
	for i := 0; i < symbols; i++ {
		tbl.Indices = append(tbl.Indices, binary.LittleEndian.Uint16(s.next(2)))
	}
	for _, name := range bytes.Split(bytes.TrimSuffix([]byte(s), []byte{0}), []byte{0}) {
		if len(name) > 0 {
			tbl.Names = append(tbl.Names, string(name))
		}
	}
	require.Len(t, tbl.Names, symbols)
	return tbl
}
