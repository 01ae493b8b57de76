package coffar

import (
	"time"
)

const (
	HEADER_BYTE_SIZE = 60
	GLOBAL_HEADER    = "!<arch>\n"

	// headerTerminator closes every member header.
	headerTerminator = "`\n"

	// longNameTerminator follows each name stored in the long-name table.
	longNameTerminator = "/\n"

	// padByte fills the gap after a payload of odd length.
	padByte = '\n'
)

// Reserved member names.
const (
	linkerMemberName   = "/"
	longNameMemberName = "//"
)

// Widths of the fixed header fields, in on-disk order.
const (
	nameWidth = 16
	dateWidth = 12
	uidWidth  = 6
	gidWidth  = 6
	modeWidth = 8
	sizeWidth = 10
)

// memberHeader is the decoded form of a 60-byte member header.
type memberHeader struct {
	Name    string
	ModTime time.Time
	// Uid and Gid are written as blank fields when negative.
	Uid  int
	Gid  int
	Mode int64
	Size int64
}

// Member is one object file to be placed in the archive. Data is borrowed,
// not copied, and must not be modified until Flush returns.
type Member struct {
	Name    string
	Mode    int64
	ModTime time.Time
	Data    []byte

	// Symbols lists the externally visible symbols the member defines, in
	// the order the object parser reported them.
	Symbols []string
}

type slicer []byte

func (sp *slicer) next(n int) (b []byte) {
	s := *sp
	b, *sp = s[0:n], s[n:]
	return
}

// paddedSize is the on-disk length of a payload of n bytes.
func paddedSize(n int64) int64 {
	return n + n%2
}
