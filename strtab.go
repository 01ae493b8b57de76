package coffar

import (
	"strconv"
	"strings"
)

// stringTable is the payload of the "//" member. It stores names too long
// for the inline header field, each followed by longNameTerminator, and
// hands out the byte offset at which each name begins.
type stringTable struct {
	data    []byte
	offsets map[string]int
}

func newStringTable() *stringTable {
	return &stringTable{offsets: map[string]int{}}
}

// intern returns the offset of name, appending it on first sight.
func (t *stringTable) intern(name string) int {
	if off, ok := t.offsets[name]; ok {
		return off
	}
	off := len(t.data)
	t.offsets[name] = off
	t.data = append(t.data, name...)
	t.data = append(t.data, longNameTerminator...)
	return off
}

// checkName rejects names whose header form would be ambiguous. Inline
// names may not start with "/", which marks the reserved members and
// long-name references; long names may not contain the table terminator.
func checkName(name string) error {
	switch {
	case name == "":
		return ErrInvalidName.New(name, "empty name")
	case len(name) <= nameWidth && name[0] == '/':
		return ErrInvalidName.New(name, "inline name starts with '/'")
	case len(name) > nameWidth && strings.Contains(name, longNameTerminator):
		return ErrInvalidName.New(name, "name contains the long-name terminator")
	}
	return nil
}

// resolveName returns the inline header name for a member: the name itself
// if it fits, otherwise a reference into the table.
func (t *stringTable) resolveName(name string) string {
	if len(name) <= nameWidth {
		return name
	}
	return "/" + strconv.Itoa(t.intern(name))
}

func (t *stringTable) len() int {
	return len(t.data)
}

func (t *stringTable) bytes() []byte {
	return t.data
}
