package coffar

import (
	"encoding/binary"
	"math"
)

// maxIndexedMembers is the largest member count the member index can refer
// to with its 1-based 16-bit positions.
const maxIndexedMembers = math.MaxUint16

// symbolIndexSize is the payload size of the first linker member: a count,
// one offset per symbol and the NUL-terminated names.
func symbolIndexSize(syms *symbolCollector) int64 {
	return 4 + 4*int64(len(syms.discovery())) + syms.nameBytes()
}

// memberIndexSize is the payload size of the second linker member: member
// count and offsets, symbol count and indices, then the names.
func memberIndexSize(members int, syms *symbolCollector) int64 {
	n := int64(len(syms.discovery()))
	return 4 + 4*int64(members) + 4 + 2*n + syms.nameBytes()
}

// symbolIndex builds the first linker member. Symbols are sorted byte-wise
// and each maps to the header offset of its owning member, big-endian.
func symbolIndex(syms *symbolCollector, offsets []uint32) []byte {
	names := syms.sorted()
	buf := make([]byte, 0, symbolIndexSize(syms))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(names)))
	for _, name := range names {
		m, _ := syms.owner(name)
		buf = binary.BigEndian.AppendUint32(buf, offsets[m])
	}
	for _, name := range names {
		buf = append(buf, name...)
		buf = append(buf, 0)
	}
	return buf
}

// memberIndex builds the second linker member. Member offsets follow
// reservation order; symbols keep discovery order and refer to members by
// 1-based position. All integers are little-endian.
func memberIndex(syms *symbolCollector, offsets []uint32) []byte {
	names := syms.discovery()
	buf := make([]byte, 0, memberIndexSize(len(offsets), syms))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(offsets)))
	for _, off := range offsets {
		buf = binary.LittleEndian.AppendUint32(buf, off)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(names)))
	for _, name := range names {
		m, _ := syms.owner(name)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(m+1))
	}
	for _, name := range names {
		buf = append(buf, name...)
		buf = append(buf, 0)
	}
	return buf
}
