// Package pecoff turns COFF object files into archive members, supplying
// the timestamp and defined symbols that the archive writer indexes.
package pecoff

import (
	"bytes"
	"debug/pe"
	"time"

	"github.com/please-build/coffar"
	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrParse is returned when the data is not a readable COFF object.
var ErrParse = errors.NewKind("pecoff: cannot parse object %q")

const (
	imageSymClassExternal = 2  // IMAGE_SYM_CLASS_EXTERNAL
	imageSymUndefined     = 0  // IMAGE_SYM_UNDEFINED
	imageSymAbsolute      = -1 // IMAGE_SYM_ABSOLUTE
)

// NewMember parses the COFF object in data and returns the member to
// reserve for it. The member's symbols are the ones DefinedSymbols reports.
func NewMember(name string, mode int64, data []byte) (coffar.Member, error) {
	f, err := pe.NewFile(bytes.NewReader(data))
	if err != nil {
		return coffar.Member{}, ErrParse.Wrap(err, name)
	}
	defer f.Close()

	return coffar.Member{
		Name:    name,
		Mode:    mode,
		ModTime: time.Unix(int64(f.FileHeader.TimeDateStamp), 0),
		Data:    data,
		Symbols: DefinedSymbols(f),
	}, nil
}

// DefinedSymbols lists, in symbol table order, the external symbols f
// defines: those in a section, absolute symbols, and COMMON symbols (an
// undefined section with a non-zero size in Value).
func DefinedSymbols(f *pe.File) []string {
	var names []string
	for _, sym := range f.Symbols {
		if sym.StorageClass != imageSymClassExternal {
			continue
		}
		switch {
		case sym.SectionNumber > 0, sym.SectionNumber == imageSymAbsolute:
		case sym.SectionNumber == imageSymUndefined && sym.Value != 0:
		default:
			continue
		}
		names = append(names, sym.Name)
	}
	return names
}
