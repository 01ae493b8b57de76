package coffar

import (
	"sort"
	"strings"
)

// symbolCollector maps every defined symbol to the first member that
// defines it. Later definitions are kept only as duplicates; resolving them
// is left to the linker.
type symbolCollector struct {
	owners     map[string]int
	order      []string
	duplicated map[string]struct{}
}

func newSymbolCollector() *symbolCollector {
	return &symbolCollector{
		owners:     map[string]int{},
		duplicated: map[string]struct{}{},
	}
}

// checkSymbols rejects names that would split in the NUL-terminated name
// lists of the linker members.
func checkSymbols(member string, names []string) error {
	for _, name := range names {
		if strings.IndexByte(name, 0) >= 0 {
			return ErrInvalidSymbol.New(member, name)
		}
	}
	return nil
}

// register records the symbols defined by the member at index member. It
// reports the names that were already owned by an earlier registration.
// Names must have passed checkSymbols.
func (c *symbolCollector) register(member int, names []string) (dups []string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := c.owners[name]; ok {
			c.duplicated[name] = struct{}{}
			dups = append(dups, name)
			continue
		}
		c.owners[name] = member
		c.order = append(c.order, name)
	}
	return dups
}

func (c *symbolCollector) owner(name string) (int, bool) {
	m, ok := c.owners[name]
	return m, ok
}

// discovery returns the unique symbol names in first-registration order.
func (c *symbolCollector) discovery() []string {
	return c.order
}

// sorted returns the unique symbol names in byte-wise order.
func (c *symbolCollector) sorted() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	sort.Strings(names)
	return names
}

func (c *symbolCollector) duplicates() []string {
	names := make([]string, 0, len(c.duplicated))
	for name := range c.duplicated {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nameBytes is the size of names written NUL-terminated.
func (c *symbolCollector) nameBytes() int64 {
	var n int64
	for _, name := range c.order {
		n += int64(len(name)) + 1
	}
	return n
}
