package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

func sanitizeIdent(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for _, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// nameMangler hands out assembly symbols. Symbols never collide with each
// other or with runtime library names, which all start with "rt_".
type nameMangler struct {
	seen map[string]int
}

func newNameMangler() *nameMangler {
	return &nameMangler{seen: make(map[string]int)}
}

// variable returns a fresh symbol for a declared name. Shadowed or repeated
// declarations of one name get distinct symbols.
func (m *nameMangler) variable(name string) string {
	return m.next("v_" + sanitizeIdent(name))
}

// next returns base_N where N counts previous requests for base.
func (m *nameMangler) next(base string) string {
	count := m.seen[base]
	m.seen[base] = count + 1
	return base + "_" + strconv.Itoa(count)
}

// nasmBytes renders s as the operand list of a db directive, terminated by
// a NUL byte. Printable runs are quoted; everything else is emitted as a
// decimal byte.
func nasmBytes(s string) string {
	var parts []string
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, "'"+run.String()+"'")
			run.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f && c != '\'' {
			run.WriteByte(c)
			continue
		}
		flush()
		parts = append(parts, strconv.Itoa(int(c)))
	}
	flush()
	parts = append(parts, "0")
	return strings.Join(parts, ", ")
}

func dataLine(symbol, text string) string {
	return fmt.Sprintf("%s: db %s", symbol, nasmBytes(text))
}

func bssLine(symbol string, size int) string {
	return fmt.Sprintf("%s: resb %d", symbol, size)
}
