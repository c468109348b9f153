package upload

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// randomSpan is the exclusive upper bound of the random name component.
const randomSpan = 1_000_000_000

// Namer generates stored file names of the form
// "<unix-millis>-<random in [0,1e9)><ext>". Names are not checked for
// uniqueness; a collision overwrites the earlier file.
type Namer struct {
	now  func() time.Time
	intn func(int) int
}

// NewNamer returns a Namer backed by the wall clock and math/rand/v2.
func NewNamer() *Namer {
	return &Namer{now: time.Now, intn: rand.IntN}
}

// Name returns a fresh stored name carrying original's extension.
func (n *Namer) Name(original string) string {
	return fmt.Sprintf("%d-%d%s", n.now().UnixMilli(), n.intn(randomSpan), Extension(original))
}

// Extension returns the part of name's final path element from the last
// '.' onwards, dot included, or "" when there is no dot. Directory parts of
// a client-supplied name are ignored so they never reach the stored name.
func Extension(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
