// Package programs bundles hand-written programs, in the shape emitted by the
// compiler: each function is a [effectrt.Frame] whose state holds its
// registers (plain values and futures), and whose step function runs every
// statement whose inputs are ready. Calls to other functions allocate a child
// frame that schedules its caller once its result is resolved.
package programs

import (
	"sort"

	"github.com/joeycumines/go-effectrt"
)

// Program is a named entry point.
type Program struct {
	Name        string
	Description string
	// New allocates the entry continuation. Each call returns a fresh program.
	New func() effectrt.Continuation
}

var registry = map[string]Program{
	`hello`: {
		Name:        `hello`,
		Description: `print, sleep, print, exit`,
		New:         Hello,
	},
	`greet`: {
		Name:        `greet`,
		Description: `read-line, concat, copy, length`,
		New:         Greet,
	},
	`forkjoin`: {
		Name:        `forkjoin`,
		Description: `fork the clock, sleep in two branches, join`,
		New:         ForkJoin,
	},
	`arrays`: {
		Name:        `arrays`,
		Description: `append to a growing array, render it`,
		New:         Arrays,
	},
}

// Lookup returns the program with the given name.
func Lookup(name string) (Program, bool) {
	p, ok := registry[name]
	return p, ok
}

// All returns every program, sorted by name.
func All() []Program {
	all := make([]Program, 0, len(registry))
	for _, p := range registry {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}
