package effectrt

type (
	// Token is a capability, authorizing use of an external resource. Tokens
	// are compared by identity only. The zero value matches no resource.
	Token struct {
		r *resource
	}

	resource struct {
		name string
	}
)

var (
	// Console authorizes print and read-line.
	Console = Token{&resource{name: `console`}}

	// Clock authorizes sleep, fork and join.
	Clock = Token{&resource{name: `clock`}}
)

// String returns the name of the resource, for diagnostics.
func (x Token) String() string {
	if x.r == nil {
		return `<invalid>`
	}
	return x.r.name
}

// Valid reports whether x is one of the process-wide tokens.
func (x Token) Valid() bool {
	return x.r != nil
}
