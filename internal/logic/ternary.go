package logic

// Ternary is a three-valued truth result. The numeric values line up
// with the SAT solver's convention of 1 for satisfiable, -1 for
// unsatisfiable, and 0 for undetermined.
type Ternary int8

const (
	False   Ternary = -1
	Unknown Ternary = 0
	True    Ternary = 1
)

func (t Ternary) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

// Known reports whether t is a definitive answer.
func (t Ternary) Known() bool { return t != Unknown }

// Not negates a definitive answer and leaves Unknown untouched.
func (t Ternary) Not() Ternary { return -t }
