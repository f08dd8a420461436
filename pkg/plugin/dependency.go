package plugin

import (
	"strings"

	pluginerrors "github.com/gplugin-go/gplugin/pkg/errors"
)

// Comparator is a dependency atom's version operator.
type Comparator string

const (
	// CompLess is "<".
	CompLess Comparator = "<"
	// CompLessEqual is "<=".
	CompLessEqual Comparator = "<="
	// CompEqual is "=" or "==".
	CompEqual Comparator = "="
	// CompGreaterEqual is ">=".
	CompGreaterEqual Comparator = ">="
	// CompGreater is ">".
	CompGreater Comparator = ">"
)

// DependencyAtom is a single "id [op version]" term of a dependency
// disjunction.
type DependencyAtom struct {
	ID      string
	Op      Comparator // empty if unconstrained
	Version string     // empty if unconstrained
}

// Unconstrained reports whether the atom matches any plugin with ID,
// regardless of version.
func (a DependencyAtom) Unconstrained() bool { return a.Op == "" }

// Satisfies reports whether candidateVersion satisfies this atom's
// comparator against a.Version.
func (a DependencyAtom) Satisfies(candidateVersion string) bool {
	if a.Unconstrained() {
		return true
	}
	cmp := compareVersions(candidateVersion, a.Version)
	switch a.Op {
	case CompLess:
		return cmp < 0
	case CompLessEqual:
		return cmp <= 0
	case CompEqual:
		return cmp == 0
	case CompGreaterEqual:
		return cmp >= 0
	case CompGreater:
		return cmp > 0
	default:
		return false
	}
}

// DependencyExpr is a parsed disjunction of DependencyAtoms, written in
// the source as atoms separated by "|".
type DependencyExpr struct {
	raw   string
	Atoms []DependencyAtom
}

// String returns the original expression text.
func (d DependencyExpr) String() string { return d.raw }

// operators tried longest-first so "<=" is not mistaken for "<".
var dependencyOperators = []Comparator{CompLessEqual, CompGreaterEqual, "==", CompLess, CompEqual, CompGreater}

// ParseDependency parses a dependency expression of the form
//
//	atom := id [ op version ]
//	op   := "<" | "<=" | "=" | "==" | ">=" | ">"
//
// with "|" separating alternative atoms at the outer level only. The id
// is matched greedily up to the first operator character.
func ParseDependency(expr string) (DependencyExpr, error) {
	if strings.TrimSpace(expr) == "" {
		return DependencyExpr{}, pluginerrors.NewInvalidDependencyExprError(expr, nil)
	}

	parts := strings.Split(expr, "|")
	atoms := make([]DependencyAtom, 0, len(parts))
	for _, part := range parts {
		atom, err := parseAtom(strings.TrimSpace(part))
		if err != nil {
			return DependencyExpr{}, pluginerrors.NewInvalidDependencyExprError(expr, err)
		}
		atoms = append(atoms, atom)
	}

	return DependencyExpr{raw: expr, Atoms: atoms}, nil
}

func parseAtom(atom string) (DependencyAtom, error) {
	if atom == "" {
		return DependencyAtom{}, pluginerrors.New(pluginerrors.TypeInvalidDependencyExpr, "empty dependency atom")
	}

	var opIdx int = -1
	var op Comparator
	for i := range atom {
		for _, candidate := range dependencyOperators {
			if strings.HasPrefix(atom[i:], string(candidate)) {
				opIdx = i
				op = candidate
				break
			}
		}
		if opIdx >= 0 {
			break
		}
	}

	if opIdx < 0 {
		id := strings.TrimSpace(atom)
		if id == "" {
			return DependencyAtom{}, pluginerrors.New(pluginerrors.TypeInvalidDependencyExpr, "dependency atom has no id")
		}
		return DependencyAtom{ID: id}, nil
	}

	id := strings.TrimSpace(atom[:opIdx])
	if id == "" {
		return DependencyAtom{}, pluginerrors.New(pluginerrors.TypeInvalidDependencyExpr, "dependency atom has no id")
	}
	version := strings.TrimSpace(atom[opIdx+len(op):])
	if version == "" {
		return DependencyAtom{}, pluginerrors.New(pluginerrors.TypeInvalidDependencyExpr, "dependency atom has operator but no version")
	}
	if op == "==" {
		op = CompEqual
	}

	return DependencyAtom{ID: id, Op: op, Version: version}, nil
}
