package kb

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"presage/internal/logic"
)

// artifactVersion guards the YAML layout. Bump on incompatible
// changes.
const artifactVersion = 1

// artifact is the serialized layout of a Compiled knowledge base. The
// closure is a slice rather than a map so the encoding is byte-stable.
type artifact struct {
	Version    int           `yaml:"version"`
	ID         string        `yaml:"id"`
	CompiledAt time.Time     `yaml:"compiled_at"`
	AxiomCount int           `yaml:"axioms"`
	Keys       []string      `yaml:"keys"`
	Clauses    []string      `yaml:"clauses"`
	Closure    []artifactRow `yaml:"closure"`
}

type artifactRow struct {
	Key      string   `yaml:"key"`
	Implies  []string `yaml:"implies"`
	Excludes []string `yaml:"excludes,omitempty"`
}

// Encode serializes c as YAML. Clause order follows the compiled CNF
// and all name lists are sorted, so encoding the same base twice
// yields identical bytes.
func Encode(c *Compiled) ([]byte, error) {
	clauses, err := logic.Clauses(c.CNF)
	if err != nil {
		return nil, fmt.Errorf("kb: encode clauses: %w", err)
	}
	a := artifact{
		Version:    artifactVersion,
		ID:         c.ID,
		CompiledAt: c.CompiledAt,
		AxiomCount: c.AxiomCount,
		Keys:       c.Keys,
		Clauses:    make([]string, len(clauses)),
		Closure:    make([]artifactRow, 0, len(c.Keys)),
	}
	for i, cl := range clauses {
		lits := make([]string, len(cl))
		for j, lit := range cl {
			lits[j] = lit.String()
		}
		a.Clauses[i] = strings.Join(lits, " | ")
	}
	for _, key := range c.Keys {
		ent, ok := c.Closure[key]
		if !ok {
			return nil, fmt.Errorf("kb: closure row missing for %q", key)
		}
		a.Closure = append(a.Closure, artifactRow{
			Key:      key,
			Implies:  sortedNames(ent.Implies),
			Excludes: sortedNames(ent.Excludes),
		})
	}
	return yaml.Marshal(a)
}

// Decode rebuilds a Compiled base from Encode output, validating that
// every name referenced by a clause or closure row belongs to the
// stored vocabulary.
func Decode(data []byte) (*Compiled, error) {
	var a artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("kb: decode artifact: %w", err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("kb: artifact version %d, want %d", a.Version, artifactVersion)
	}
	known := make(map[string]bool, len(a.Keys))
	for _, k := range a.Keys {
		if k == "" {
			return nil, fmt.Errorf("kb: artifact has an empty key")
		}
		known[k] = true
	}

	clauseProps := make([]logic.Prop, len(a.Clauses))
	for i, line := range a.Clauses {
		p, err := parseClause(line, known)
		if err != nil {
			return nil, fmt.Errorf("kb: clause %d: %w", i, err)
		}
		clauseProps[i] = p
	}

	closure := make(map[string]Entailments, len(a.Closure))
	for _, row := range a.Closure {
		if !known[row.Key] {
			return nil, fmt.Errorf("kb: closure row for unknown key %q", row.Key)
		}
		if _, dup := closure[row.Key]; dup {
			return nil, fmt.Errorf("kb: duplicate closure row for %q", row.Key)
		}
		ent := Entailments{
			Implies:  make(map[string]bool, len(row.Implies)),
			Excludes: make(map[string]bool, len(row.Excludes)),
		}
		for _, name := range row.Implies {
			if !known[name] {
				return nil, fmt.Errorf("kb: closure row %q implies unknown key %q", row.Key, name)
			}
			ent.Implies[name] = true
		}
		for _, name := range row.Excludes {
			if !known[name] {
				return nil, fmt.Errorf("kb: closure row %q excludes unknown key %q", row.Key, name)
			}
			ent.Excludes[name] = true
		}
		if !ent.Implies[row.Key] {
			return nil, fmt.Errorf("kb: closure row %q does not imply itself", row.Key)
		}
		closure[row.Key] = ent
	}
	for _, k := range a.Keys {
		if _, ok := closure[k]; !ok {
			return nil, fmt.Errorf("kb: closure row missing for %q", k)
		}
	}

	return &Compiled{
		ID:         a.ID,
		CompiledAt: a.CompiledAt,
		CNF:        logic.And(clauseProps...),
		Closure:    closure,
		Keys:       a.Keys,
		AxiomCount: a.AxiomCount,
	}, nil
}

// WriteFile encodes c into path.
func WriteFile(path string, c *Compiled) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("kb: write artifact: %w", err)
	}
	return nil
}

// ReadFile loads an artifact written by WriteFile.
func ReadFile(path string) (*Compiled, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kb: read artifact: %w", err)
	}
	return Decode(data)
}

// parseClause reads one " | " separated disjunction of possibly
// negated key names.
func parseClause(line string, known map[string]bool) (logic.Prop, error) {
	parts := strings.Split(line, "|")
	lits := make([]logic.Prop, 0, len(parts))
	for _, part := range parts {
		tok := strings.TrimSpace(part)
		name, negated := strings.CutPrefix(tok, "~")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty literal in %q", line)
		}
		if !known[name] {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		lit := logic.AtomOf(Key(name))
		if negated {
			lit = logic.Not(lit)
		}
		lits = append(lits, lit)
	}
	return logic.Or(lits...), nil
}

func sortedNames(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
