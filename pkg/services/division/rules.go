package division

import (
	"fmt"
	"regexp"
	"strings"
)

// Spec is one serializable assignment rule: when the predicate named by
// Kind matches the job number, the record gets Label. Rules apply in
// order; the first hit wins.
type Spec struct {
	Kind  string `mapstructure:"kind"` // contains | prefix | regex
	Value string `mapstructure:"value"`
	Label string `mapstructure:"label"`
}

type rule struct {
	match func(job string) bool
	label string
}

// Table assigns a division label per job number. Jobs matching no rule
// fall through to the default label.
type Table struct {
	rules      []rule
	defaultLbl string
}

// DefaultSpecs is the built-in assignment table. Bare year-token jobs
// ("2024-016") belong to DFW, which is also the fallback.
func DefaultSpecs() []Spec {
	return []Spec{
		{Kind: "contains", Value: "WTX", Label: "WTX"},
		{Kind: "prefix", Value: "HOU", Label: "HOU"},
		{Kind: "contains", Value: "SAT", Label: "SAT"},
		{Kind: "regex", Value: `^(19|20)\d{2}-`, Label: "DFW"},
	}
}

const DefaultLabel = "DFW"

func NewTable(specs []Spec, defaultLabel string) (*Table, error) {
	if defaultLabel == "" {
		defaultLabel = DefaultLabel
	}
	t := &Table{defaultLbl: defaultLabel}
	for _, s := range specs {
		r, err := compile(s)
		if err != nil {
			return nil, err
		}
		t.rules = append(t.rules, r)
	}
	return t, nil
}

// Default builds the table from DefaultSpecs; the built-in rules are
// known to compile.
func Default() *Table {
	t, err := NewTable(DefaultSpecs(), DefaultLabel)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Assign(jobNumber string) string {
	job := strings.ToUpper(strings.TrimSpace(jobNumber))
	for _, r := range t.rules {
		if r.match(job) {
			return r.label
		}
	}
	return t.defaultLbl
}

func compile(s Spec) (rule, error) {
	value := strings.ToUpper(s.Value)
	switch s.Kind {
	case "contains":
		return rule{label: s.Label, match: func(job string) bool {
			return strings.Contains(job, value)
		}}, nil
	case "prefix":
		return rule{label: s.Label, match: func(job string) bool {
			return strings.HasPrefix(job, value)
		}}, nil
	case "regex":
		re, err := regexp.Compile(s.Value)
		if err != nil {
			return rule{}, fmt.Errorf("division rule %q: %w", s.Value, err)
		}
		return rule{label: s.Label, match: re.MatchString}, nil
	}
	return rule{}, fmt.Errorf("unknown division rule kind %q", s.Kind)
}
