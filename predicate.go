package evroute

import "github.com/tidwall/gjson"

// Predicate decides whether a rule applies to an event. Predicates must be
// pure: no side effects, no reads of mutable shared state. A rule's
// predicates are combined with implicit AND.
type Predicate interface {
	Match(evt *Event) bool
}

// PredicateFunc adapts a function to the Predicate interface.
type PredicateFunc func(evt *Event) bool

// Match implements the Predicate interface.
func (f PredicateFunc) Match(evt *Event) bool { return f(evt) }

// TypeIs returns a Predicate matching events whose Type equals t.
func TypeIs(t string) Predicate {
	return typeIs{t: t}
}

type typeIs struct {
	t string
}

func (p typeIs) Match(evt *Event) bool { return evt.Type == p.t }

// HasData returns a Predicate that matches when every gjson path exists in
// the event payload.
func HasData(paths ...string) Predicate {
	return hasData{paths: paths}
}

type hasData struct {
	paths []string
}

func (p hasData) Match(evt *Event) bool {
	for _, path := range p.paths {
		if !gjson.GetBytes(evt.Data, path).Exists() {
			return false
		}
	}
	return true
}

// DataEquals returns a Predicate that matches when the gjson path exists in
// the event payload and its string value equals value.
func DataEquals(path, value string) Predicate {
	return dataEquals{path: path, value: value}
}

type dataEquals struct {
	path  string
	value string
}

func (p dataEquals) Match(evt *Event) bool {
	r := gjson.GetBytes(evt.Data, p.path)
	if !r.Exists() || r.Type != gjson.String {
		return false
	}
	return r.String() == p.value
}

// And returns a Predicate that matches when all predicates match.
func And(ps ...Predicate) Predicate {
	return and{ps: ps}
}

type and struct {
	ps []Predicate
}

func (p and) Match(evt *Event) bool {
	for _, pred := range p.ps {
		if !pred.Match(evt) {
			return false
		}
	}
	return true
}

// Or returns a Predicate that matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return or{ps: ps}
}

type or struct {
	ps []Predicate
}

func (p or) Match(evt *Event) bool {
	for _, pred := range p.ps {
		if pred.Match(evt) {
			return true
		}
	}
	return false
}
