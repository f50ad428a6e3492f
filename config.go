package evroute

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Registry resolves the interceptor and handler names referenced by a rule
// manifest. Code supplies the chains; the manifest only wires them up.
type Registry interface {
	Interceptor(name string) (Interceptor, bool)
	Handler(name string) (Handler, bool)
}

// MapRegistry is a Registry backed by plain maps.
type MapRegistry struct {
	Interceptors map[string]Interceptor
	Handlers     map[string]Handler
}

// Interceptor implements the Registry interface.
func (m MapRegistry) Interceptor(name string) (Interceptor, bool) {
	ic, ok := m.Interceptors[name]
	return ic, ok
}

// Handler implements the Registry interface.
func (m MapRegistry) Handler(name string) (Handler, bool) {
	h, ok := m.Handlers[name]
	return h, ok
}

// ruleSpec is one entry of a YAML rule manifest.
type ruleSpec struct {
	Name         string            `yaml:"name"`
	EventType    string            `yaml:"event_type"`
	DataHas      []string          `yaml:"data_has"`
	DataEquals   map[string]string `yaml:"data_equals"`
	Interceptors []string          `yaml:"interceptors"`
	Handlers     []string          `yaml:"handlers"`
	Async        bool              `yaml:"async"`
	ReEnter      bool              `yaml:"re_enter"`
}

type manifest struct {
	Rules []ruleSpec `yaml:"rules"`
}

// LoadRules declares rules on the router from a YAML manifest, resolving
// interceptor and handler names through reg. Manifest order is registration
// order, so it carries the same specific-before-general weight as coded
// rules.
//
// Manifest format:
//
//	rules:
//	  - name: add-member
//	    event_type: user_add_org
//	    data_has: [corpId]
//	    handlers: [add-member]
//	  - name: audit
//	    event_type: user_add_org
//	    data_equals:
//	      source: sync
//	    handlers: [audit]
//	    async: true
//	    re_enter: true
//
// Nothing is registered unless the whole manifest is valid: every rule
// needs an event_type or at least one data predicate, at least one handler,
// and only names known to reg.
func LoadRules(r *Router, src []byte, reg Registry) error {
	var m manifest
	if err := yaml.Unmarshal(src, &m); err != nil {
		return fmt.Errorf("parse rule manifest: %w", err)
	}

	rules := make([]*Rule, 0, len(m.Rules))
	for i, rs := range m.Rules {
		rule, err := buildRule(rs, reg)
		if err != nil {
			return fmt.Errorf("rule %d (%s): %w", i, rs.Name, err)
		}
		rules = append(rules, rule)
	}

	for _, rule := range rules {
		if err := r.AddRule(rule); err != nil {
			return err
		}
	}
	return nil
}

func buildRule(rs ruleSpec, reg Registry) (*Rule, error) {
	rule := &Rule{
		name:    rs.Name,
		reEnter: rs.ReEnter,
		async:   rs.Async,
	}

	if rs.EventType != "" {
		rule.predicates = append(rule.predicates, TypeIs(rs.EventType))
	}
	if len(rs.DataHas) > 0 {
		rule.predicates = append(rule.predicates, HasData(rs.DataHas...))
	}
	for path, value := range rs.DataEquals {
		rule.predicates = append(rule.predicates, DataEquals(path, value))
	}
	if len(rule.predicates) == 0 {
		return nil, fmt.Errorf("no predicates")
	}

	for _, name := range rs.Interceptors {
		ic, ok := reg.Interceptor(name)
		if !ok {
			return nil, fmt.Errorf("unknown interceptor %q", name)
		}
		rule.interceptors = append(rule.interceptors, ic)
	}

	if len(rs.Handlers) == 0 {
		return nil, fmt.Errorf("no handlers")
	}
	for _, name := range rs.Handlers {
		h, ok := reg.Handler(name)
		if !ok {
			return nil, fmt.Errorf("unknown handler %q", name)
		}
		rule.handlers = append(rule.handlers, h)
	}

	rule.closed = true
	return rule, nil
}
