package evroute

import (
	"encoding/json"
	"testing"
)

func TestTypeIs(t *testing.T) {
	evt := &Event{Type: "user_add_org"}

	t.Run("matches exact type", func(t *testing.T) {
		if !TypeIs("user_add_org").Match(evt) {
			t.Error("expected match")
		}
	})

	t.Run("fails on other type", func(t *testing.T) {
		if TypeIs("user_leave_org").Match(evt) {
			t.Error("expected no match")
		}
	})
}

func TestHasData(t *testing.T) {
	evt := &Event{
		Type: "user_add_org",
		Data: json.RawMessage(`{
			"corpId": "corp-1",
			"user": {"id": "u-1"}
		}`),
	}

	t.Run("matches when all paths present", func(t *testing.T) {
		if !HasData("corpId", "user").Match(evt) {
			t.Error("expected match")
		}
	})

	t.Run("matches nested paths", func(t *testing.T) {
		if !HasData("user.id").Match(evt) {
			t.Error("expected match")
		}
	})

	t.Run("fails when any path missing", func(t *testing.T) {
		if HasData("corpId", "missing").Match(evt) {
			t.Error("expected no match")
		}
	})

	t.Run("matches with no paths (vacuous truth)", func(t *testing.T) {
		if !HasData().Match(evt) {
			t.Error("expected match for empty path list")
		}
	})

	t.Run("fails on empty payload", func(t *testing.T) {
		if HasData("corpId").Match(&Event{Type: "user_add_org"}) {
			t.Error("expected no match without payload")
		}
	})
}

func TestDataEquals(t *testing.T) {
	evt := &Event{
		Type: "user_add_org",
		Data: json.RawMessage(`{"source": "sync", "count": 42}`),
	}

	t.Run("matches exact string value", func(t *testing.T) {
		if !DataEquals("source", "sync").Match(evt) {
			t.Error("expected match")
		}
	})

	t.Run("fails on wrong value", func(t *testing.T) {
		if DataEquals("source", "manual").Match(evt) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on non-string value", func(t *testing.T) {
		if DataEquals("count", "42").Match(evt) {
			t.Error("expected no match for number")
		}
	})

	t.Run("fails on missing path", func(t *testing.T) {
		if DataEquals("missing", "sync").Match(evt) {
			t.Error("expected no match")
		}
	})
}

func TestCombinators(t *testing.T) {
	evt := &Event{
		Type: "user_add_org",
		Data: json.RawMessage(`{"source": "sync"}`),
	}

	t.Run("and requires all", func(t *testing.T) {
		p := And(TypeIs("user_add_org"), DataEquals("source", "sync"))
		if !p.Match(evt) {
			t.Error("expected match")
		}
		p = And(TypeIs("user_add_org"), DataEquals("source", "manual"))
		if p.Match(evt) {
			t.Error("expected no match")
		}
	})

	t.Run("or requires any", func(t *testing.T) {
		p := Or(TypeIs("user_leave_org"), DataEquals("source", "sync"))
		if !p.Match(evt) {
			t.Error("expected match")
		}
		p = Or(TypeIs("user_leave_org"), DataEquals("source", "manual"))
		if p.Match(evt) {
			t.Error("expected no match")
		}
	})

	t.Run("predicate func adapts", func(t *testing.T) {
		p := PredicateFunc(func(e *Event) bool { return e.ID == "x" })
		if p.Match(evt) {
			t.Error("expected no match")
		}
	})
}
