package evroute

import (
	"context"
	"errors"
	"testing"
)

func closedRule(opts func(*Rule)) *Rule {
	r := &Rule{closed: true}
	if opts != nil {
		opts(r)
	}
	return r
}

func TestRule_Test(t *testing.T) {
	evt := userEvent()

	t.Run("all predicates must pass", func(t *testing.T) {
		r := closedRule(func(r *Rule) {
			r.predicates = []Predicate{TypeIs("user_add_org"), HasData("corpId")}
		})
		if !r.Test(evt) {
			t.Error("expected match")
		}

		r = closedRule(func(r *Rule) {
			r.predicates = []Predicate{TypeIs("user_add_org"), HasData("missing")}
		})
		if r.Test(evt) {
			t.Error("expected no match")
		}
	})

	t.Run("no predicates matches everything", func(t *testing.T) {
		if !closedRule(nil).Test(evt) {
			t.Error("expected match")
		}
	})
}

func TestRule_Execute(t *testing.T) {
	evt := userEvent()

	t.Run("interceptors run before handlers", func(t *testing.T) {
		var order []string
		r := closedRule(func(r *Rule) {
			r.interceptors = []Interceptor{
				InterceptorFunc(func(ctx context.Context, evt *Event, vals Values) (bool, error) {
					order = append(order, "intercept")
					return true, nil
				}),
			}
			r.handlers = []Handler{
				HandlerFunc(func(ctx context.Context, evt *Event, vals Values) (bool, error) {
					order = append(order, "handle")
					return true, nil
				}),
			}
		})

		ok, err := r.execute(context.Background(), evt, Values{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected true")
		}
		if len(order) != 2 || order[0] != "intercept" || order[1] != "handle" {
			t.Errorf("order = %v, want [intercept handle]", order)
		}
	})

	t.Run("interceptor veto stops the chain", func(t *testing.T) {
		ran := false
		r := closedRule(func(r *Rule) {
			r.interceptors = []Interceptor{
				InterceptorFunc(func(ctx context.Context, evt *Event, vals Values) (bool, error) {
					return false, nil
				}),
				InterceptorFunc(func(ctx context.Context, evt *Event, vals Values) (bool, error) {
					ran = true
					return true, nil
				}),
			}
			r.handlers = []Handler{
				HandlerFunc(func(ctx context.Context, evt *Event, vals Values) (bool, error) {
					ran = true
					return true, nil
				}),
			}
		})

		ok, err := r.execute(context.Background(), evt, Values{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("vetoed chain should report false")
		}
		if ran {
			t.Error("chain continued past veto")
		}
	})

	t.Run("interceptor error propagates", func(t *testing.T) {
		wantErr := errors.New("intercept failed")
		r := closedRule(func(r *Rule) {
			r.interceptors = []Interceptor{
				InterceptorFunc(func(ctx context.Context, evt *Event, vals Values) (bool, error) {
					return false, wantErr
				}),
			}
		})

		_, err := r.execute(context.Background(), evt, Values{})
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	})

	t.Run("last handler result wins", func(t *testing.T) {
		r := closedRule(func(r *Rule) {
			r.handlers = []Handler{
				&recordHandler{result: true},
				&recordHandler{result: false},
			}
		})

		ok, err := r.execute(context.Background(), evt, Values{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected result of last handler (false)")
		}
	})

	t.Run("handler error stops the chain", func(t *testing.T) {
		wantErr := errors.New("handle failed")
		second := &recordHandler{result: true}
		r := closedRule(func(r *Rule) {
			r.handlers = []Handler{
				&recordHandler{err: wantErr},
				second,
			}
		})

		_, err := r.execute(context.Background(), evt, Values{})
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
		if second.called {
			t.Error("chain continued past failed handler")
		}
	})

	t.Run("empty chain succeeds", func(t *testing.T) {
		ok, err := closedRule(nil).execute(context.Background(), evt, Values{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("empty chain should report true")
		}
	})
}
