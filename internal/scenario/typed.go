package scenario

import (
	"context"
	"errors"
	"strconv"

	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
)

type typed struct{}

// NewTyped creates the scenario showing the two failure modes: a value
// of the wrong type is rejected when the carrier is built, before any
// body runs, and reading an unbound key yields a typed error.
func NewTyped() Scenario {
	return &typed{}
}

func (s *typed) Name() string { return "typed" }

func (s *typed) Synopsis() string {
	return "type mismatches fail at bind time, unbound keys fail at read time"
}

func (s *typed) Run(ctx context.Context, emit func(m.Event)) error {
	n := newNarrator(s.Name(), emit)

	retries := scoped.Declare[int]("retries")

	carrier, err := scoped.NewCarrier().WithAny(retries, 3)
	n.check("well-typed value accepted", err == nil, "<nil>", errText(err))

	_, err = scoped.NewCarrier().WithAny(retries, "three")
	n.check("mismatched value rejected at bind time", errors.Is(err, scoped.ErrTypeMismatch), scoped.ErrTypeMismatch.Error(), errText(err))

	var mismatch *scoped.TypeMismatchError
	if errors.As(err, &mismatch) {
		n.note("main", 0, "bind-time failure: %v", mismatch)
	}

	_, err = retries.Get(ctx)
	n.check("unbound key fails at read time", errors.Is(err, scoped.ErrUnbound), scoped.ErrUnbound.Error(), errText(err))

	var unbound *scoped.UnboundKeyError
	if errors.As(err, &unbound) {
		n.note("main", 0, "read-time failure: %v", unbound)
	}

	fallback := retries.GetOr(ctx, 5)
	n.check("fallback used while unbound", fallback == 5, "5", strconv.Itoa(fallback))

	return scoped.Run(ctx, carrier, func(inner context.Context) error {
		n.scope("main", 1, "entered a scope with the well-typed carrier")

		got := retries.MustGet(inner)
		n.check("bound value resolves", got == 3, "3", strconv.Itoa(got))

		ignored := retries.GetOr(inner, 5)
		n.check("fallback ignored while bound", ignored == 3, "3", strconv.Itoa(ignored))

		return nil
	})
}
