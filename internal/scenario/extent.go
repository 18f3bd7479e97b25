package scenario

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
)

type extent struct{}

// NewExtent creates the scenario showing that a binding holds exactly
// for a call's dynamic extent, whatever way the call ends.
func NewExtent() Scenario {
	return &extent{}
}

func (s *extent) Name() string { return "extent" }

func (s *extent) Synopsis() string {
	return "bindings hold for a call's extent and vanish on every exit path"
}

func (s *extent) Run(ctx context.Context, emit func(m.Event)) error {
	n := newNarrator(s.Name(), emit)

	user := scoped.Declare[string]("user")
	requestID := scoped.Declare[string]("request_id")

	n.check("user unbound before entry", !user.IsBound(ctx), "unbound", boundState(user.IsBound(ctx)))

	carrier := scoped.NewCarrier(user.Bind("ana"), requestID.Bind(uuid.NewString()))

	err := scoped.Run(ctx, carrier, func(inner context.Context) error {
		n.scope("main", 1, "entered a scope binding user and request_id")
		n.resolve(inner, "main", 1, "visible inside the scope")
		n.check("user bound inside", user.IsBound(inner), "bound", boundState(user.IsBound(inner)))

		return nil
	})
	if err != nil {
		return err
	}

	n.scope("main", 0, "left the scope normally")
	n.check("user unbound after normal exit", !user.IsBound(ctx), "unbound", boundState(user.IsBound(ctx)))

	errEarly := errors.New("early exit")
	err = scoped.Run(ctx, scoped.NewCarrier(user.Bind("runa")), func(context.Context) error {
		n.scope("main", 1, "entered a scope that exits with an error")
		return errEarly
	})

	n.check("body error reaches the caller", errors.Is(err, errEarly), errEarly.Error(), errText(err))
	n.check("user unbound after error exit", !user.IsBound(ctx), "unbound", boundState(user.IsBound(ctx)))

	func() {
		defer func() {
			if r := recover(); r != nil {
				n.note("main", 0, "recovered panic: %v", r)
			}
		}()

		_ = scoped.Run(ctx, scoped.NewCarrier(user.Bind("kai")), func(context.Context) error {
			n.scope("main", 1, "entered a scope that exits by panicking")
			panic("demo panic")
		})
	}()

	n.check("user unbound after panic exit", !user.IsBound(ctx), "unbound", boundState(user.IsBound(ctx)))

	return nil
}

func errText(err error) string {
	if err == nil {
		return "<nil>"
	}

	return err.Error()
}
