package scenario

import (
	"context"
	"fmt"
	"strconv"

	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
)

const recurseMaxLevel = 4

type recurse struct{}

// NewRecurse creates the scenario showing recursive rebinding: each
// call level rebinds the same key, observes its own value, and finds
// the previous value back in force as the recursion unwinds.
func NewRecurse() Scenario {
	return &recurse{}
}

func (s *recurse) Name() string { return "recurse" }

func (s *recurse) Synopsis() string {
	return "recursive calls rebind one key level by level and unwind cleanly"
}

func (s *recurse) Run(ctx context.Context, emit func(m.Event)) error {
	n := newNarrator(s.Name(), emit)

	level := scoped.Declare[int]("level")

	if err := s.descend(ctx, n, level, 1); err != nil {
		return err
	}

	n.check("level unbound once fully unwound", !level.IsBound(ctx), "unbound", boundState(level.IsBound(ctx)))

	return nil
}

func (s *recurse) descend(ctx context.Context, n *narrator, level *scoped.Key[int], depth int) error {
	return scoped.Run(ctx, scoped.NewCarrier(level.Bind(depth)), func(inner context.Context) error {
		n.scope("main", depth, "descended to level %d", depth)

		got := level.MustGet(inner)
		n.check(fmt.Sprintf("level %d sees its own binding", depth), got == depth, strconv.Itoa(depth), strconv.Itoa(got))

		if depth < recurseMaxLevel {
			if err := s.descend(inner, n, level, depth+1); err != nil {
				return err
			}

			after := level.MustGet(inner)
			n.check(fmt.Sprintf("level %d restored after the unwind", depth), after == depth, strconv.Itoa(depth), strconv.Itoa(after))
		} else {
			n.resolve(inner, "main", depth, "chain at the deepest level")
		}

		return nil
	})
}
