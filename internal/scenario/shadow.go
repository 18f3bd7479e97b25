package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
)

type shadow struct{}

// NewShadow creates the scenario showing nearest-wins shadowing: an
// inner scope rebinds a key without touching the outer binding, which
// is back in force the moment the inner scope is left.
func NewShadow() Scenario {
	return &shadow{}
}

func (s *shadow) Name() string { return "shadow" }

func (s *shadow) Synopsis() string {
	return "inner scopes shadow outer bindings and restore them on exit"
}

func (s *shadow) Run(ctx context.Context, emit func(m.Event)) error {
	n := newNarrator(s.Name(), emit)

	user := scoped.Declare[string]("user")
	region := scoped.Declare[string]("region")

	outer := scoped.NewCarrier(user.Bind("ana"), region.Bind("eu-west"))

	return scoped.Run(ctx, outer, func(outerCtx context.Context) error {
		n.scope("main", 1, "entered the outer scope")
		n.resolve(outerCtx, "main", 1, "outer bindings")

		before := chainText(outerCtx)

		err := scoped.Run(outerCtx, scoped.NewCarrier(user.Bind("runa")), func(innerCtx context.Context) error {
			n.scope("main", 2, "entered the inner scope rebinding user")
			n.resolve(innerCtx, "main", 2, "inner bindings")

			got := user.MustGet(innerCtx)
			n.check("inner scope sees the nearest binding", got == "runa", "runa", got)

			gotRegion := region.MustGet(innerCtx)
			n.check("untouched key falls through to the outer binding", gotRegion == "eu-west", "eu-west", gotRegion)

			n.note("main", 2, "chain diff against the outer scope:\n%s", chainDiff(before, chainText(innerCtx)))

			return nil
		})
		if err != nil {
			return err
		}

		restored := user.MustGet(outerCtx)
		n.check("outer binding restored after the inner scope", restored == "ana", "ana", restored)

		return nil
	})
}

// chainText renders the visible chain as one line per binding, for
// diffing scope entry and exit.
func chainText(ctx context.Context) string {
	var b strings.Builder

	for _, row := range chainRows(ctx) {
		if row.Shadowed {
			fmt.Fprintf(&b, "%s = %s (depth %d, shadowed)\n", row.Key, row.Value, row.Depth)
			continue
		}

		fmt.Fprintf(&b, "%s = %s (depth %d)\n", row.Key, row.Value, row.Depth)
	}

	return b.String()
}

func chainDiff(before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "outer scope",
		ToFile:   "inner scope",
		Context:  2,
	})
	if err != nil {
		return fmt.Sprintf("diff failed: %v", err)
	}

	return diff
}
