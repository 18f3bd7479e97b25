package scoped

import "context"

// BindingInfo describes one binding in a frame chain for debugging and
// display. Depth counts frames from the outermost pushed frame (1)
// inwards; Shadowed marks bindings a nearer frame rebinds.
type BindingInfo struct {
	Key      AnyKey
	Value    any
	Depth    int
	Shadowed bool
}

// Describe returns every binding in the context's chain, nearest-first.
// Inheritability does not hide anything here: within its own extent a
// goroutine sees all of its bindings; the inheritable filter applies only
// to Capture.
func Describe(ctx context.Context) []BindingInfo {
	return describeChain(frameFrom(ctx))
}

func describeChain(f *frame) []BindingInfo {
	var infos []BindingInfo

	seen := make(map[AnyKey]bool)

	for ; f != nil; f = f.parent {
		for _, b := range f.bindings {
			infos = append(infos, BindingInfo{
				Key:      b.key,
				Value:    b.value,
				Depth:    f.depth,
				Shadowed: seen[b.key],
			})
			seen[b.key] = true
		}
	}

	return infos
}
