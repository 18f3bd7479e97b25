package scoped

// frameIndexThreshold is the binding count at which a frame builds a map
// index instead of relying on linear scans.
const frameIndexThreshold = 8

// frame is one immutable set of bindings linked to the frame it shadows.
// Frames are created by Run/Call, shared by reference across goroutines
// and snapshots, and never modified after construction; a nil *frame is
// the empty root chain.
type frame struct {
	parent   *frame
	bindings []Binding
	index    map[AnyKey]int
	depth    int
}

// newFrame links bindings in front of parent. The bindings slice must not
// be mutated afterwards; callers hand over ownership.
func newFrame(parent *frame, bindings []Binding) *frame {
	f := &frame{
		parent:   parent,
		bindings: bindings,
		depth:    1,
	}
	if parent != nil {
		f.depth = parent.depth + 1
	}

	if len(bindings) >= frameIndexThreshold {
		f.index = make(map[AnyKey]int, len(bindings))
		for i, b := range bindings {
			f.index[b.key] = i
		}
	}

	return f
}

// lookup resolves key in this frame only.
func (f *frame) lookup(key AnyKey) (any, bool) {
	if f.index != nil {
		if i, ok := f.index[key]; ok {
			return f.bindings[i].value, true
		}

		return nil, false
	}

	for _, b := range f.bindings {
		if b.key == key {
			return b.value, true
		}
	}

	return nil, false
}

// lookupChain resolves key by walking from f toward the root; the nearest
// frame containing the key wins.
func lookupChain(f *frame, key AnyKey) (any, bool) {
	for ; f != nil; f = f.parent {
		if v, ok := f.lookup(key); ok {
			return v, true
		}
	}

	return nil, false
}
