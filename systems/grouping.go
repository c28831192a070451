package systems

// RebuildIndex packs every bug index into its loop's member span.
// All members of loop i precede all members of loop i+1; within a loop,
// members keep bug order. Cost is O(bugs + loops).
func (w *World) RebuildIndex() {
	// Count members per loop
	for i := range w.loops {
		w.loops[i].Members.Offset = 0
		w.loops[i].Members.Count = 0
	}
	for i := range w.bugs {
		w.loops[w.bugs[i].Loop].Members.Count++
	}

	// Assign offsets from the running total, then refill
	offset := 0
	for i := range w.loops {
		span := &w.loops[i].Members
		span.Offset = offset
		offset += span.Count
		span.Count = 0
	}
	for i := range w.bugs {
		span := &w.loops[w.bugs[i].Loop].Members
		w.members[span.End()] = i
		span.Count++
	}

	w.index = IndexClean
}

// ensureIndex rebuilds the member views if any bug changed loop since the last rebuild.
func (w *World) ensureIndex() {
	if w.index == IndexDirty {
		w.RebuildIndex()
	}
}

// Members returns the bug indices of loop i. The returned slice aliases
// world storage and is invalidated by the next rebuild.
func (w *World) Members(i int) []int {
	w.ensureIndex()
	return w.memberView(i)
}

// memberView returns loop i's span without checking the index state.
// Within a frame the views stay stable while conversions mark the index dirty.
func (w *World) memberView(i int) []int {
	span := w.loops[i].Members
	return w.members[span.Offset:span.End()]
}
