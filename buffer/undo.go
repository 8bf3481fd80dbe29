package buffer

// record marks the buffer dirty and logs c, either as its own block or as
// part of the open change group.
func (b *Buffer) record(c Change) {
	b.dirty = true
	if b.groupDepth > 0 {
		b.group = append(b.group, c)
		return
	}
	b.hist.Add([]Change{c})
}

// BeginChangeGroup starts collecting changes into one undo block. Groups
// nest; the block is committed when the outermost group ends.
func (b *Buffer) BeginChangeGroup() {
	b.groupDepth++
}

// EndChangeGroup commits the collected changes as a single block.
func (b *Buffer) EndChangeGroup() {
	if b.groupDepth == 0 {
		return
	}
	b.groupDepth--
	if b.groupDepth > 0 {
		return
	}
	if len(b.group) > 0 {
		b.hist.Add(b.group)
	}
	b.group = nil
}

// Undo reverts the last change block. It returns false when there is
// nothing to undo.
func (b *Buffer) Undo() bool {
	b.closeGroup()
	block, ok := b.hist.Undo()
	if !ok {
		return false
	}
	for i := len(block) - 1; i >= 0; i-- {
		block[i].revert(b)
	}
	b.cursor = block[0].cursors().Before
	b.dirty = true
	b.clampCursor()
	return true
}

// Redo re-applies the last undone block. It returns false when there is
// nothing to redo.
func (b *Buffer) Redo() bool {
	b.closeGroup()
	block, ok := b.hist.Redo()
	if !ok {
		return false
	}
	for _, c := range block {
		c.apply(b)
	}
	b.cursor = block[len(block)-1].cursors().After
	b.dirty = true
	b.clampCursor()
	return true
}

// HistoryLen reports how many blocks the undo log holds.
func (b *Buffer) HistoryLen() int { return b.hist.Len() }

func (b *Buffer) closeGroup() {
	if b.groupDepth == 0 {
		return
	}
	b.groupDepth = 1
	b.EndChangeGroup()
}
