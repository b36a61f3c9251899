package document

// stack is a persistent singly linked stack of contents. Pushing shares the
// tail with the previous stack.
type stack struct {
	content Content
	next    *stack
	depth   int
}

func (st *stack) push(c Content) *stack {
	d := 1
	if st != nil {
		d = st.depth + 1
	}
	return &stack{content: c, next: st, depth: d}
}

// truncate keeps the newest n entries. The retained nodes are copied so the
// original stack stays valid for older states.
func (st *stack) truncate(n int) *stack {
	if st == nil || st.depth <= n {
		return st
	}
	if n <= 0 {
		return nil
	}
	kept := make([]Content, 0, n)
	for cur := st; cur != nil && len(kept) < n; cur = cur.next {
		kept = append(kept, cur.content)
	}
	var out *stack
	for i := len(kept) - 1; i >= 0; i-- {
		out = out.push(kept[i])
	}
	return out
}

type history struct {
	limit int
	undo  *stack
	redo  *stack
}

func (h history) push(c Content) history {
	if h.limit < 0 {
		return history{limit: h.limit}
	}
	h.undo = h.undo.push(c).truncate(h.limit)
	h.redo = nil
	return h
}

func (h history) clearRedo() history {
	h.redo = nil
	return h
}

func (h history) popUndo(cur Content) (Content, history, bool) {
	if h.undo == nil {
		return Content{}, h, false
	}
	prev := h.undo.content
	h.undo = h.undo.next
	h.redo = h.redo.push(cur)
	return prev, h, true
}

func (h history) popRedo(cur Content) (Content, history, bool) {
	if h.redo == nil {
		return Content{}, h, false
	}
	next := h.redo.content
	h.redo = h.redo.next
	h.undo = h.undo.push(cur).truncate(h.limit)
	return next, h, true
}
