package notes

// ToggleHighlight toggles the highlight marker over the range.
//
// If any existing marker intersects the range, every intersecting marker is
// unwrapped: its text runs are spliced into the document at the marker's
// position and adjacent runs are merged. Otherwise the exact range is wrapped
// in one new marker, splitting boundary runs as needed; no content is lost or
// duplicated and markers never end up nested.
//
// A collapsed range or a range reaching outside the document is rejected and
// the document is left untouched.
func (doc *Document) ToggleHighlight(r Range) error {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	if r.Start == r.End {
		return ErrCollapsedRange
	}
	if r.Start < 0 || r.End > doc.Length() {
		return ErrRangeOutOfBounds
	}

	if doc.unwrapIntersecting(r) {
		doc.normalize()
		return nil
	}

	doc.wrap(r)
	doc.normalize()
	return nil
}

// unwrapIntersecting replaces every marker that overlaps the range with its
// text runs, in place. Markers that merely touch a range boundary do not
// overlap it. Reports whether any marker was unwrapped.
func (doc *Document) unwrapIntersecting(r Range) bool {
	found := false
	out := make([]Node, 0, len(doc.Nodes))
	pos := 0

	for _, n := range doc.Nodes {
		end := pos + n.length()
		if n.Mark && r.Start < end && pos < r.End {
			out = append(out, n.Children...)
			found = true
		} else {
			out = append(out, n)
		}
		pos = end
	}

	doc.Nodes = out
	return found
}

// wrap wraps the exact range in one new marker. Callers guarantee that no
// marker intersects the range, so both boundaries fall inside text runs or on
// node edges.
func (doc *Document) wrap(r Range) {
	doc.splitAt(r.Start)
	doc.splitAt(r.End)

	first := -1
	count := 0
	var children []Node

	pos := 0
	for i, n := range doc.Nodes {
		end := pos + n.length()
		if pos >= r.Start && end <= r.End && pos < end {
			if first == -1 {
				first = i
			}
			if n.Mark {
				// Flatten rather than nest; unreachable when callers
				// hold up their end.
				children = append(children, n.Children...)
			} else {
				children = append(children, n)
			}
			count++
		}
		pos = end
	}

	if first == -1 {
		return
	}

	mark := Node{Mark: true, Children: children}
	doc.Nodes = append(doc.Nodes[:first],
		append([]Node{mark}, doc.Nodes[first+count:]...)...,
	)
}

// splitAt ensures a node boundary exists at the offset by splitting the text
// run containing it.
func (doc *Document) splitAt(offset int) {
	pos := 0
	for i, n := range doc.Nodes {
		end := pos + n.length()
		if offset > pos && offset < end && !n.Mark {
			rs := []rune(n.Text)
			left := string(rs[:offset-pos])
			right := string(rs[offset-pos:])

			doc.Nodes[i] = Node{Text: left}
			doc.Nodes = append(doc.Nodes[:i+1],
				append([]Node{{Text: right}}, doc.Nodes[i+1:]...)...,
			)
			return
		}
		pos = end
	}
}
