package notes

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Document is composed of nodes: plain text runs and highlight markers.
type Document struct {
	Nodes []Node
}

// Node is either a text run or a highlight marker wrapping text runs.
// Markers never nest, so a marker's children are always text runs. The
// marker carries no other attributes.
type Node struct {
	Mark     bool
	Text     string
	Children []Node
}

// Range is a selection over the document's plain text, in rune offsets.
// The host surface produces ranges; the document never owns one.
type Range struct {
	Start int
	End   int
}

var (
	ErrCollapsedRange      = errors.New("collapsed range")
	ErrRangeOutOfBounds    = errors.New("range out of bounds")
	ErrPositionOutOfBounds = errors.New("position out of bounds")
)

// New returns an empty document.
func New() Document {
	return Document{}
}

// Content returns the plain text of the document, markers stripped.
func Content(doc Document) string {
	var b strings.Builder
	for _, n := range doc.Nodes {
		b.WriteString(n.content())
	}
	return b.String()
}

// Length returns the length of the document's plain text in runes.
func (doc *Document) Length() int {
	total := 0
	for _, n := range doc.Nodes {
		total += n.length()
	}
	return total
}

// Span is a flattened, contiguous run of document content, addressed in rune
// offsets over the plain text. Used by the host surface for styling.
type Span struct {
	Start int
	End   int
	Mark  bool
	Text  string
}

// Spans flattens the document into contiguous spans in order.
func Spans(doc Document) []Span {
	var spans []Span
	pos := 0
	for _, n := range doc.Nodes {
		end := pos + n.length()
		spans = append(spans, Span{Start: pos, End: end, Mark: n.Mark, Text: n.content()})
		pos = end
	}
	return spans
}

// Insert inserts the value at the given rune position. At a node boundary the
// value attaches to the preceding node, so typing just past a highlight
// extends the highlight.
func (doc *Document) Insert(position int, value string) error {
	if position < 0 || position > doc.Length() {
		return ErrPositionOutOfBounds
	}
	if value == "" {
		return nil
	}

	if len(doc.Nodes) == 0 {
		doc.Nodes = []Node{{Text: value}}
		return nil
	}

	pos := 0
	for i := range doc.Nodes {
		end := pos + doc.Nodes[i].length()
		if position <= end {
			doc.Nodes[i].insert(position-pos, value)
			doc.normalize()
			return nil
		}
		pos = end
	}

	return ErrPositionOutOfBounds
}

// Delete removes the rune at the given position.
func (doc *Document) Delete(position int) error {
	if position < 0 || position >= doc.Length() {
		return ErrPositionOutOfBounds
	}

	pos := 0
	for i := range doc.Nodes {
		end := pos + doc.Nodes[i].length()
		if position < end {
			doc.Nodes[i].delete(position - pos)
			doc.normalize()
			return nil
		}
		pos = end
	}

	return ErrPositionOutOfBounds
}

func (n Node) content() string {
	if !n.Mark {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.Text)
	}
	return b.String()
}

func (n Node) length() int {
	return utf8.RuneCountInString(n.content())
}

func (n *Node) insert(offset int, value string) {
	if n.Mark {
		if len(n.Children) == 0 {
			n.Children = []Node{{Text: value}}
			return
		}
		pos := 0
		for i := range n.Children {
			end := pos + utf8.RuneCountInString(n.Children[i].Text)
			if offset <= end {
				n.Children[i].insert(offset-pos, value)
				return
			}
			pos = end
		}
		return
	}

	rs := []rune(n.Text)
	n.Text = string(rs[:offset]) + value + string(rs[offset:])
}

func (n *Node) delete(offset int) {
	if n.Mark {
		pos := 0
		for i := range n.Children {
			end := pos + utf8.RuneCountInString(n.Children[i].Text)
			if offset < end {
				n.Children[i].delete(offset - pos)
				return
			}
			pos = end
		}
		return
	}

	rs := []rune(n.Text)
	n.Text = string(rs[:offset]) + string(rs[offset+1:])
}

// normalize restores the document invariants: no empty nodes, no marker with
// zero content, no two adjacent markers, no two adjacent text runs, and a
// single text run inside each marker.
func (doc *Document) normalize() {
	var out []Node
	for _, n := range doc.Nodes {
		if n.Mark {
			text := n.content()
			if text == "" {
				continue
			}
			if len(out) > 0 && out[len(out)-1].Mark {
				out[len(out)-1].Children[0].Text += text
				continue
			}
			out = append(out, Node{Mark: true, Children: []Node{{Text: text}}})
			continue
		}

		if n.Text == "" {
			continue
		}
		if len(out) > 0 && !out[len(out)-1].Mark {
			out[len(out)-1].Text += n.Text
			continue
		}
		out = append(out, Node{Text: n.Text})
	}
	doc.Nodes = out
}
