package notes

import "strings"

// The persisted form of a document is markup text: highlight markers become
// <mark> tags and the three characters that could be confused with markup are
// entity-escaped. There is no schema version; Parse accepts anything.

const (
	openTag  = "<mark>"
	closeTag = "</mark>"
)

var (
	escaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	unescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
)

// Markup serializes the document for persistence.
func Markup(doc Document) string {
	var b strings.Builder
	for _, n := range doc.Nodes {
		if n.Mark {
			b.WriteString(openTag)
			b.WriteString(escaper.Replace(n.content()))
			b.WriteString(closeTag)
		} else {
			b.WriteString(escaper.Replace(n.Text))
		}
	}
	return b.String()
}

// Parse rebuilds a document from markup text. Parse is total: stray or
// unbalanced tags degrade to literal text instead of failing, so a damaged
// persisted value still loads.
func Parse(s string) Document {
	var doc Document
	var text strings.Builder
	var markText strings.Builder
	inMark := false

	flush := func() {
		if text.Len() > 0 {
			doc.Nodes = append(doc.Nodes, Node{Text: unescaper.Replace(text.String())})
			text.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if !inMark && strings.HasPrefix(s[i:], openTag) {
			flush()
			inMark = true
			i += len(openTag)
			continue
		}
		if inMark && strings.HasPrefix(s[i:], closeTag) {
			if markText.Len() > 0 {
				doc.Nodes = append(doc.Nodes, Node{
					Mark:     true,
					Children: []Node{{Text: unescaper.Replace(markText.String())}},
				})
			}
			markText.Reset()
			inMark = false
			i += len(closeTag)
			continue
		}

		if inMark {
			markText.WriteByte(s[i])
		} else {
			text.WriteByte(s[i])
		}
		i++
	}

	if inMark {
		// Unclosed marker: keep the content as plain text.
		text.WriteString(markText.String())
	}
	flush()

	doc.normalize()
	return doc
}
