package document

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	core "github.com/kilianp07/availreport/core/document"
)

var errNotMarkup = errors.New("input is not markup")

func parseMarkup(raw []byte) (*html.Node, error) {
	if !looksLikeMarkup(raw) {
		return nil, errNotMarkup
	}
	return html.Parse(bytes.NewReader(trimPrefix(raw)))
}

// HTMLTable decodes the first table of an HTML document, which is what the
// legacy ".xls" export actually contains.
type HTMLTable struct{}

// Name implements core.TableDecoder.
func (HTMLTable) Name() string { return "html_table" }

// DecodeTable returns the rows of the first <table>, one cell per td/th.
// Rows of tables nested inside it are not included.
func (HTMLTable) DecodeTable(raw []byte) (core.Table, error) {
	root, err := parseMarkup(raw)
	if err != nil {
		return core.Table{}, err
	}
	table := find(root, atom.Table)
	if table == nil {
		return core.Table{}, errors.New("no table element")
	}
	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Table:
				continue
			case atom.Tr:
				rows = append(rows, cells(c))
			default:
				walk(c)
			}
		}
	}
	walk(table)
	return tableFromRows("html_table", rows)
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := find(c, a); f != nil {
			return f
		}
	}
	return nil
}

func cells(tr *html.Node) []string {
	var out []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			out = append(out, text(c))
		}
	}
	return out
}

// text returns the whitespace-collapsed text content of n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Br {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// HTMLSections navigates nested markup in which every person has a section
// header ("SCHEDULE FOR <name>") followed by detail rows, possibly spread
// over several tables and heading elements.
type HTMLSections struct{}

// Name implements core.DocumentDecoder.
func (HTMLSections) Name() string { return "html_sections" }

var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Dt: true, atom.Dd: true, atom.Caption: true, atom.Pre: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
	atom.Header: true, atom.Footer: true, atom.Blockquote: true, atom.Body: true,
}

// Decode emits one line per table row and per block element, in document
// order. Documents without any section header are declined.
func (HTMLSections) Decode(raw []byte) (core.Document, error) {
	root, err := parseMarkup(raw)
	if err != nil {
		return core.Document{}, err
	}
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		if s := strings.Join(strings.Fields(cur.String()), " "); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			cur.WriteByte(' ')
			return
		case html.ElementNode:
			switch {
			case n.DataAtom == atom.Script || n.DataAtom == atom.Style || n.DataAtom == atom.Head:
				return
			case n.DataAtom == atom.Tr:
				flush()
				if row := strings.Join(nonBlank(cells(n)), " "); row != "" {
					lines = append(lines, row)
				}
				return
			case n.DataAtom == atom.Br:
				flush()
				return
			case blocks[n.DataAtom]:
				flush()
				defer flush()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	flush()

	for _, l := range lines {
		if strings.HasPrefix(strings.ToUpper(l), "SCHEDULE FOR") {
			return core.Document{Format: "html_sections", Lines: lines}, nil
		}
	}
	return core.Document{}, errors.New("no SCHEDULE FOR section headers")
}

func nonBlank(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
