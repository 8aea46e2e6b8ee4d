// Package page holds a presentation tree and the Parser that renders formatted text from one of its elements into
// another
package page

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is an HTML tree guarded by a lock. The same lock is given to the obfuscation scheduler, so animation
// writes never interleave with reads or edits of the tree
type Document struct {
	mu   sync.Mutex
	root *html.Node
}

// NewDocument wraps an existing tree
func NewDocument(root *html.Node) *Document {
	return &Document{root: root}
}

// ParseDocument reads an HTML document
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse document: %w", err)
	}

	return NewDocument(root), nil
}

// Skeleton creates a minimal document with an empty source and target div
func Skeleton(sourceID, targetID string) *Document {
	doc := &html.Node{Type: html.DocumentNode}
	htmlEl := element(atom.Html)
	body := element(atom.Body)

	doc.AppendChild(htmlEl)
	htmlEl.AppendChild(element(atom.Head))
	htmlEl.AppendChild(body)

	for _, id := range []string{sourceID, targetID} {
		div := element(atom.Div)
		div.Attr = []html.Attribute{{Key: "id", Val: id}}
		body.AppendChild(div)
	}

	return NewDocument(doc)
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// Locker returns the lock guarding the tree
func (d *Document) Locker() sync.Locker { return &d.mu }

// HasElement returns whether or not an element with the given id exists
func (d *Document) HasElement(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return findByID(d.root, id) != nil
}

// Text returns the text content of the element with the given id. <br> elements become newlines
func (d *Document) Text(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := findByID(d.root, id)
	if n == nil {
		return "", false
	}

	return textContent(n), true
}

// SetText replaces the children of the element with the given id with a single text node
func (d *Document) SetText(id, text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := findByID(d.root, id)
	if n == nil {
		return false
	}

	replaceChildren(n, []*html.Node{{Type: html.TextNode, Data: text}})

	return true
}

// InnerHTML returns the rendered children of the element with the given id
func (d *Document) InnerHTML(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := findByID(d.root, id)
	if n == nil {
		return "", false
	}

	out := strings.Builder{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return "", false
		}
	}

	return out.String(), true
}

// Render writes the whole document to w
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return html.Render(w, d.root)
}

func (d *Document) String() string {
	out := strings.Builder{}
	if err := d.Render(&out); err != nil {
		return "ERROR! " + err.Error()
	}

	return out.String()
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return n
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}

	return nil
}

func textContent(n *html.Node) string {
	out := strings.Builder{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			out.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			out.WriteByte('\n')
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	return out.String()
}

func replaceChildren(n *html.Node, children []*html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}

	for _, c := range children {
		n.AppendChild(c)
	}
}
