package seoedit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// NodeType identifies a document node.
type NodeType string

// NodeType constants. The names match the editor's JSON schema.
const (
	NodeDoc       NodeType = "doc"
	NodeHeading   NodeType = "heading"
	NodeParagraph NodeType = "paragraph"
	NodeText      NodeType = "text"
)

// Attrs holds node attributes.
type Attrs struct {
	Level int `json:"level"`
}

// Node is an element of the document tree.
type Node struct {
	Type    NodeType `json:"type"`
	Attrs   *Attrs   `json:"attrs,omitempty"`
	Text    string   `json:"text,omitempty"`
	Content []*Node  `json:"content,omitempty"`
}

// NewTextNode returns a text leaf.
func NewTextNode(text string) *Node {
	return &Node{Type: NodeText, Text: text}
}

// NewHeading returns a heading block holding text.
func NewHeading(level int, text string) *Node {
	return &Node{
		Type:    NodeHeading,
		Attrs:   &Attrs{Level: clampLevel(level)},
		Content: textContent(text),
	}
}

// NewParagraph returns a paragraph block holding text.
func NewParagraph(text string) *Node {
	return &Node{Type: NodeParagraph, Content: textContent(text)}
}

// Editor text nodes cannot be empty, so empty blocks have no children.
func textContent(text string) []*Node {
	if text == "" {
		return nil
	}
	return []*Node{NewTextNode(text)}
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// RenderedText returns the text of a text node, or the concatenated text of
// a node's descendants.
func (n *Node) RenderedText() string {
	if n.Type == NodeText {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Content {
		sb.WriteString(c.RenderedText())
	}
	return sb.String()
}

// setText replaces the children of a block with a single text node.
func (n *Node) setText(text string) {
	if n.Type == NodeText {
		n.Text = text
		return
	}
	n.Content = textContent(text)
}

func (n *Node) clone() *Node {
	c := &Node{Type: n.Type, Text: n.Text}
	if n.Attrs != nil {
		attrs := *n.Attrs
		c.Attrs = &attrs
	}
	if n.Content != nil {
		c.Content = make([]*Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = child.clone()
		}
	}
	return c
}

// Cursor addresses a position in the document: a top-level block and a
// rune offset into that block's rendered text. A negative Block means no
// cursor is placed.
type Cursor struct {
	Block  int `json:"block"`
	Offset int `json:"offset"`
}

// Document is the editable representation of a page's content.
// It is mutated in place through its methods and is not safe for
// concurrent use; Workspace serializes access.
type Document struct {
	Root   *Node  `json:"doc"`
	Cursor Cursor `json:"cursor"`
}

// NewDocument returns an empty document with no cursor.
func NewDocument() *Document {
	return &Document{
		Root:   &Node{Type: NodeDoc},
		Cursor: Cursor{Block: -1},
	}
}

// BuildDocument derives the editor document from a site snapshot:
// the title as a level-1 heading, the meta description as a paragraph,
// then the markdown content split into headings and paragraphs.
func BuildDocument(site *SiteData) *Document {
	doc := NewDocument()
	title := site.Title
	if title == "" {
		title = "Untitled"
	}
	doc.Root.Content = append(doc.Root.Content,
		NewHeading(1, title),
		NewParagraph(site.MetaDescription),
	)
	doc.Root.Content = append(doc.Root.Content, ParseMarkdown(site.Content)...)
	return doc
}

var (
	markdownImage     = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	markdownLink      = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	markdownEscape    = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!])")
	markdownHeading   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	markdownCodeFence = regexp.MustCompile("^(```|~~~)")
)

// cleanMarkdownLine drops images, reduces links to their text and removes
// backslash escapes.
func cleanMarkdownLine(line string) string {
	line = markdownImage.ReplaceAllString(line, "")
	line = markdownLink.ReplaceAllString(line, "$1")
	return markdownEscape.ReplaceAllString(line, "$1")
}

// ParseMarkdown converts markdown into heading and paragraph blocks.
// Consecutive non-empty lines join into one paragraph; a blank line or a
// heading ends the paragraph. Lines inside fenced code blocks never become
// headings.
func ParseMarkdown(md string) []*Node {
	if md == "" {
		return nil
	}

	var blocks []*Node
	var paragraph strings.Builder
	flush := func() {
		if paragraph.Len() > 0 {
			blocks = append(blocks, NewParagraph(paragraph.String()))
			paragraph.Reset()
		}
	}

	inCode := false
	for _, raw := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(raw)
		if markdownCodeFence.MatchString(trimmed) {
			inCode = !inCode
			continue
		}
		line := cleanMarkdownLine(trimmed)

		if !inCode {
			if m := markdownHeading.FindStringSubmatch(line); m != nil {
				flush()
				blocks = append(blocks, NewHeading(len(m[1]), strings.TrimSpace(m[2])))
				continue
			}
		}

		if line == "" {
			flush()
			continue
		}
		if paragraph.Len() > 0 {
			paragraph.WriteByte(' ')
		}
		paragraph.WriteString(line)
	}
	flush()

	return blocks
}

// Blocks returns the top-level blocks.
func (d *Document) Blocks() []*Node {
	return d.Root.Content
}

// InsertBlock inserts n before the block at index. An index equal to the
// number of blocks appends.
func (d *Document) InsertBlock(index int, n *Node) error {
	blocks := d.Root.Content
	if index < 0 || index > len(blocks) {
		return Errorf(EINVALID, "block index %d out of range", index)
	}
	blocks = append(blocks, nil)
	copy(blocks[index+1:], blocks[index:])
	blocks[index] = n
	d.Root.Content = blocks

	if d.Cursor.Block >= index {
		d.Cursor.Block++
	}
	return nil
}

// SetCursor places the cursor. The block must exist and the offset must lie
// within its text.
func (d *Document) SetCursor(c Cursor) error {
	if c.Block < 0 {
		d.Cursor = Cursor{Block: -1}
		return nil
	}
	if c.Block >= len(d.Root.Content) {
		return Errorf(EINVALID, "block index %d out of range", c.Block)
	}
	n := utf8.RuneCountInString(d.Root.Content[c.Block].RenderedText())
	if c.Offset < 0 || c.Offset > n {
		return Errorf(EINVALID, "offset %d out of range", c.Offset)
	}
	d.Cursor = c
	return nil
}

// InsertAtCursor splices text into the cursor block at the cursor offset and
// moves the cursor past it. Without a usable cursor the text is appended as a
// new paragraph.
func (d *Document) InsertAtCursor(text string) {
	c := d.Cursor
	if c.Block < 0 || c.Block >= len(d.Root.Content) {
		d.Root.Content = append(d.Root.Content, NewParagraph(text))
		return
	}

	block := d.Root.Content[c.Block]
	runes := []rune(block.RenderedText())
	offset := c.Offset
	if offset < 0 || offset > len(runes) {
		offset = len(runes)
	}
	block.setText(string(runes[:offset]) + text + string(runes[offset:]))
	d.Cursor.Offset = offset + utf8.RuneCountInString(text)
}

// Text returns the plain text of the document, one block per paragraph.
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Root.Content))
	for _, b := range d.Root.Content {
		parts = append(parts, b.RenderedText())
	}
	return strings.Join(parts, "\n\n")
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.clone(), Cursor: d.Cursor}
}
