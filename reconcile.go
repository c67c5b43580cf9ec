package seoedit

import "strings"

// ApplyAction describes what Reconcile did to the document.
type ApplyAction string

// ApplyAction constants.
const (
	ActionReplaced         ApplyAction = "replaced"
	ActionInsertedHeading  ApplyAction = "inserted_heading"
	ActionInsertedAtCursor ApplyAction = "inserted_at_cursor"
	ActionNone             ApplyAction = "none"
)

// ApplyResult reports the outcome of Reconcile.
type ApplyResult struct {
	Action ApplyAction `json:"action"`

	// Block is the top-level block that was changed, or -1.
	Block int `json:"block"`
}

// Matched reports whether the suggestion's original text was found.
func (r ApplyResult) Matched() bool {
	return r.Action == ActionReplaced
}

// Reconcile applies s to doc.
//
// Text-bearing nodes (headings by their rendered text, then text leaves) are
// visited in document order and the first one containing s.Original has that
// first occurrence replaced with s.Suggested. Repeated or partial matches are
// not disambiguated: the first match wins. An empty original never matches.
// An empty suggestion, such as a default suggestion after a failed model
// call, leaves doc untouched.
//
// Without a match the facet decides: title inserts a level-1 heading at the
// start of the document, description does nothing (meta descriptions are not
// part of the visible document), anything else is inserted at the cursor.
func Reconcile(doc *Document, s *Suggestion) ApplyResult {
	if s.Suggested == "" {
		return ApplyResult{Action: ActionNone, Block: -1}
	}
	if s.Original != "" {
		if node, block := findText(doc, s.Original); node != nil {
			node.setText(strings.Replace(node.RenderedText(), s.Original, s.Suggested, 1))
			return ApplyResult{Action: ActionReplaced, Block: block}
		}
	}

	switch s.Facet {
	case FacetTitle:
		_ = doc.InsertBlock(0, NewHeading(1, s.Suggested))
		return ApplyResult{Action: ActionInsertedHeading, Block: 0}
	case FacetDescription:
		return ApplyResult{Action: ActionNone, Block: -1}
	default:
		block := doc.Cursor.Block
		if block < 0 || block >= len(doc.Blocks()) {
			block = len(doc.Blocks())
		}
		doc.InsertAtCursor(s.Suggested)
		return ApplyResult{Action: ActionInsertedAtCursor, Block: block}
	}
}

// findText returns the first heading or text node containing substr and the
// index of the top-level block holding it.
func findText(doc *Document, substr string) (*Node, int) {
	for i, block := range doc.Blocks() {
		if n := findInNode(block, substr); n != nil {
			return n, i
		}
	}
	return nil, -1
}

func findInNode(n *Node, substr string) *Node {
	switch n.Type {
	case NodeHeading:
		if strings.Contains(n.RenderedText(), substr) {
			return n
		}
	case NodeText:
		if strings.Contains(n.Text, substr) {
			return n
		}
		return nil
	}
	for _, c := range n.Content {
		if found := findInNode(c, substr); found != nil {
			return found
		}
	}
	return nil
}
