package ast

// Visitor receives one callback per node kind. Returning false skips the
// node's children; the walk continues with the next sibling.
type Visitor interface {
	VisitDocument(t *Tree, id NodeID) bool
	VisitElement(t *Tree, id NodeID) bool
	VisitOpenTag(t *Tree, id NodeID) bool
	VisitAttribute(t *Tree, id NodeID) bool
	VisitText(t *Tree, id NodeID) bool
	VisitHTMLComment(t *Tree, id NodeID) bool
	VisitDoctype(t *Tree, id NodeID) bool
	VisitERB(t *Tree, id NodeID) bool
}

// LeaveElementVisitor is implemented by visitors that need to know when an
// element's subtree has been fully walked.
type LeaveElementVisitor interface {
	LeaveElement(t *Tree, id NodeID)
}

// BaseVisitor descends into every node. Embed it and override the kinds of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitDocument(*Tree, NodeID) bool    { return true }
func (BaseVisitor) VisitElement(*Tree, NodeID) bool     { return true }
func (BaseVisitor) VisitOpenTag(*Tree, NodeID) bool     { return true }
func (BaseVisitor) VisitAttribute(*Tree, NodeID) bool   { return true }
func (BaseVisitor) VisitText(*Tree, NodeID) bool        { return true }
func (BaseVisitor) VisitHTMLComment(*Tree, NodeID) bool { return true }
func (BaseVisitor) VisitDoctype(*Tree, NodeID) bool     { return true }
func (BaseVisitor) VisitERB(*Tree, NodeID) bool         { return true }

// Walk traverses the subtree at id depth-first, dispatching on node kind.
func Walk(t *Tree, id NodeID, v Visitor) {
	if !t.Valid(id) {
		return
	}
	if !dispatch(t, id, v) {
		return
	}
	for _, c := range t.Children(id) {
		Walk(t, c, v)
	}
	if t.Kind(id) == KindElement {
		if lv, ok := v.(LeaveElementVisitor); ok {
			lv.LeaveElement(t, id)
		}
	}
}

func dispatch(t *Tree, id NodeID, v Visitor) bool {
	switch t.Kind(id) {
	case KindDocument:
		return v.VisitDocument(t, id)
	case KindElement:
		return v.VisitElement(t, id)
	case KindOpenTag:
		return v.VisitOpenTag(t, id)
	case KindAttribute:
		return v.VisitAttribute(t, id)
	case KindText:
		return v.VisitText(t, id)
	case KindHTMLComment:
		return v.VisitHTMLComment(t, id)
	case KindDoctype:
		return v.VisitDoctype(t, id)
	case KindERB:
		return v.VisitERB(t, id)
	default:
		return true
	}
}

// Inspect walks the subtree at id and calls fn for each node.
// If fn returns false, the node's children are skipped.
func Inspect(t *Tree, id NodeID, fn func(id NodeID) bool) {
	if !t.Valid(id) || !fn(id) {
		return
	}
	for _, c := range t.Children(id) {
		Inspect(t, c, fn)
	}
}
