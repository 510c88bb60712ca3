package ast

// SeqPosition locates an element inside its enclosing flat sequence.
type SeqPosition struct {
	Seq   ExprID
	Index int
}

// ParentMap answers "which flat sequence directly contains this expression,
// and at which index". Only sequence membership is recorded: a node whose
// structural parent is anything else is simply absent, which lets rule
// callbacks fail closed.
type ParentMap struct {
	pos map[ExprID]SeqPosition
}

// BuildParentMap walks the file once and indexes sequence membership.
func BuildParentMap(f *File) *ParentMap {
	pm := &ParentMap{pos: make(map[ExprID]SeqPosition)}
	f.WalkExprs(func(id ExprID) {
		data, ok := f.Arenas.Exprs.Seq(id)
		if !ok {
			return
		}
		for i, elem := range data.Elems {
			pm.pos[elem] = SeqPosition{Seq: id, Index: i}
		}
	})
	return pm
}

// SeqPosition returns the enclosing sequence and index for the expression,
// if its direct parent is a flat sequence.
func (pm *ParentMap) SeqPosition(id ExprID) (SeqPosition, bool) {
	p, ok := pm.pos[id]
	return p, ok
}
