package position

// PositionsSeenMap is a set of positions keyed by offset and text.
type PositionsSeenMap struct {
	positions map[string]RawPosition
	order     []string
}

func NewPositionsSeenMap() *PositionsSeenMap {
	return &PositionsSeenMap{
		positions: make(map[string]RawPosition),
	}
}

func (me *PositionsSeenMap) Add(pos RawPosition) {
	id := pos.ID()
	if _, ok := me.positions[id]; ok {
		return
	}
	me.positions[id] = pos
	me.order = append(me.order, id)
}

func (me *PositionsSeenMap) Has(pos RawPosition) bool {
	_, ok := me.positions[pos.ID()]
	return ok
}
