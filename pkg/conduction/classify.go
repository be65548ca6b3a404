package conduction

// Terminals are the start atoms of the conduction path and their paired end
// atoms. Start[i] and End[i] form one pair; both lists are in discovery order.
type Terminals struct {
	Start []int
	End   []int

	isStart map[int]bool
}

// Len returns the number of start/end pairs
func (t Terminals) Len() int {
	return len(t.Start)
}

// IsStart reports whether idx is a start atom
func (t Terminals) IsStart(idx int) bool {
	return t.isStart[idx]
}

// Validate checks that both lists are parallel and every end atom is a
// supercell site
func (t Terminals) Validate(sc *Supercell) error {
	if len(t.Start) != len(t.End) {
		return invariantError(StageClassify, "%d start atoms, %d end atoms", len(t.Start), len(t.End))
	}
	for i, end := range t.End {
		if end < 0 || end >= sc.Len() {
			return NewError(StageClassify).Atom(t.Start[i]).
				Context("end atom %d outside supercell of %d sites", end, sc.Len()).
				Cause(ErrInvariant).Err()
		}
	}
	return nil
}

// ClassifyBoundaryAtoms picks the start atoms: middle-replica sites with a
// neighbor in another replica whose axis coordinate is below startFraction of
// the supercell length. The end atom of a start atom idx is idx+1, the image
// of the same input site in the last replica under interleaved tiling.
func ClassifyBoundaryAtoms(sc *Supercell, nm *NeighborMap, startFraction float64) Terminals {
	t := Terminals{isStart: make(map[int]bool)}
	limit := startFraction * sc.Length()

	for _, idx := range nm.Atoms() {
		if !crossesReplica(sc, nm.Of(idx)) {
			continue
		}
		if sc.Position(idx)[sc.Axis] >= limit {
			continue
		}
		t.Start = append(t.Start, idx)
		t.End = append(t.End, idx+1)
		t.isStart[idx] = true
	}
	return t
}

func crossesReplica(sc *Supercell, neighbors []int) bool {
	for _, nbr := range neighbors {
		if !sc.IsMiddle(nbr) {
			return true
		}
	}
	return false
}
