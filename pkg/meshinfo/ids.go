// Package meshinfo holds the index types and edit-description records shared by the
// dynamic mesh and the attribute layers attached to it.
package meshinfo

// InvalidID marks an unset vertex, triangle, edge or element id.
const InvalidID = -1

// Index2 is an ordered pair of ids.
type Index2 struct {
	A, B int
}

// InvalidIndex2 returns a pair of InvalidID.
func InvalidIndex2() Index2 {
	return Index2{InvalidID, InvalidID}
}

// Get returns component i (0 or 1).
func (p Index2) Get(i int) int {
	if i == 0 {
		return p.A
	}
	return p.B
}

// Contains reports whether id is one of the pair.
func (p Index2) Contains(id int) bool {
	return p.A == id || p.B == id
}

// OtherOf returns the component that is not id, or InvalidID if id is not in the pair.
func (p Index2) OtherOf(id int) int {
	switch id {
	case p.A:
		return p.B
	case p.B:
		return p.A
	}
	return InvalidID
}

// Index3 is an ordered triple of ids, typically the corners of a triangle.
type Index3 [3]int

// InvalidIndex3 returns a triple of InvalidID.
func InvalidIndex3() Index3 {
	return Index3{InvalidID, InvalidID, InvalidID}
}

// IndexOf returns the slot holding id, or -1.
func (t Index3) IndexOf(id int) int {
	for i, v := range t {
		if v == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id appears in the triple.
func (t Index3) Contains(id int) bool {
	return t.IndexOf(id) >= 0
}

// Replace returns a copy with every occurrence of from replaced by to.
func (t Index3) Replace(from, to int) Index3 {
	for i := range t {
		if t[i] == from {
			t[i] = to
		}
	}
	return t
}

// OtherSlot returns the slot that is neither i nor j, for distinct i, j in [0,3).
func OtherSlot(i, j int) int {
	return 3 - i - j
}

// SamePairUnordered reports whether {a0,b0} and {a1,b1} hold the same ids.
func SamePairUnordered(a0, b0, a1, b1 int) bool {
	return (a0 == a1 && b0 == b1) || (a0 == b1 && b0 == a1)
}
