package dmesh

// EditResult reports whether a topology edit was applied and, if not, why.
type EditResult int

const (
	EditOK EditResult = iota
	EditFailed
	EditInvalidInput
	EditBoundaryEdge
	EditNotBoundaryEdge
	EditNonManifold
	EditDegenerate
)

func (r EditResult) String() string {
	switch r {
	case EditOK:
		return "ok"
	case EditFailed:
		return "failed"
	case EditInvalidInput:
		return "invalid input"
	case EditBoundaryEdge:
		return "boundary edge"
	case EditNotBoundaryEdge:
		return "not a boundary edge"
	case EditNonManifold:
		return "would create non-manifold topology"
	case EditDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}
