package domain

// levelOrder is the UK adult-education ladder: Entry 1-3 then Levels 1-8.
var levelOrder = []string{"E1", "E2", "E3", "L1", "L2", "L3", "L4", "L5", "L6", "L7", "L8"}

// LevelRank returns the ordinal of a level code, or false for an unknown code.
func LevelRank(code string) (int, bool) {
	for i, l := range levelOrder {
		if l == code {
			return i, true
		}
	}
	return 0, false
}

// LevelAtMost reports whether code sorts at or below max on the level ladder.
// Unknown codes never pass the filter; an empty max means no restriction.
func LevelAtMost(code, max string) bool {
	if max == "" {
		return true
	}
	cr, ok := LevelRank(code)
	if !ok {
		return false
	}
	mr, ok := LevelRank(max)
	if !ok {
		return false
	}
	return cr <= mr
}
