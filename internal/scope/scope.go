package scope

import "sort"

// AccessScope is the set of buildings a caller may see or act on. It has
// exactly two shapes: unrestricted (privileged caller, no filter at all) or
// an explicit building-id set. An empty restricted set is a real result —
// "sees nothing" — and is never the same thing as unrestricted.
type AccessScope struct {
	unrestricted bool
	buildings    map[int64]struct{}
}

// Unrestricted returns the privileged no-filter scope.
func Unrestricted() AccessScope {
	return AccessScope{unrestricted: true}
}

// Restricted returns a scope limited to exactly the given building ids.
func Restricted(buildingIDs ...int64) AccessScope {
	set := make(map[int64]struct{}, len(buildingIDs))
	for _, id := range buildingIDs {
		set[id] = struct{}{}
	}
	return AccessScope{buildings: set}
}

func (s AccessScope) IsUnrestricted() bool { return s.unrestricted }

// Contains reports whether the scope grants access to the building.
func (s AccessScope) Contains(buildingID int64) bool {
	if s.unrestricted {
		return true
	}
	_, ok := s.buildings[buildingID]
	return ok
}

// Len returns the number of buildings in a restricted scope, 0 when
// unrestricted.
func (s AccessScope) Len() int { return len(s.buildings) }

// BuildingIDs returns the restricted set as a sorted slice. The ordering is
// for stable output only; callers must treat the result as an unordered set.
// It is nil for an unrestricted scope.
func (s AccessScope) BuildingIDs() []int64 {
	if s.unrestricted {
		return nil
	}
	ids := make([]int64, 0, len(s.buildings))
	for id := range s.buildings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
