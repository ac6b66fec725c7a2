package training

import "strings"

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}

func intersects(a map[string]struct{}, b []string) bool {
	for _, item := range b {
		if _, ok := a[item]; ok {
			return true
		}
	}
	return false
}

func hasLocation(locations []Location, want Location) bool {
	for _, l := range locations {
		if l == want {
			return true
		}
	}
	return false
}

// equipmentAllowed reports whether the user can perform an exercise with the given equipment. At home an
// exercise needing equipment requires owning some of it. Elsewhere an empty declared list means
// unrestricted.
func equipmentAllowed(location Location, owned map[string]struct{}, required []string) bool {
	if len(required) == 0 {
		return true
	}
	lowered := make([]string, len(required))
	for i, r := range required {
		lowered[i] = strings.ToLower(r)
	}
	if location == LocationHome {
		return intersects(owned, lowered)
	}
	return len(owned) == 0 || intersects(owned, lowered)
}

// EligibleExercises returns the catalog entries the profile may perform, in catalog order.
func EligibleExercises(p Profile, catalog []Exercise, registry *Registry) []Exercise {
	var (
		maxRank = p.ExperienceLevel.Rank() + 1
		risks   = registry.RiskTags(p)
		owned   = lowerSet(p.AvailableEquipment)
		result  = make([]Exercise, 0, len(catalog))
	)

	for _, e := range catalog {
		if (p.PreferredLocation == LocationHome || p.PreferredLocation == LocationGym) &&
			!hasLocation(e.Locations, p.PreferredLocation) {
			continue
		}
		if !equipmentAllowed(p.PreferredLocation, owned, e.Equipment) {
			continue
		}
		if e.Difficulty.Rank() > maxRank {
			continue
		}
		if intersects(risks, e.Contraindications) {
			continue
		}
		result = append(result, e)
	}
	return result
}
