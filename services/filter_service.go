package services

import (
	"wanderlink_server/models"
	"wanderlink_server/utils"
)

// maxSafeDay bounds an epoch-millisecond day value to the integer range the
// wire format can represent exactly (2^53 - 1). Anything beyond it is a
// malformed record, not a real date.
const maxSafeDay = int64(9007199254740991)

// FilterConfig tunes the optional predicates
type FilterConfig struct {
	// MutualAgeCheck additionally requires the candidate's declared age
	// range to admit the searching user's age. Kept off by default; the
	// product intends to switch it on once enough itineraries carry ranges.
	MutualAgeCheck bool
}

// FilterService applies the client-side compatibility predicates the store
// cannot express efficiently. Filtering is pure: input order is preserved,
// inputs are never mutated, and malformed candidates are dropped silently.
type FilterService struct {
	ViewedSet *ViewedSetService
	Config    FilterConfig
}

// Filter returns the candidates compatible with the searching user's
// itinerary. Each candidate runs the predicate chain below and is dropped on
// the first failure:
//
//  1. structural validity (non-empty id, day fields in safe range)
//  2. owner snapshot present
//  3. not the searching user's own itinerary
//  4. not already viewed
//  5. travel dates overlap — skipped, not failed, when either side's dates
//     are missing or unparseable
//  6. candidate age inside the searching user's declared range — skipped
//     when the candidate's age cannot be computed
func (fs *FilterService) Filter(candidates []models.Itinerary, current models.Itinerary, currentUserID string) []models.Itinerary {
	userStart, startOK := utils.DayFromDate(current.StartDate)
	userEnd, endOK := utils.DayFromDate(current.EndDate)
	userDatesOK := startOK && endOK

	var userAge int
	var userAgeOK bool
	if fs.Config.MutualAgeCheck && current.UserInfo != nil {
		userAge, userAgeOK = utils.AgeFromDOB(current.UserInfo.DOB)
	}

	filtered := make([]models.Itinerary, 0, len(candidates))
	for _, candidate := range candidates {
		if !structurallyValid(candidate) {
			continue
		}
		if candidate.UserInfo == nil || candidate.UserInfo.UID == "" {
			continue
		}
		if candidate.UserInfo.UID == currentUserID {
			continue
		}
		if fs.ViewedSet != nil && fs.ViewedSet.Contains(candidate.ID) {
			continue
		}

		if candidate.StartDay != 0 && candidate.EndDay != 0 && userDatesOK {
			if !utils.Overlaps(candidate.StartDay, candidate.EndDay, userStart, userEnd) {
				continue
			}
		}

		if current.LowerRange > 0 && current.UpperRange > 0 {
			if age, ok := utils.AgeFromDOB(candidate.UserInfo.DOB); ok {
				if age < current.LowerRange || age > current.UpperRange {
					continue
				}
			}
		}

		if fs.Config.MutualAgeCheck && userAgeOK && candidate.LowerRange > 0 && candidate.UpperRange > 0 {
			if userAge < candidate.LowerRange || userAge > candidate.UpperRange {
				continue
			}
		}

		filtered = append(filtered, candidate)
	}
	return filtered
}

// structurallyValid rejects records a malformed producer could have written
func structurallyValid(it models.Itinerary) bool {
	if it.ID == "" {
		return false
	}
	if it.StartDay < -maxSafeDay || it.StartDay > maxSafeDay {
		return false
	}
	if it.EndDay < -maxSafeDay || it.EndDay > maxSafeDay {
		return false
	}
	return true
}

// DedupeByDestination keeps only the first itinerary per destination so one
// page never shows the same destination twice
func DedupeByDestination(items []models.Itinerary) []models.Itinerary {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]models.Itinerary, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.Destination]; dup {
			continue
		}
		seen[it.Destination] = struct{}{}
		deduped = append(deduped, it)
	}
	return deduped
}
