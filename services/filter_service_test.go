package services

import (
	"context"
	"testing"
	"time"

	"wanderlink_server/models"
	"wanderlink_server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const currentUserID = "user-current"

// dobWithAge fabricates a birth date giving exactly the wanted age today
func dobWithAge(years int) string {
	return time.Now().AddDate(-years, 0, 0).Format("2006-01-02")
}

func newTestFilter(t *testing.T, viewed ...string) *FilterService {
	t.Helper()
	ctx := context.Background()
	vs := NewViewedSetService(ctx, NewMemoryBlobStore(), currentUserID)
	for _, id := range viewed {
		vs.Add(ctx, id)
	}
	return &FilterService{ViewedSet: vs}
}

func candidate(id, ownerUID string) models.Itinerary {
	return models.Itinerary{
		ID:          id,
		Destination: "Lisbon",
		UserInfo:    &models.UserInfo{UID: ownerUID},
	}
}

func TestFilterExcludesSelfAndOwnerless(t *testing.T) {
	fs := newTestFilter(t)

	candidates := []models.Itinerary{
		candidate("it-1", "user-a"),
		candidate("it-2", currentUserID),
		{ID: "it-3", Destination: "Porto"},
		{ID: "it-4", Destination: "Faro", UserInfo: &models.UserInfo{}},
		candidate("it-5", "user-b"),
	}

	got := fs.Filter(candidates, models.Itinerary{}, currentUserID)

	require.Len(t, got, 2)
	assert.Equal(t, "it-1", got[0].ID)
	assert.Equal(t, "it-5", got[1].ID, "input order is preserved")
}

func TestFilterExcludesViewed(t *testing.T) {
	fs := newTestFilter(t, "it-2")

	candidates := []models.Itinerary{
		candidate("it-1", "user-a"),
		candidate("it-2", "user-b"),
	}

	got := fs.Filter(candidates, models.Itinerary{}, currentUserID)
	require.Len(t, got, 1)
	assert.Equal(t, "it-1", got[0].ID)
}

func TestFilterDropsStructurallyInvalid(t *testing.T) {
	fs := newTestFilter(t)

	bad := candidate("", "user-a")
	hugeDay := candidate("it-huge", "user-b")
	hugeDay.StartDay = maxSafeDay + 1
	hugeDay.EndDay = maxSafeDay + 2

	got := fs.Filter([]models.Itinerary{bad, hugeDay, candidate("it-ok", "user-c")}, models.Itinerary{}, currentUserID)
	require.Len(t, got, 1)
	assert.Equal(t, "it-ok", got[0].ID)
}

func TestFilterDateOverlap(t *testing.T) {
	fs := newTestFilter(t)
	current := models.Itinerary{StartDate: "2026-07-10", EndDate: "2026-07-20"}

	day := func(date string) int64 {
		d, ok := utils.DayFromDate(date)
		require.True(t, ok)
		return d
	}

	overlapping := candidate("it-overlap", "user-a")
	overlapping.StartDay = day("2026-07-15")
	overlapping.EndDay = day("2026-07-25")

	touching := candidate("it-touch", "user-b")
	touching.StartDay = day("2026-07-01")
	touching.EndDay = day("2026-07-10")

	disjoint := candidate("it-disjoint", "user-c")
	disjoint.StartDay = day("2026-08-01")
	disjoint.EndDay = day("2026-08-10")

	noDates := candidate("it-nodates", "user-d")

	got := fs.Filter([]models.Itinerary{overlapping, touching, disjoint, noDates}, current, currentUserID)

	ids := make([]string, 0, len(got))
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"it-overlap", "it-touch", "it-nodates"}, ids,
		"touching endpoints overlap; missing dates skip the predicate")
}

func TestFilterDateOverlapSkippedWhenUserDatesInvalid(t *testing.T) {
	fs := newTestFilter(t)
	current := models.Itinerary{StartDate: "whenever", EndDate: "2026-07-20"}

	far := candidate("it-far", "user-a")
	far.StartDay = 1
	far.EndDay = 2

	got := fs.Filter([]models.Itinerary{far}, current, currentUserID)
	assert.Len(t, got, 1, "unparseable user dates skip the overlap predicate")
}

func TestFilterAgeCompatibility(t *testing.T) {
	fs := newTestFilter(t)
	current := models.Itinerary{LowerRange: 25, UpperRange: 35}

	withDOB := func(id, uid, dob string) models.Itinerary {
		it := candidate(id, uid)
		it.UserInfo.DOB = dob
		return it
	}

	candidates := []models.Itinerary{
		withDOB("it-lower", "user-a", dobWithAge(25)),
		withDOB("it-upper", "user-b", dobWithAge(35)),
		withDOB("it-young", "user-c", dobWithAge(24)),
		withDOB("it-old", "user-d", dobWithAge(36)),
		withDOB("it-unknown", "user-e", "not-a-date"),
	}

	got := fs.Filter(candidates, current, currentUserID)

	ids := make([]string, 0, len(got))
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"it-lower", "it-upper", "it-unknown"}, ids,
		"range bounds are inclusive; an uncomputable age skips the predicate")
}

func TestFilterAgeSkippedWithoutDeclaredRange(t *testing.T) {
	fs := newTestFilter(t)

	young := candidate("it-young", "user-a")
	young.UserInfo.DOB = dobWithAge(18)

	got := fs.Filter([]models.Itinerary{young}, models.Itinerary{}, currentUserID)
	assert.Len(t, got, 1)
}

func TestFilterMutualAgeCheckToggle(t *testing.T) {
	current := models.Itinerary{
		UserInfo: &models.UserInfo{UID: currentUserID, DOB: dobWithAge(40)},
	}

	narrow := candidate("it-narrow", "user-a")
	narrow.LowerRange = 20
	narrow.UpperRange = 30

	fs := newTestFilter(t)
	got := fs.Filter([]models.Itinerary{narrow}, current, currentUserID)
	assert.Len(t, got, 1, "mutual age check is off by default")

	fs.Config.MutualAgeCheck = true
	got = fs.Filter([]models.Itinerary{narrow}, current, currentUserID)
	assert.Empty(t, got, "enabled mutual check drops candidates whose range excludes the user")
}

func TestDedupeByDestination(t *testing.T) {
	first := candidate("it-1", "user-a")
	dupe := candidate("it-2", "user-b")
	other := candidate("it-3", "user-c")
	other.Destination = "Porto"
	trailing := candidate("it-4", "user-d")

	got := DedupeByDestination([]models.Itinerary{first, dupe, other, trailing})

	require.Len(t, got, 2)
	assert.Equal(t, "it-1", got[0].ID, "first occurrence per destination wins")
	assert.Equal(t, "it-3", got[1].ID)
}
