package scoring

import (
	"math"
	"testing"

	"kpi-dashboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func rating(r domain.Rating) *domain.Rating { return &r }

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Score(nil))
	assert.Equal(t, 0, Score(rating("OUTSTANDING")))
	assert.Equal(t, 0, Score(rating("")))
	assert.Equal(t, 90, Score(rating(domain.RatingExceedsExpectations)))
	assert.Equal(t, 75, Score(rating(domain.RatingMeetsExpectations)))
	assert.Equal(t, 60, Score(rating(domain.RatingNeedsImprovement)))
	assert.Equal(t, 40, Score(rating(domain.RatingUnsatisfactory)))
}

func TestEmployeeAverage(t *testing.T) {
	avg := EmployeeAverage(nil)
	assert.Equal(t, 0.0, avg)
	assert.False(t, math.IsNaN(avg))

	assert.Equal(t, 82.5, EmployeeAverage([]*domain.Rating{
		rating(domain.RatingExceedsExpectations),
		rating(domain.RatingMeetsExpectations),
	}))

	// (90 + 75 + 60) / 3 = 75
	assert.Equal(t, 75.0, EmployeeAverage([]*domain.Rating{
		rating(domain.RatingExceedsExpectations),
		rating(domain.RatingMeetsExpectations),
		rating(domain.RatingNeedsImprovement),
	}))

	// (90 + 0 + 40) / 3 = 43.33 -> 43.3
	assert.Equal(t, 43.3, EmployeeAverage([]*domain.Rating{
		rating(domain.RatingExceedsExpectations),
		nil,
		rating(domain.RatingUnsatisfactory),
	}))
}

func TestTeamAverage_MembersWithoutReviewsCountAsZero(t *testing.T) {
	assert.Equal(t, 40.0, TeamAverage([]float64{80, 0}))
	assert.Equal(t, 0.0, TeamAverage(nil))

	// A: (90 + 75) / 2 = 82.5 over two reviews, B: no reviews.
	// The raw mean of the two review scores would be 82.5.
	a := EmployeeAverage([]*domain.Rating{
		rating(domain.RatingExceedsExpectations),
		rating(domain.RatingMeetsExpectations),
	})
	b := EmployeeAverage(nil)
	assert.Equal(t, 41.3, TeamAverage([]float64{a, b}))
}

func TestSortMembers(t *testing.T) {
	members := []MemberScore{
		{UserID: "a", AverageScore: 60},
		{UserID: "b", AverageScore: 90},
		{UserID: "c", AverageScore: 60},
		{UserID: "d", AverageScore: 75},
	}
	SortMembers(members)

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
	assert.Equal(t, []float64{90, 75, 60, 60}, Averages(members))
}
