// Package scoring maps review ratings to scores and aggregates them.
package scoring

import (
	"math"
	"sort"

	"kpi-dashboard/internal/core/domain"
)

// ratingScores is the only rating table in the codebase
var ratingScores = map[domain.Rating]int{
	domain.RatingExceedsExpectations: 90,
	domain.RatingMeetsExpectations:   75,
	domain.RatingNeedsImprovement:    60,
	domain.RatingUnsatisfactory:      40,
}

// Score maps a rating to its score. Nil and unknown ratings score 0.
func Score(rating *domain.Rating) int {
	if rating == nil {
		return 0
	}
	return ratingScores[*rating]
}

// IsValidRating reports whether r is a known rating
func IsValidRating(r domain.Rating) bool {
	_, ok := ratingScores[r]
	return ok
}

// EmployeeAverage is the mean score over an employee's reviews,
// rounded to one decimal. No reviews yields 0.
func EmployeeAverage(ratings []*domain.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range ratings {
		total += Score(r)
	}
	return round1(float64(total) / float64(len(ratings)))
}

// TeamAverage is the mean of per-member averages. Members without
// reviews contribute 0, so it differs from the mean of all review scores.
func TeamAverage(memberAverages []float64) float64 {
	if len(memberAverages) == 0 {
		return 0
	}
	var total float64
	for _, avg := range memberAverages {
		total += avg
	}
	return round1(total / float64(len(memberAverages)))
}

// MemberScore is one team member's aggregated score
type MemberScore struct {
	UserID       string  `json:"userId"`
	Name         string  `json:"name"`
	AverageScore float64 `json:"averageScore"`
	ReviewCount  int     `json:"reviewCount"`
}

// SortMembers orders members by average score, highest first.
// Ties keep their input order.
func SortMembers(members []MemberScore) {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].AverageScore > members[j].AverageScore
	})
}

// Averages extracts the average scores of members
func Averages(members []MemberScore) []float64 {
	out := make([]float64, len(members))
	for i, m := range members {
		out[i] = m.AverageScore
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
