package service

import (
	"context"
	"math"

	"smarthire/internal/hiring"
	dErrors "smarthire/pkg/domain-errors"
)

// Analytics aggregates userID's match history. An empty history yields the
// zero-value report rather than an error.
func (s *Service) Analytics(ctx context.Context, userID string) (*hiring.Analytics, error) {
	all, err := s.matches.AllByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to compute analytics")
	}

	s.metrics.IncrementAnalyticsQueries()

	out := &hiring.Analytics{TotalMatches: len(all)}
	if len(all) == 0 {
		return out, nil
	}

	var (
		sumPercentage float64
		sumTimeMS     int
		sumCost       float64
	)
	for _, m := range all {
		sumPercentage += m.MatchPercentage
		sumTimeMS += m.ProcessingTimeMS
		sumCost += m.ProcessingCostUSD

		switch m.Recommendation {
		case hiring.RecommendationStrongMatch:
			out.StrongMatches++
		case hiring.RecommendationPotentialFit:
			out.PotentialFits++
		case hiring.RecommendationNotRecommended:
			out.NotRecommended++
		}
	}

	n := float64(len(all))
	out.AverageMatchPercentage = roundTo(sumPercentage/n, 2)
	out.AverageProcessingTimeMS = int(math.Round(float64(sumTimeMS) / n))
	out.TotalCostUSD = roundTo(sumCost, 4)
	return out, nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
