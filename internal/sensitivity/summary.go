package sensitivity

import (
	"fmt"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes the savings statistics of a sweep. Statistics run on
// float64 and are rounded to cents; the grid values themselves stay exact.
func Summarize(points []domain.SensitivityPoint) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{}
	if len(points) == 0 {
		return summary
	}

	savings := make([]float64, len(points))
	vibeAbo := 0
	for i, pt := range points {
		savings[i] = pt.SavingsTotal.InexactFloat64()
		if pt.Recommendation == domain.RecommendVibeAbo {
			vibeAbo++
		}
		if i > 0 && pt.Recommendation != points[i-1].Recommendation {
			summary.RecommendationChanges++
		}
	}

	summary.MinSavings = cents(floats.Min(savings))
	summary.MaxSavings = cents(floats.Max(savings))
	summary.MeanSavings = cents(stat.Mean(savings, nil))
	if len(savings) > 1 {
		summary.StdDevSavings = cents(stat.StdDev(savings, nil))
	}
	summary.VibeAboShare = decimal.NewFromInt(int64(vibeAbo)).
		Div(decimal.NewFromInt(int64(len(points)))).Round(4)

	return summary
}

func cents(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

func generateRecommendations(multi *domain.MultiSensitivityAnalysis) []string {
	recommendations := []string{}

	if multi.MostSensitiveParameter != "" {
		recommendations = append(recommendations,
			fmt.Sprintf("Most sensitive input: %s (savings spread %s €)",
				multi.MostSensitiveParameter,
				multi.SensitivityScores[multi.MostSensitiveParameter].StringFixed(0)))
	}

	for _, a := range multi.Analyses {
		s := a.Summary
		switch {
		case s.RecommendationChanges > 0:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: the recommendation flips within %s - %s %s",
					a.Parameter.Description, a.Parameter.MinValue.String(), a.Parameter.MaxValue.String(), a.Parameter.Unit))
		case s.VibeAboShare.Equal(decimal.NewFromInt(1)):
			recommendations = append(recommendations,
				fmt.Sprintf("%s: the subscription wins across the whole range", a.Parameter.Description))
		case s.VibeAboShare.IsZero():
			recommendations = append(recommendations,
				fmt.Sprintf("%s: the lease wins across the whole range", a.Parameter.Description))
		}
	}

	return recommendations
}
