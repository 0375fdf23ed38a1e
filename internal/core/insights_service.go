package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"dsb-backend-go/internal/db"
	"dsb-backend-go/internal/models"
)

const maxCommonProblems = 5

// Published figures shown with every insight.
const (
	insightAverageROI         = "380%"
	insightSuccessRate        = "94%"
	insightImplementationTime = "8-12 weeks"
)

// insightsService implements the InsightsService interface.
type insightsService struct {
	analyses db.ProblemAnalysisRepository
}

// NewInsightsService creates a new InsightsService instance.
func NewInsightsService(analyses db.ProblemAnalysisRepository) InsightsService {
	return &insightsService{analyses: analyses}
}

func (s *insightsService) GetIndustryInsights(ctx context.Context, industry string) (*models.IndustryInsights, error) {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return nil, fmt.Errorf("%w: industry is required", ErrInvalidInput)
	}

	all, err := s.analyses.ListProblemAnalyses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list problem analyses: %w", err)
	}

	insights := &models.IndustryInsights{
		Industry:                  industry,
		CommonProblems:            []models.CategoryCount{},
		AverageROI:                insightAverageROI,
		SuccessRate:               insightSuccessRate,
		AverageImplementationTime: insightImplementationTime,
	}

	counts := make(map[string]*models.CategoryCount)
	for _, a := range all {
		if !strings.EqualFold(a.Industry, industry) {
			continue
		}
		insights.TotalAnalyses++
		switch a.Status {
		case models.StatusCompleted:
			insights.CompletedAnalyses++
		case models.StatusFailed:
			insights.FailedAnalyses++
		}
		if a.AnalysisResult == nil {
			continue
		}
		for _, category := range a.AnalysisResult.ProblemCategories {
			key := strings.ToLower(strings.TrimSpace(category))
			if key == "" {
				continue
			}
			if c, ok := counts[key]; ok {
				c.Count++
			} else {
				counts[key] = &models.CategoryCount{Category: key, Count: 1}
			}
		}
	}

	for _, c := range counts {
		insights.CommonProblems = append(insights.CommonProblems, *c)
	}
	sort.Slice(insights.CommonProblems, func(i, j int) bool {
		a, b := insights.CommonProblems[i], insights.CommonProblems[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	if len(insights.CommonProblems) > maxCommonProblems {
		insights.CommonProblems = insights.CommonProblems[:maxCommonProblems]
	}
	return insights, nil
}
