package db

import "dsb-backend-go/internal/models"

// The in-memory store never hands out pointers into its own maps; every
// record crosses the boundary as a deep copy.

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Company = cloneString(u.Company)
	c.Industry = cloneString(u.Industry)
	return &c
}

func cloneAnalysisResult(r *models.AnalysisResult) *models.AnalysisResult {
	if r == nil {
		return nil
	}
	c := *r
	c.ProblemCategories = cloneStrings(r.ProblemCategories)
	c.RootCauses = cloneStrings(r.RootCauses)
	c.IndustryPatterns = cloneStrings(r.IndustryPatterns)
	if r.KeyIssues != nil {
		c.KeyIssues = append([]models.KeyIssue(nil), r.KeyIssues...)
	}
	return &c
}

func cloneProblemAnalysis(a *models.ProblemAnalysis) *models.ProblemAnalysis {
	c := *a
	c.UserID = cloneString(a.UserID)
	c.AnnualRevenue = cloneString(a.AnnualRevenue)
	c.CurrentCapacity = cloneInt(a.CurrentCapacity)
	c.Facilities = cloneInt(a.Facilities)
	c.AnalysisResult = cloneAnalysisResult(a.AnalysisResult)
	return &c
}

func cloneSolution(s *models.Solution) *models.Solution {
	c := *s
	c.ProblemAnalysisID = cloneString(s.ProblemAnalysisID)
	if s.CustomAlgorithms != nil {
		c.CustomAlgorithms = append([]models.CustomAlgorithm(nil), s.CustomAlgorithms...)
	}
	if s.DashboardComponents != nil {
		c.DashboardComponents = append([]models.DashboardComponent(nil), s.DashboardComponents...)
	}
	if s.ImplementationRoadmap != nil {
		c.ImplementationRoadmap = make([]models.RoadmapPhase, len(s.ImplementationRoadmap))
		for i, p := range s.ImplementationRoadmap {
			p.Activities = cloneStrings(p.Activities)
			p.Deliverables = cloneStrings(p.Deliverables)
			c.ImplementationRoadmap[i] = p
		}
	}
	if s.ROIProjections != nil {
		roi := *s.ROIProjections
		c.ROIProjections = &roi
	}
	if s.ExpectedResults != nil {
		er := *s.ExpectedResults
		er.ShortTerm = cloneStrings(er.ShortTerm)
		er.LongTerm = cloneStrings(er.LongTerm)
		if er.Metrics != nil {
			er.Metrics = append([]models.ResultMetric(nil), er.Metrics...)
		}
		c.ExpectedResults = &er
	}
	return &c
}

func cloneSubscription(s *models.Subscription) *models.Subscription {
	c := *s
	c.UserID = cloneString(s.UserID)
	c.MaxGenerations = cloneInt(s.MaxGenerations)
	if s.EndDate != nil {
		end := *s.EndDate
		c.EndDate = &end
	}
	return &c
}
