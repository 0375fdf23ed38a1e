package models

// CategoryCount is how often a problem category appears across analyses.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// IndustryInsights aggregates the analyses submitted for one industry.
// AverageROI, SuccessRate and AverageImplementationTime are published
// marketing figures, not values computed from stored data.
type IndustryInsights struct {
	Industry                  string          `json:"industry"`
	TotalAnalyses             int             `json:"totalAnalyses"`
	CompletedAnalyses         int             `json:"completedAnalyses"`
	FailedAnalyses            int             `json:"failedAnalyses"`
	CommonProblems            []CategoryCount `json:"commonProblems"`
	AverageROI                string          `json:"averageROI"`
	SuccessRate               string          `json:"successRate"`
	AverageImplementationTime string          `json:"averageImplementationTime"`
}
