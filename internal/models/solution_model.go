package models

import "time"

// Solution is a persisted DSB solution generated from a completed analysis.
// Solutions are immutable once created.
type Solution struct {
	ID                    string               `json:"id" firestore:"-"`
	ProblemAnalysisID     *string              `json:"problemAnalysisId" firestore:"problemAnalysisId"`
	SolutionType          string               `json:"solutionType" firestore:"solutionType"`
	CustomAlgorithms      []CustomAlgorithm    `json:"customAlgorithms" firestore:"customAlgorithms"`
	DashboardComponents   []DashboardComponent `json:"dashboardComponents" firestore:"dashboardComponents"`
	ImplementationRoadmap []RoadmapPhase       `json:"implementationRoadmap" firestore:"implementationRoadmap"`
	ROIProjections        *ROIProjections      `json:"roiProjections" firestore:"roiProjections"`
	ExpectedResults       *ExpectedResults     `json:"expectedResults" firestore:"expectedResults"`
	CreatedAt             time.Time            `json:"createdAt" firestore:"createdAt"`
}

// NewSolution holds the caller-supplied fields of a new solution.
type NewSolution struct {
	ProblemAnalysisID     *string
	SolutionType          string
	CustomAlgorithms      []CustomAlgorithm
	DashboardComponents   []DashboardComponent
	ImplementationRoadmap []RoadmapPhase
	ROIProjections        *ROIProjections
	ExpectedResults       *ExpectedResults
}

// NewSolutionFromDSB maps a generated DSB solution onto the persisted shape.
func NewSolutionFromDSB(problemAnalysisID string, dsb *DSBSolution) NewSolution {
	roi := dsb.ROIProjections
	expected := dsb.ExpectedResults
	return NewSolution{
		ProblemAnalysisID:     &problemAnalysisID,
		SolutionType:          dsb.SolutionType,
		CustomAlgorithms:      dsb.CustomAlgorithms,
		DashboardComponents:   dsb.DashboardComponents,
		ImplementationRoadmap: dsb.ImplementationRoadmap,
		ROIProjections:        &roi,
		ExpectedResults:       &expected,
	}
}
