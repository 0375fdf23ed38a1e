package models

import "time"

// AnalysisStatus is the lifecycle state of a ProblemAnalysis.
type AnalysisStatus string

const (
	StatusPending   AnalysisStatus = "pending"
	StatusAnalyzing AnalysisStatus = "analyzing"
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// Valid reports whether s is one of the known analysis states.
func (s AnalysisStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAnalyzing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// ProblemAnalysis is a submitted manufacturing problem together with the
// analysis generated for it.
// AnalysisResult is non-nil if and only if Status is StatusCompleted.
type ProblemAnalysis struct {
	ID                 string          `json:"id" firestore:"-"`
	UserID             *string         `json:"userId" firestore:"userId"`
	ProblemDescription string          `json:"problemDescription" firestore:"problemDescription"`
	Industry           string          `json:"industry" firestore:"industry"`
	AnnualRevenue      *string         `json:"annualRevenue" firestore:"annualRevenue"`
	CurrentCapacity    *int            `json:"currentCapacity" firestore:"currentCapacity"`
	Facilities         *int            `json:"facilities" firestore:"facilities"`
	Status             AnalysisStatus  `json:"status" firestore:"status"`
	AnalysisResult     *AnalysisResult `json:"analysisResult" firestore:"analysisResult"`
	CreatedAt          time.Time       `json:"createdAt" firestore:"createdAt"`
}

// Input returns the original problem input the analysis was created from.
func (a *ProblemAnalysis) Input() ProblemInput {
	return ProblemInput{
		ProblemDescription: a.ProblemDescription,
		Industry:           a.Industry,
		AnnualRevenue:      a.AnnualRevenue,
		CurrentCapacity:    a.CurrentCapacity,
		Facilities:         a.Facilities,
	}
}

// NewProblemAnalysis holds the caller-supplied fields of a new analysis.
// Status, result, ID and timestamp are assigned by the store.
type NewProblemAnalysis struct {
	UserID *string
	ProblemInput
}
