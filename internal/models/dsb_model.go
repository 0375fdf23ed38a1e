package models

// The types in this file mirror the JSON documents requested from the
// text-generation provider. The `validate` tags are checked after decoding,
// so a structurally valid but semantically wrong response is rejected before
// it reaches the store.

// AnalysisResult is the structured categorisation of a submitted problem.
type AnalysisResult struct {
	ProblemCategories []string   `json:"problemCategories" firestore:"problemCategories" validate:"required,min=1,dive,required"`
	RootCauses        []string   `json:"rootCauses" firestore:"rootCauses" validate:"required,min=1,dive,required"`
	Severity          string     `json:"severity" firestore:"severity" validate:"required,oneof=low medium high critical"`
	IndustryPatterns  []string   `json:"industryPatterns" firestore:"industryPatterns" validate:"dive,required"`
	Urgency           int        `json:"urgency" firestore:"urgency" validate:"min=1,max=10"`
	KeyIssues         []KeyIssue `json:"keyIssues" firestore:"keyIssues" validate:"dive"`
}

// KeyIssue is one prioritised issue inside an AnalysisResult.
type KeyIssue struct {
	Issue    string `json:"issue" firestore:"issue" validate:"required"`
	Impact   string `json:"impact" firestore:"impact" validate:"required,oneof=low medium high"`
	Priority int    `json:"priority" firestore:"priority" validate:"min=1"`
}

// DSBSolution is the structured recommendation generated from an analysis.
type DSBSolution struct {
	SolutionType          string               `json:"solutionType" validate:"required"`
	IndustrySpecific      bool                 `json:"industrySpecific"`
	CustomAlgorithms      []CustomAlgorithm    `json:"customAlgorithms" validate:"dive"`
	DashboardComponents   []DashboardComponent `json:"dashboardComponents" validate:"dive"`
	ImplementationRoadmap []RoadmapPhase       `json:"implementationRoadmap" validate:"dive"`
	ROIProjections        ROIProjections       `json:"roiProjections"`
	ExpectedResults       ExpectedResults      `json:"expectedResults"`
}

type CustomAlgorithm struct {
	Name           string `json:"name" firestore:"name" validate:"required"`
	Description    string `json:"description" firestore:"description"`
	Implementation string `json:"implementation" firestore:"implementation"`
}

type DashboardComponent struct {
	Name            string `json:"name" firestore:"name" validate:"required"`
	Description     string `json:"description" firestore:"description"`
	Type            string `json:"type" firestore:"type" validate:"required,oneof=chart metric alert optimization"`
	RealTimeCapable bool   `json:"realTimeCapable" firestore:"realTimeCapable"`
}

type RoadmapPhase struct {
	Phase        string   `json:"phase" firestore:"phase" validate:"required"`
	Timeline     string   `json:"timeline" firestore:"timeline"`
	Activities   []string `json:"activities" firestore:"activities"`
	Deliverables []string `json:"deliverables" firestore:"deliverables"`
}

type ROIProjections struct {
	CapacityImprovement string `json:"capacityImprovement" firestore:"capacityImprovement"`
	AdditionalRevenue   string `json:"additionalRevenue" firestore:"additionalRevenue"`
	CostReduction       string `json:"costReduction" firestore:"costReduction"`
	FirstYearROI        string `json:"firstYearROI" firestore:"firstYearROI"`
	ImplementationCost  string `json:"implementationCost" firestore:"implementationCost"`
}

type ExpectedResults struct {
	ShortTerm []string       `json:"shortTerm" firestore:"shortTerm"`
	LongTerm  []string       `json:"longTerm" firestore:"longTerm"`
	Metrics   []ResultMetric `json:"metrics" firestore:"metrics" validate:"dive"`
}

type ResultMetric struct {
	Metric       string `json:"metric" firestore:"metric" validate:"required"`
	CurrentValue string `json:"currentValue" firestore:"currentValue"`
	TargetValue  string `json:"targetValue" firestore:"targetValue"`
	Timeframe    string `json:"timeframe" firestore:"timeframe"`
}
