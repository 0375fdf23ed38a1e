package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"dsb-backend-go/internal/models"
)

const (
	analysisTemperature     float32 = 0.3
	solutionTemperature     float32 = 0.4
	optimizationTemperature float32 = 0.2
)

const analysisSystemPrompt = "You are a manufacturing operations consultant who applies the DSB (Dynamic Strategic Balancing) " +
	"method. Diagnose production problems precisely and answer only with the requested JSON object."

const solutionSystemPrompt = "You design DSB (Dynamic Strategic Balancing) optimization programmes for manufacturers. " +
	"Propose concrete, industry-specific solutions with measurable outcomes and answer only with the requested JSON object."

const optimizationSystemPrompt = "You run continuous-improvement reviews of deployed DSB solutions. Use the performance " +
	"data and feedback to recommend specific adjustments and answer only with a JSON object."

const analysisSchema = `{
  "problemCategories": [string],
  "rootCauses": [string],
  "severity": "low" | "medium" | "high" | "critical",
  "industryPatterns": [string],
  "urgency": integer 1-10,
  "keyIssues": [{"issue": string, "impact": "low" | "medium" | "high", "priority": integer 1-10}]
}`

const solutionSchema = `{
  "solutionType": string,
  "industrySpecific": boolean,
  "customAlgorithms": [{"name": string, "description": string, "implementation": string}],
  "dashboardComponents": [{"name": string, "description": string, "type": "chart" | "metric" | "alert" | "optimization", "realTimeCapable": boolean}],
  "implementationRoadmap": [{"phase": string, "timeline": string, "activities": [string], "deliverables": [string]}],
  "roiProjections": {"capacityImprovement": string, "additionalRevenue": string, "costReduction": string, "firstYearROI": string, "implementationCost": string},
  "expectedResults": {"shortTerm": [string], "longTerm": [string], "metrics": [{"metric": string, "currentValue": string, "targetValue": string, "timeframe": string}]}
}`

func orUnspecified(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "Not specified"
	}
	return *s
}

func intOrUnspecified(i *int, suffix string) string {
	if i == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%d%s", *i, suffix)
}

func writeProblem(b *strings.Builder, input models.ProblemInput) {
	fmt.Fprintf(b, "Problem description: %s\n", input.ProblemDescription)
	fmt.Fprintf(b, "Industry: %s\n", input.Industry)
	fmt.Fprintf(b, "Annual revenue: %s\n", orUnspecified(input.AnnualRevenue))
	fmt.Fprintf(b, "Current capacity utilisation: %s\n", intOrUnspecified(input.CurrentCapacity, "%"))
	fmt.Fprintf(b, "Facilities: %s\n", intOrUnspecified(input.Facilities, ""))
}

func analysisPrompt(input models.ProblemInput) string {
	var b strings.Builder
	b.WriteString("Analyse this manufacturing problem.\n\n")
	writeProblem(&b, input)
	b.WriteString("\nRespond with a JSON object of this shape:\n")
	b.WriteString(analysisSchema)
	b.WriteString("\n\nFocus on optimisation opportunities a DSB programme can address.")
	return b.String()
}

func solutionPrompt(analysis *models.AnalysisResult, input models.ProblemInput) string {
	issues := make([]string, 0, len(analysis.KeyIssues))
	for _, ki := range analysis.KeyIssues {
		issues = append(issues, ki.Issue)
	}

	var b strings.Builder
	b.WriteString("Design a DSB solution for the problem below using its analysis.\n\n")
	writeProblem(&b, input)
	b.WriteString("\nAnalysis:\n")
	fmt.Fprintf(&b, "Problem categories: %s\n", strings.Join(analysis.ProblemCategories, ", "))
	fmt.Fprintf(&b, "Root causes: %s\n", strings.Join(analysis.RootCauses, ", "))
	fmt.Fprintf(&b, "Severity: %s (urgency %d/10)\n", analysis.Severity, analysis.Urgency)
	fmt.Fprintf(&b, "Key issues: %s\n", strings.Join(issues, ", "))
	b.WriteString("\nRespond with a JSON object of this shape:\n")
	b.WriteString(solutionSchema)
	fmt.Fprintf(&b, "\n\nTailor every component to the %s industry.", input.Industry)
	return b.String()
}

func optimizationPrompt(solution *models.Solution, performanceData map[string]interface{}, feedback string) (string, error) {
	perf, err := json.Marshal(performanceData)
	if err != nil {
		return "", fmt.Errorf("encode performance data: %w", err)
	}

	var b strings.Builder
	b.WriteString("Optimise an existing DSB solution.\n\n")
	fmt.Fprintf(&b, "Solution: %s\n", solution.SolutionType)
	if len(solution.CustomAlgorithms) > 0 {
		names := make([]string, 0, len(solution.CustomAlgorithms))
		for _, a := range solution.CustomAlgorithms {
			names = append(names, a.Name)
		}
		fmt.Fprintf(&b, "Algorithms in use: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "Performance data: %s\n", perf)
	fmt.Fprintf(&b, "User feedback: %s\n", feedback)
	b.WriteString("\nRespond with a JSON object containing specific improvements, timeline adjustments and enhanced algorithms.")
	return b.String(), nil
}
