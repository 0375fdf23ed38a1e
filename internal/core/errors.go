package core

import "errors"

// Service-level errors. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("User with this email already exists")
	ErrUsernameTaken      = errors.New("User with this username already exists")
	ErrForbidden          = errors.New("access to another user's data is forbidden")
	ErrAnalysisIncomplete = errors.New("problem analysis not found or incomplete")
	ErrAnalysisGeneration = errors.New("failed to analyze problem")
	ErrSolutionGeneration = errors.New("failed to generate DSB solution")
	ErrOptimization       = errors.New("failed to optimize solution")
)
