package llm

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"
)

var (
	//go:embed demodata/analysis.json
	demoAnalysis string
	//go:embed demodata/solution.json
	demoSolution string
	//go:embed demodata/optimization.json
	demoOptimization string
)

// DemoClient answers every request with canned pharmaceutical CMO data. It
// lets the whole flow run without provider credentials.
type DemoClient struct {
	logger *zap.Logger
}

// NewDemoClient creates the canned-data provider.
func NewDemoClient(logger *zap.Logger) *DemoClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DemoClient{logger: logger}
}

func (c *DemoClient) Complete(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrapContextError(ctx, err)
	}
	c.logger.Debug("Serving demo completion", zap.String("task", string(req.Task)))

	switch req.Task {
	case TaskAnalysis:
		return demoAnalysis, nil
	case TaskSolution:
		return demoSolution, nil
	case TaskOptimization:
		return demoOptimization, nil
	default:
		return "", fmt.Errorf("demo provider has no data for task %q", req.Task)
	}
}

var _ Client = (*DemoClient)(nil)
