package harness

import (
	"context"
	"strings"
	"time"

	pb "github.com/nimec77/hello-world-grpc/protos"
)

// maxValidNameLength mirrors the server's validation limit; the scenario
// uses it to predict which inputs the service must reject.
const maxValidNameLength = 100

// ErrorCase is the record of one validation probe.
type ErrorCase struct {
	Description string  `json:"description"`
	Input       string  `json:"input"`
	Success     bool    `json:"success"`
	Response    string  `json:"response"`
	DurationMs  float64 `json:"duration_ms"`
	Passed      bool    `json:"test_passed"`
}

// ErrorConditionsStats is the aggregate record of the error-conditions
// scenario.
type ErrorConditionsStats struct {
	Cases   int         `json:"test_cases"`
	Passed  int         `json:"passed"`
	Failed  int         `json:"failed"`
	Results []ErrorCase `json:"results"`
}

// RunErrorConditions probes the service's argument validation: empty and
// whitespace-only names and an over-long name must fail, a well-formed name
// must succeed. A case passes when the observed outcome matches the
// validation predicate.
func (h *Harness) RunErrorConditions(ctx context.Context, client pb.GreeterClient) ErrorConditionsStats {
	cases := []struct {
		input       string
		description string
	}{
		{"", "Empty name"},
		{"   ", "Whitespace-only name"},
		{strings.Repeat("a", maxValidNameLength+1), "Name too long (101 chars)"},
		{"Valid Name", "Valid name (should succeed)"},
	}

	agg := ErrorConditionsStats{
		Cases:   len(cases),
		Results: []ErrorCase{},
	}

	for _, tc := range cases {
		res := h.Invoke(ctx, client, tc.input)

		trimmed := strings.TrimSpace(tc.input)
		shouldSucceed := trimmed != "" && len(trimmed) <= maxValidNameLength

		ec := ErrorCase{
			Description: tc.description,
			Input:       tc.input,
			Success:     res.OK,
			Response:    res.Message,
			DurationMs:  float64(res.Duration) / float64(time.Millisecond),
			Passed:      res.OK == shouldSucceed,
		}
		agg.Results = append(agg.Results, ec)
		if ec.Passed {
			agg.Passed++
		} else {
			agg.Failed++
		}
	}

	return agg
}
