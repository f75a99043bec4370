package status

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/magedeploy/pkg/deploy"
	"gitlab.com/tozd/go/errors"
)

func TestFormatJobLine(t *testing.T) {
	job := testJob("Hyva", "default", "en_US")

	tests := []struct {
		name       string
		result     deploy.Result
		wantSymbol string
		wantDetail string
	}{
		{
			name:       "succeeded_gets_check",
			result:     deploy.Result{Job: job, Outcome: deploy.OutcomeSucceeded, FileCount: 12},
			wantSymbol: "✓",
			wantDetail: "12 files",
		},
		{
			name:       "delegated_gets_arrows",
			result:     deploy.Result{Job: job, Outcome: deploy.OutcomeDelegated},
			wantSymbol: "⟳",
			wantDetail: "delegated to bin/magento",
		},
		{
			name:       "failed_gets_cross",
			result:     deploy.Result{Job: job, Outcome: deploy.OutcomeFailed, Err: errors.New("boom")},
			wantSymbol: "✗",
			wantDetail: "FAILED: boom",
		},
		{
			name:       "cancelled_gets_dash",
			result:     deploy.Result{Job: job, Outcome: deploy.OutcomeCancelled},
			wantSymbol: "-",
			wantDetail: "cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := FormatJobLine(tt.result)

			assert.True(t, strings.HasPrefix(line, strings.Repeat(" ", lineIndent)), "line should be indented")
			assert.Contains(t, line, tt.wantSymbol)
			assert.Contains(t, line, "frontend/Hyva/default/en_US")
			assert.Contains(t, line, tt.wantDetail)
		})
	}
}

func TestFormatJobLinePadsJobName(t *testing.T) {
	line := FormatJobLine(deploy.Result{
		Job:     testJob("A", "b", "en_US"),
		Outcome: deploy.OutcomeSucceeded,
	})

	// The short job name is padded so details line up across rows.
	assert.Contains(t, line, "frontend/A/b/en_US"+strings.Repeat(" ", jobWidth-len("frontend/A/b/en_US")))
}
