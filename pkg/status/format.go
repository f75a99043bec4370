package status

import (
	"fmt"

	"github.com/walteh/magedeploy/pkg/deploy"
)

// Formatter defines how job events and progress should be formatted
type Formatter interface {
	// FormatJobStart formats the line logged when a worker picks a job up
	FormatJobStart(job deploy.Job) string

	// FormatJobResult formats a job's terminal outcome
	FormatJobResult(result deploy.Result) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatJobStart formats a job pickup message with emojis
func (f *DefaultFormatter) FormatJobStart(job deploy.Job) string {
	return fmt.Sprintf("🚀 Deploying %s", job)
}

// FormatJobResult formats a job outcome message with emojis
func (f *DefaultFormatter) FormatJobResult(result deploy.Result) string {
	switch result.Outcome {
	case deploy.OutcomeSucceeded:
		return fmt.Sprintf("✨ Deployed %s (%d files)", result.Job, result.FileCount)
	case deploy.OutcomeDelegated:
		return fmt.Sprintf("🤝 Delegated %s to bin/magento", result.Job)
	case deploy.OutcomeCancelled:
		return fmt.Sprintf("🚫 Cancelled %s", result.Job)
	default:
		return fmt.Sprintf("❌ Failed %s: %v", result.Job, result.Err)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
