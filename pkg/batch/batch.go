// Package batch validates many contract documents concurrently.
// Document validations are fully independent, so the runner only
// fans out and collects; results keep input order for reproducible
// summaries regardless of completion order.
package batch

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
	"github.com/NympoBrutty/m-painting-system-m/pkg/lint"
	"github.com/NympoBrutty/m-painting-system-m/pkg/report"
)

// Options configures a batch run.
type Options struct {
	// Threads bounds the number of concurrent validations. Values
	// below 1 are treated as 1.
	Threads int
	Logger  hclog.Logger
	Lint    lint.Options
}

// Run validates every path and returns the collected batch result,
// ordered by input position.
func Run(paths []string, opts Options) *report.Result {
	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	validator := lint.New(opts.Lint)

	logger.Info("validating contracts", "count", len(paths), "threads", threads)

	docs := make([]report.DocumentResult, len(paths))
	guard := make(chan struct{}, threads)
	var wg sync.WaitGroup
	for i, path := range paths {
		guard <- struct{}{} // would block if guard channel is already filled
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			docs[i] = validateOne(path, validator, logger)
			<-guard
		}(i, path)
	}
	wg.Wait()

	return report.Collect(docs)
}

func validateOne(path string, validator *lint.Validator, logger hclog.Logger) report.DocumentResult {
	c, err := contract.LoadFile(path)
	if err != nil {
		logger.Error("contract unreadable", "path", path, "error", err)
		return report.DocumentResult{Path: path, Err: err}
	}
	rep, err := validator.Run(c)
	if err != nil {
		logger.Error("validation aborted", "path", path, "error", err)
		return report.DocumentResult{Path: path, Err: err}
	}
	logger.Debug("contract validated", "path", path, "score", rep.Score, "findings", len(rep.Findings))
	return report.DocumentResult{Path: path, Report: rep}
}
