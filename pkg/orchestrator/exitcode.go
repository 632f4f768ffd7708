package orchestrator

import (
	"errors"

	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/render"
)

// Exit codes reported to callers of the pipeline.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitSchema   = 4
	ExitRender   = 5
)

// ExitCode classifies err into a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var notFound *bank.NotFoundError
	if errors.As(err, &notFound) {
		return ExitNotFound
	}
	var schemaErr *bank.SchemaError
	if errors.As(err, &schemaErr) {
		return ExitSchema
	}
	var renderErr *render.RenderError
	if errors.As(err, &renderErr) {
		return ExitRender
	}
	return ExitFailure
}
