package json2beamer

import (
	internalLoader "github.com/goliatone/go-json2beamer/internal/bank/loader"
	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/validation"
)

// NewLoader constructs a bank loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...bank.LoaderOption) bank.Loader {
	cfg := bank.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewValidator constructs the default question validator.
func NewValidator(options ...validation.Option) validation.QuestionValidator {
	return validation.New(options...)
}
