// Package compile turns a generated .tex deck into a PDF with pdflatex.
package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Binary is the LaTeX engine invoked by default.
const Binary = "pdflatex"

// Passes is the number of pdflatex runs; beamer needs two for navigation
// and page references.
const Passes = 2

// ErrBinaryNotFound reports that the engine is not on PATH.
var ErrBinaryNotFound = errors.New("compile: pdflatex not found in PATH")

// Runner executes one engine invocation in dir and returns its combined log.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// execRunner invokes the engine through the system binary.
type execRunner struct {
	binary string
}

func (r execRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	if _, err := exec.LookPath(r.binary); err != nil {
		return "", ErrBinaryNotFound
	}
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%s %s: %w", r.binary, strings.Join(args, " "), err)
	}
	return out.String(), nil
}

// Compiler runs the engine over a deck.
type Compiler struct {
	runner Runner
	passes int
}

// Option customises a Compiler.
type Option func(*Compiler)

// WithRunner replaces the process runner, mainly for tests.
func WithRunner(runner Runner) Option {
	return func(c *Compiler) {
		c.runner = runner
	}
}

// WithBinary selects a different engine executable.
func WithBinary(binary string) Option {
	return func(c *Compiler) {
		c.runner = execRunner{binary: binary}
	}
}

// WithPasses overrides the number of runs.
func WithPasses(passes int) Option {
	return func(c *Compiler) {
		if passes > 0 {
			c.passes = passes
		}
	}
}

// New constructs a Compiler that shells out to pdflatex.
func New(options ...Option) *Compiler {
	c := &Compiler{runner: execRunner{binary: Binary}, passes: Passes}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Error carries the engine log of a failed run.
type Error struct {
	Pass int
	Log  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("compile: pass %d failed: %v", e.Pass, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Compile runs the engine in the directory of texPath and returns the path of
// the produced PDF.
func (c *Compiler) Compile(ctx context.Context, texPath string) (string, error) {
	abs, err := filepath.Abs(texPath)
	if err != nil {
		return "", fmt.Errorf("compile: resolve %s: %w", texPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("compile: %w", err)
	}

	dir, name := filepath.Split(abs)
	args := []string{"-interaction=nonstopmode", "-halt-on-error", name}
	for pass := 1; pass <= c.passes; pass++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		log, err := c.runner.Run(ctx, dir, args...)
		if err != nil {
			if errors.Is(err, ErrBinaryNotFound) {
				return "", err
			}
			return "", &Error{Pass: pass, Log: log, Err: err}
		}
	}

	pdf := strings.TrimSuffix(abs, filepath.Ext(abs)) + ".pdf"
	if _, err := os.Stat(pdf); err != nil {
		return "", fmt.Errorf("compile: expected output %s: %w", pdf, err)
	}
	return pdf, nil
}
