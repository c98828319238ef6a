// Package completion drives text completions across remote model providers.
package completion

import (
	"context"
	"errors"
)

// Result is the outcome of a single provider attempt. Exactly one of Text or
// Err is meaningful: a nil Err means the provider produced usable text.
type Result struct {
	Text string
	Err  error
}

// Success wraps generated text.
func Success(text string) Result {
	return Result{Text: text}
}

// Failure wraps the reason an attempt produced no usable text.
func Failure(err error) Result {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result{Err: err}
}

// OK reports whether the attempt succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Completer issues one completion request against one provider. It never
// retries and never returns a transport or decoding problem other than as a
// Failure result.
type Completer interface {
	Complete(ctx context.Context, providerID, prompt string) Result
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, providerID, prompt string) Result

func (f CompleterFunc) Complete(ctx context.Context, providerID, prompt string) Result {
	return f(ctx, providerID, prompt)
}
