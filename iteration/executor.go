/*
   Step driver for iterative computations such as power iteration. The
   executor owns the step counter and runs the caller supplied step function
   surrounded by optional hooks.
*/
package iteration

import "context"

// StepFunc executes a single step of the computation.
type StepFunc func(ctx context.Context, step int) error

// Executor invokes a StepFunc a fixed number of times unless an error occurs
// or the context expires.
type Executor struct {
	stepFn StepFunc
	cb     Hooks
	step   int
}

// Hooks encapsulates a series of hooks that are invoked by an Executor around
// each step. All hooks are optional and will be ignored if not specified.
type Hooks struct {
	// PreStep, if defined, is invoked before running the next step.
	PreStep func(ctx context.Context, step int) error

	// PostStep, if defined, is invoked after running a step.
	PostStep func(ctx context.Context, step int) error
}

// NewExecutor returns an Executor that runs stepFn and the provided hooks.
func NewExecutor(stepFn StepFunc, cb Hooks) *Executor {
	if cb.PreStep == nil {
		cb.PreStep = func(context.Context, int) error { return nil }
	}
	if cb.PostStep == nil {
		cb.PostStep = func(context.Context, int) error { return nil }
	}
	return &Executor{
		stepFn: stepFn,
		cb:     cb,
	}
}

// RunSteps executes numSteps steps unless the context expires or an error
// occurs. Step numbers continue from the previous call.
func (ex *Executor) RunSteps(ctx context.Context, numSteps int) error {
	cb := ex.cb
	for ; numSteps > 0; numSteps-- {
		// check for context cancel before the start of each step
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := cb.PreStep(ctx, ex.step); err != nil {
			return err
		}
		if err := ex.stepFn(ctx, ex.step); err != nil {
			return err
		}
		if err := cb.PostStep(ctx, ex.step); err != nil {
			return err
		}
		ex.step++
	}
	return nil
}
