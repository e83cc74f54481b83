package pipeline

import (
	"context"
	"errors"
	"testing"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		step := &mockStep{name: "test-step"}

		p.AddStep(step)

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("adds multiple steps with AddSteps", func(t *testing.T) {
		t.Parallel()

		p := New()
		step1 := &mockStep{name: "step-1"}
		step2 := &mockStep{name: "step-2"}
		step3 := &mockStep{name: "step-3"}

		p.AddSteps(step1, step2, step3)

		if p.StepCount() != 3 {
			t.Errorf("expected 3 steps, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "first"})
		p.AddStep(&mockStep{name: "second"})
		p.AddStep(&mockStep{name: "third"})

		names := p.StepNames()

		expected := []string{"first", "second", "third"}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)

		p := New()
		for _, name := range []string{"first", "second", "third"} {
			p.AddStep(&mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *Run) error {
					executionOrder = append(executionOrder, name)
					return nil
				},
			})
		}

		run := NewRun("article.json")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}

		expected := []string{"first", "second", "third"}
		if len(executionOrder) != len(expected) {
			t.Fatalf("executed %d steps, expected %d", len(executionOrder), len(expected))
		}
		for i, name := range expected {
			if executionOrder[i] != name {
				t.Errorf("step %d: executed %q, expected %q", i, executionOrder[i], name)
			}
		}
	})

	t.Run("records performed steps on the run", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "a"}, &mockStep{name: "b"})

		run := NewRun("article.json")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}

		if len(run.PerformedSteps) != 2 {
			t.Fatalf("PerformedSteps = %v, expected 2 entries", run.PerformedSteps)
		}
		if run.PerformedSteps[0] != "a" || run.PerformedSteps[1] != "b" {
			t.Errorf("PerformedSteps = %v, expected [a b]", run.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("step failed")
		after := &mockStep{name: "after"}

		p := New()
		p.AddStep(&mockStep{
			name: "failing",
			doFunc: func(_ context.Context, _ *Run) error {
				return stepErr
			},
		})
		p.AddStep(after)

		run := NewRun("article.json")
		err := p.Execute(context.Background(), run)

		if !errors.Is(err, stepErr) {
			t.Errorf("Execute returned %v, expected the step error", err)
		}
		if after.callCount != 0 {
			t.Error("steps after a failure should not run")
		}
		if !errors.Is(run.Err, stepErr) {
			t.Error("run should record the step error")
		}
		if run.ErrorMessage != stepErr.Error() {
			t.Errorf("ErrorMessage = %q, expected %q", run.ErrorMessage, stepErr.Error())
		}
	})

	t.Run("continues after error when configured", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("step failed")
		after := &mockStep{name: "after"}

		p := New(WithContinueOnError(true))
		p.AddStep(&mockStep{
			name: "failing",
			doFunc: func(_ context.Context, _ *Run) error {
				return stepErr
			},
		})
		p.AddStep(after)

		run := NewRun("article.json")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute returned error with continueOnError: %v", err)
		}

		if after.callCount != 1 {
			t.Error("subsequent steps should run with continueOnError")
		}
		if !errors.Is(run.Err, stepErr) {
			t.Error("run should still record the step error")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "never-runs"}
		p := New()
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		run := NewRun("article.json")
		err := p.Execute(ctx, run)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("Execute returned %v, expected context.Canceled", err)
		}
		if step.callCount != 0 {
			t.Error("no step should run after cancellation")
		}
	})
}
