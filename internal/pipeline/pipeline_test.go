package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/yeager/tp-lint/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *model.LintRun) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *model.LintRun) error {
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

// quietLogger discards log output so tests stay silent.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
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
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(
			&mockStep{name: "first"},
			&mockStep{name: "second"},
			&mockStep{name: "third"},
		)

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

		p := New(WithLogger(quietLogger()))
		for _, name := range []string{"fetch", "download", "lint"} {
			p.AddStep(&mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *model.LintRun) error {
					executionOrder = append(executionOrder, name)
					return nil
				},
			})
		}

		run := model.NewLintRun("sv")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"fetch", "download", "lint"}
		if len(executionOrder) != len(expected) {
			t.Fatalf("executed %d steps, expected %d", len(executionOrder), len(expected))
		}
		for i, name := range expected {
			if executionOrder[i] != name {
				t.Errorf("step %d: got %q, expected %q", i, executionOrder[i], name)
			}
		}
		if len(run.PerformedSteps) != 3 {
			t.Errorf("PerformedSteps = %v, expected 3 entries", run.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("fetch failed")
		second := &mockStep{name: "second"}

		p := New(WithLogger(quietLogger()))
		p.AddStep(&mockStep{
			name: "first",
			doFunc: func(_ context.Context, _ *model.LintRun) error {
				return wantErr
			},
		})
		p.AddStep(second)

		run := model.NewLintRun("sv")
		err := p.Execute(context.Background(), run)

		if !errors.Is(err, wantErr) {
			t.Errorf("Execute() error = %v, expected %v", err, wantErr)
		}
		if second.callCount != 0 {
			t.Error("second step should not have run")
		}
		if run.Err == nil || run.ErrorMessage == "" {
			t.Error("error should be recorded in the run")
		}
	})

	t.Run("continues after error with WithContinueOnError", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "second"}

		p := New(WithLogger(quietLogger()), WithContinueOnError(true))
		p.AddStep(&mockStep{
			name: "first",
			doFunc: func(_ context.Context, _ *model.LintRun) error {
				return errors.New("first failed")
			},
		})
		p.AddStep(second)

		run := model.NewLintRun("sv")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.callCount != 1 {
			t.Error("second step should have run")
		}
		if run.Err == nil {
			t.Error("error should still be recorded in the run")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New(WithLogger(quietLogger()))
		p.AddStep(step)

		run := model.NewLintRun("sv")
		err := p.Execute(ctx, run)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("Execute() error = %v, expected context.Canceled", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have run after cancellation")
		}
		if run.Err == nil {
			t.Error("cancellation should be recorded in the run")
		}
	})
}
