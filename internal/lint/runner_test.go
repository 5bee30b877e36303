package lint

import (
	"context"
	"errors"
	"slices"
	"testing"
)

// fakeExec records invocations and replays canned responses keyed by the
// last argument (the path being linted).
type fakeExec struct {
	calls     [][]string
	envs      [][]string
	responses map[string]fakeResponse
}

type fakeResponse struct {
	stdout   string
	exitCode int
	err      error
}

func (f *fakeExec) run(_ context.Context, _ string, args, env []string) (string, string, int, error) {
	f.calls = append(f.calls, args)
	f.envs = append(f.envs, env)
	resp := f.responses[args[len(args)-1]]
	return resp.stdout, "", resp.exitCode, resp.err
}

func TestRunnerAvailable(t *testing.T) {
	t.Parallel()

	t.Run("zero exit means available", func(t *testing.T) {
		t.Parallel()

		fake := &fakeExec{responses: map[string]fakeResponse{"--version": {}}}
		r := NewRunner(withExec(fake.run))
		if !r.Available(context.Background()) {
			t.Error("expected checker to be available")
		}
	})

	t.Run("missing binary means unavailable", func(t *testing.T) {
		t.Parallel()

		fake := &fakeExec{responses: map[string]fakeResponse{
			"--version": {err: ErrNotInstalled},
		}}
		r := NewRunner(withExec(fake.run))
		if r.Available(context.Background()) {
			t.Error("expected checker to be unavailable")
		}
	})
}

func TestRunnerRunDir(t *testing.T) {
	t.Parallel()

	t.Run("passes directory and strict flag through", func(t *testing.T) {
		t.Parallel()

		fake := &fakeExec{responses: map[string]fakeResponse{
			"/tmp/po": {stdout: "2 issues found", exitCode: 1},
		}}
		r := NewRunner(withExec(fake.run))

		result, err := r.RunDir(context.Background(), "/tmp/po", "sv", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ExitCode != 1 || result.Stdout != "2 issues found" {
			t.Errorf("result = %+v, want exit 1 with output", result)
		}

		wantArgs := []string{"--strict", "/tmp/po"}
		if !slices.Equal(fake.calls[0], wantArgs) {
			t.Errorf("args = %v, want %v", fake.calls[0], wantArgs)
		}
		if !slices.Contains(fake.envs[0], "LC_ALL=sv.UTF-8") {
			t.Errorf("env = %v, want LC_ALL=sv.UTF-8", fake.envs[0])
		}
	})

	t.Run("missing binary surfaces ErrNotInstalled", func(t *testing.T) {
		t.Parallel()

		fake := &fakeExec{responses: map[string]fakeResponse{
			"/tmp/po": {err: ErrNotInstalled},
		}}
		r := NewRunner(withExec(fake.run))

		if _, err := r.RunDir(context.Background(), "/tmp/po", "sv", false); !errors.Is(err, ErrNotInstalled) {
			t.Errorf("expected ErrNotInstalled, got %v", err)
		}
	})
}

func TestRunnerRunFiles(t *testing.T) {
	t.Parallel()

	fake := &fakeExec{responses: map[string]fakeResponse{
		"/tmp/po/coreutils-9.1.sv.po": {
			stdout: `{"issues":[{"rule":"fuzzy","severity":"warning"},{"rule":"format-mismatch","severity":"error","line":42}]}`,
		},
		"/tmp/po/grep-3.8.sv.po": {stdout: "not json at all"},
		"/tmp/po/sed-4.9.sv.po":  {stdout: "   "},
	}}
	r := NewRunner(withExec(fake.run))

	files := []string{
		"/tmp/po/coreutils-9.1.sv.po",
		"/tmp/po/grep-3.8.sv.po",
		"/tmp/po/sed-4.9.sv.po",
	}
	results, err := r.RunFiles(context.Background(), files, "sv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("parses JSON findings per file", func(t *testing.T) {
		result, ok := results["coreutils-9.1.sv.po"]
		if !ok {
			t.Fatal("missing result for coreutils")
		}
		if len(result.Issues) != 2 {
			t.Fatalf("got %d issues, want 2", len(result.Issues))
		}
		errCount, fuzzy, warnings := result.Counts()
		if errCount != 1 || fuzzy != 1 || warnings != 0 {
			t.Errorf("counts = (%d, %d, %d), want (1, 1, 0)", errCount, fuzzy, warnings)
		}
	})

	t.Run("unparseable and empty output are skipped", func(t *testing.T) {
		if _, ok := results["grep-3.8.sv.po"]; ok {
			t.Error("non-JSON output should be skipped")
		}
		if _, ok := results["sed-4.9.sv.po"]; ok {
			t.Error("empty output should be skipped")
		}
	})

	t.Run("requests JSON format per invocation", func(t *testing.T) {
		want := []string{"--format", "json", "/tmp/po/coreutils-9.1.sv.po"}
		if !slices.Equal(fake.calls[0], want) {
			t.Errorf("args = %v, want %v", fake.calls[0], want)
		}
	})
}
