package scrape

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yeager/tp-lint/internal/model"
)

// matrixFixture is a minimal but structurally faithful matrix page: the
// first two columns are reserved (domain name, "Pct" label) and the last
// column repeats the per-domain translation count.
const matrixFixture = `
<table>
<thead>
<tr>
<th></th><th>Pct</th>
<th><a href="../team/en.html">en</a></th>
<th><a href="../team/fr.html">fr</a></th>
<th>Count</th>
</tr>
</thead>
<tbody>
<tr><td></td><td>Pct</td><td>87%</td><td>42%</td><td></td></tr>
<tr>
<td><a href="../domain/coreutils.html">coreutils</a></td>
<td></td><td>100%</td><td>&nbsp;</td><td>1</td>
</tr>
<tr>
<td><a href="../domain/findutils.html">findutils</a></td>
<td></td><td>95%</td><td>60%</td><td>2</td>
</tr>
</tbody>
</table>`

// TestMatrix tests the coverage matrix extractor against a full page.
func TestMatrix(t *testing.T) {
	t.Parallel()

	m, err := Matrix(strings.NewReader(matrixFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("captures header languages in column order", func(t *testing.T) {
		want := []string{"en", "fr"}
		if !reflect.DeepEqual(m.Languages, want) {
			t.Errorf("languages = %v, want %v", m.Languages, want)
		}
	})

	t.Run("summary row aligns cells at fixed offset", func(t *testing.T) {
		want := map[string]int{"en": 87, "fr": 42}
		if !reflect.DeepEqual(m.LangPercentages, want) {
			t.Errorf("lang percentages = %v, want %v", m.LangPercentages, want)
		}
	})

	t.Run("skips placeholder cells instead of storing zero", func(t *testing.T) {
		want := map[string]int{"en": 100}
		if !reflect.DeepEqual(m.Domains["coreutils"], want) {
			t.Errorf("coreutils = %v, want %v", m.Domains["coreutils"], want)
		}
		if m.DomainCounts["coreutils"] != 1 {
			t.Errorf("coreutils count = %d, want 1", m.DomainCounts["coreutils"])
		}
	})

	t.Run("stores all parseable domain cells", func(t *testing.T) {
		want := map[string]int{"en": 95, "fr": 60}
		if !reflect.DeepEqual(m.Domains["findutils"], want) {
			t.Errorf("findutils = %v, want %v", m.Domains["findutils"], want)
		}
	})

	t.Run("domain keys are matrix languages", func(t *testing.T) {
		known := make(map[string]bool)
		for _, lang := range m.Languages {
			known[lang] = true
		}
		for domain, langs := range m.Domains {
			for code := range langs {
				if !known[code] {
					t.Errorf("domain %s has unknown language %s", domain, code)
				}
			}
		}
		if len(m.LangPercentages) > len(m.Languages) {
			t.Errorf("lang percentages has %d entries, more than %d languages",
				len(m.LangPercentages), len(m.Languages))
		}
		for code := range m.LangPercentages {
			if !known[code] {
				t.Errorf("lang percentages has unknown language %s", code)
			}
		}
	})
}

// TestMatrixProcessRow tests row processing with synthetic rows, bypassing
// the tokenizer.
func TestMatrixProcessRow(t *testing.T) {
	t.Parallel()

	t.Run("synthetic summary row", func(t *testing.T) {
		t.Parallel()

		x := &matrix{result: model.NewMatrix()}
		x.result.Languages = []string{"en", "fr"}
		x.currentRow = []string{"", "Pct", "87%", "42%"}
		x.processRow()

		want := map[string]int{"en": 87, "fr": 42}
		if !reflect.DeepEqual(x.result.LangPercentages, want) {
			t.Errorf("lang percentages = %v, want %v", x.result.LangPercentages, want)
		}
	})

	t.Run("synthetic domain row with non-breaking space", func(t *testing.T) {
		t.Parallel()

		x := &matrix{result: model.NewMatrix()}
		x.result.Languages = []string{"en", "fr"}
		x.currentDomain = "coreutils"
		x.currentRow = []string{"coreutils", "", "100%", "\u00a0"}
		x.processRow()

		want := map[string]int{"en": 100}
		if !reflect.DeepEqual(x.result.Domains["coreutils"], want) {
			t.Errorf("coreutils = %v, want %v", x.result.Domains["coreutils"], want)
		}
		if x.result.DomainCounts["coreutils"] != 1 {
			t.Errorf("count = %d, want 1", x.result.DomainCounts["coreutils"])
		}
	})

	t.Run("malformed summary cell parses to zero", func(t *testing.T) {
		t.Parallel()

		x := &matrix{result: model.NewMatrix()}
		x.result.Languages = []string{"en", "fr"}
		x.currentRow = []string{"", "Pct", "abc%", "42%"}
		x.processRow()

		if got, ok := x.result.LangPercentages["en"]; !ok || got != 0 {
			t.Errorf("en = %d (present=%v), want 0 present", got, ok)
		}
		if got := x.result.LangPercentages["fr"]; got != 42 {
			t.Errorf("fr = %d, want 42", got)
		}
	})

	t.Run("unparseable domain cell is dropped entirely", func(t *testing.T) {
		t.Parallel()

		x := &matrix{result: model.NewMatrix()}
		x.result.Languages = []string{"en", "fr"}
		x.currentDomain = "grep"
		x.currentRow = []string{"grep", "", "n/a", "42%"}
		x.processRow()

		if _, ok := x.result.Domains["grep"]["en"]; ok {
			t.Error("unparseable cell must not be stored")
		}
		if got := x.result.Domains["grep"]["fr"]; got != 42 {
			t.Errorf("fr = %d, want 42", got)
		}
	})

	t.Run("short row is discarded", func(t *testing.T) {
		t.Parallel()

		x := &matrix{result: model.NewMatrix()}
		x.result.Languages = []string{"en"}
		x.currentDomain = "grep"
		x.currentRow = []string{"grep", "100%"}
		x.processRow()

		if len(x.result.Domains) != 0 {
			t.Errorf("expected no domains, got %v", x.result.Domains)
		}
	})

	t.Run("row without domain link is ignored", func(t *testing.T) {
		t.Parallel()

		x := &matrix{result: model.NewMatrix()}
		x.result.Languages = []string{"en"}
		x.currentRow = []string{"something", "", "100%"}
		x.processRow()

		if len(x.result.Domains) != 0 {
			t.Errorf("expected no domains, got %v", x.result.Domains)
		}
	})

	t.Run("missing trailing count falls back to running count", func(t *testing.T) {
		t.Parallel()

		x := &matrix{result: model.NewMatrix()}
		x.result.Languages = []string{"en", "fr"}
		x.currentDomain = "sed"
		x.currentRow = []string{"sed", "", "100%", "50%"}
		x.processRow()

		if got := x.result.DomainCounts["sed"]; got != 2 {
			t.Errorf("count = %d, want 2", got)
		}
	})

	t.Run("summary row never records domain data", func(t *testing.T) {
		t.Parallel()

		x := &matrix{result: model.NewMatrix()}
		x.result.Languages = []string{"en"}
		x.currentDomain = "coreutils"
		x.currentRow = []string{"coreutils", "Pct", "87%"}
		x.processRow()

		if len(x.result.Domains) != 0 {
			t.Errorf("expected no domains from summary row, got %v", x.result.Domains)
		}
	})
}
