// Package corpora runs table tests driven by a directory of test case
// files, comparing each case's rendered outputs against golden files
// that live next to the case. Stale goldens are regenerated by
// re-running the tests with a refresh glob set in the environment.
package corpora

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a directory of test case files and the goldens derived
// from them.
type Corpus struct {
	// Root is the corpus directory, relative to the file of the test
	// that calls Run.
	Root string

	// Refresh names an environment variable. When the variable holds a
	// glob, goldens for the matching cases (paths relative to Root) are
	// rewritten from the test's outputs instead of compared.
	Refresh string

	// Extension is the extension of the case files, without the dot.
	// Files under Root with any other extension are assumed to be
	// goldens and skipped.
	Extension string

	// Outputs are the golden extensions for each case, without the
	// dot. A case file foo.yaml with Outputs [ast, err] has goldens
	// foo.yaml.ast and foo.yaml.err.
	Outputs []string

	// Test runs one case and returns its outputs, one per entry in
	// Outputs. An empty output means the corresponding golden must not
	// exist.
	Test func(t *testing.T, path string, data []byte) []string
}

// Run executes every case in the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	_, caller, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatal("corpora: could not determine calling file")
	}
	root := filepath.Join(filepath.Dir(caller), c.Root)

	refresh := os.Getenv(c.Refresh)
	if refresh != "" && !doublestar.ValidatePattern(refresh) {
		t.Fatalf("corpora: invalid pattern in %s: %q", c.Refresh, refresh)
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, "."+c.Extension) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		t.Run(rel, func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			outputs := c.Test(t, rel, data)
			if len(outputs) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(outputs), len(c.Outputs))
			}
			doRefresh := false
			if refresh != "" {
				doRefresh, _ = doublestar.Match(refresh, filepath.ToSlash(rel))
			}
			for i, ext := range c.Outputs {
				c.check(t, path+"."+ext, outputs[i], doRefresh)
			}
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (c Corpus) check(t *testing.T, golden, got string, refresh bool) {
	if refresh {
		if got == "" {
			if err := os.Remove(golden); err != nil && !os.IsNotExist(err) {
				t.Error(err)
			}
			return
		}
		if err := os.WriteFile(golden, []byte(got), 0o666); err != nil {
			t.Error(err)
		}
		t.Logf("regenerated %s", golden)
		return
	}

	want, err := os.ReadFile(golden)
	if os.IsNotExist(err) {
		if got != "" {
			t.Errorf("missing golden %s; set %s=%s and re-run to create it\ngot:\n%s",
				filepath.Base(golden), c.Refresh, "**", got)
		}
		return
	} else if err != nil {
		t.Fatal(err)
	}
	if got == string(want) {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want)),
		B:        difflib.SplitLines(got),
		FromFile: filepath.Base(golden),
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Errorf("output does not match %s; set %s=** and re-run to regenerate\n%s",
		filepath.Base(golden), c.Refresh, diff)
}
