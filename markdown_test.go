package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/wizuall-lang/wizuallc/mdtest"
)

// TestMarkdownSuite runs every test case in testdata/compiler_tests.md
// through the full parse-and-generate pipeline.
func TestMarkdownSuite(t *testing.T) {
	content, err := os.ReadFile("testdata/compiler_tests.md")
	be.Err(t, err, nil)

	cases, err := mdtest.ExtractTestCases(string(content))
	be.Err(t, err, nil)
	be.True(t, len(cases) > 0)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			runMarkdownCase(t, tc)
		})
	}
}

func runMarkdownCase(t *testing.T, tc mdtest.TestCase) {
	t.Helper()

	root, st, p := parseSource(tc.Input)
	defer st.Destroy()
	defer Release(root)

	diagnostics := p.Errors.String()
	var generated string
	if !p.Errors.HasErrors() {
		g := NewGenerator(st)
		var buf bytes.Buffer
		if genErr := g.Generate(root, &buf); genErr != nil {
			diagnostics = genErr.Error()
		}
		generated = buf.String()
	}

	for _, a := range tc.Assertions {
		switch a.Type {
		case mdtest.AssertionAST:
			if p.Errors.HasErrors() {
				t.Fatalf("unexpected parse errors:\n%s", diagnostics)
			}
			be.Equal(t, ToSExpr(root), a.Content)

		case mdtest.AssertionCodegen:
			if diagnostics != "" {
				t.Fatalf("unexpected diagnostics:\n%s", diagnostics)
			}
			for _, line := range strings.Split(a.Content, "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if !strings.Contains(generated, line) {
					t.Errorf("generated C missing %q:\n%s", line, generated)
				}
			}

		case mdtest.AssertionCompileError:
			if diagnostics == "" {
				t.Fatalf("expected diagnostics containing %q, got none", a.Content)
			}
			want := strings.TrimSpace(a.Content)
			if !strings.Contains(diagnostics, want) {
				t.Errorf("diagnostics missing %q:\n%s", want, diagnostics)
			}

		default:
			t.Fatalf("unhandled assertion type %q", a.Type)
		}
	}
}
