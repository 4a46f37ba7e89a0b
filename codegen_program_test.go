package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestGenerateProgramLayout(t *testing.T) {
	out, err := generateSource(t, "x = 1;\nv = [2, 3];")
	be.Err(t, err, nil)

	sections := []string{
		"#include <stdio.h>",
		"typedef struct {",
		"int main(void) {",
		"/* --- Variable Declarations --- */",
		"/* --- Program Statements --- */",
		"/* --- Cleanup --- */",
		"return 0;",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		be.True(t, idx > last)
		last = idx
	}
}

func TestGenerateDeclaresSymbolsMostRecentFirst(t *testing.T) {
	out, err := generateSource(t, "a = 1;\nb = 2;")
	be.Err(t, err, nil)

	declA := strings.Index(out, "double a = 0.0;")
	declB := strings.Index(out, "double b = 0.0;")
	be.True(t, declA >= 0)
	be.True(t, declB >= 0)
	be.True(t, declB < declA)
}

func TestGenerateDeclaresTemps(t *testing.T) {
	out, err := generateSource(t, "x = 1;\ny = x + 2;\nv = [3];")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "double _ts0 = 0.0;"))
	be.True(t, strings.Contains(out, "Vector _tv1 = { NULL, 0 };"))
}

func TestGenerateCleanupFreesVectors(t *testing.T) {
	out, err := generateSource(t, "x = 1;\nv = [2, 3];")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "vector_free_data(&v);"))
	be.True(t, strings.Contains(out, "vector_free_data(&_tv0);"))
	be.Equal(t, false, strings.Contains(out, "vector_free_data(&x);"))
}

func TestGenerateEmptyProgram(t *testing.T) {
	out, err := generateSource(t, "")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "int main(void) {"))
	be.True(t, strings.Contains(out, "return 0;"))
}

func TestGenerateDeclaresPlottingHook(t *testing.T) {
	out, err := generateSource(t, "x = 1;")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "extern void viz_scatter_plot(double *x_data, size_t x_size, double *y_data, size_t y_size);"))
}

func TestGenerateIsIdempotent(t *testing.T) {
	src := "a = [1, 2, 3];\nb = a + 5;\nn = 2;\nwhile n { n = n - 1; }"
	root, st, p := parseSource(src)
	be.Equal(t, false, p.Errors.HasErrors())

	g := NewGenerator(st)
	var first, second bytes.Buffer
	be.Err(t, g.Generate(root, &first), nil)
	be.Err(t, g.Generate(root, &second), nil)
	be.Equal(t, first.String(), second.String())

	// A fresh generator over the same tree agrees too.
	var third bytes.Buffer
	be.Err(t, NewGenerator(st).Generate(root, &third), nil)
	be.Equal(t, first.String(), third.String())
}

func TestGenerateElementwiseAddProgram(t *testing.T) {
	out, err := generateSource(t, "a = [1, 2, 3];\nb = [4, 5, 6];\nc = a + b;")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "_tv2 = vector_add(a, b);"))
	be.True(t, strings.Contains(out, "vector_assign(&c, _tv2);"))
	be.True(t, strings.Contains(out, "Vector c = { NULL, 0 };"))
}

func TestGenerateBroadcastProgram(t *testing.T) {
	out, err := generateSource(t, "x = 5;\ny = [1, 2];\nz = x + y;")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "_tv1 = vector_add_scalar(y, x);"))
	be.True(t, strings.Contains(out, "vector_assign(&z, _tv1);"))
}

func TestGenerateMixedSubProgramFails(t *testing.T) {
	out, err := generateSource(t, "x = 5;\ny = [1, 2];\nz = x - y;")
	be.True(t, err != nil)
	be.Equal(t, false, strings.Contains(out, "= vector_sub("))
	// Partial output is still a complete C translation unit.
	be.True(t, strings.Contains(out, "int main(void) {"))
	be.True(t, strings.Contains(out, "return 0;"))
}

func TestGenerateReadAndPlotProgram(t *testing.T) {
	src := "xs = read_vector();\nys = xs * xs;\nscatter_plot(xs, ys);"
	out, err := generateSource(t, src)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "_tv0 = runtime_read_vector();"))
	be.True(t, strings.Contains(out, "_tv1 = vector_mul(xs, xs);"))
	be.True(t, strings.Contains(out, "viz_scatter_plot(xs.data, xs.size, ys.data, ys.size);"))
}

func TestGenerateLoopAccumulationProgram(t *testing.T) {
	src := "total = 0;\nn = 5;\nwhile n {\n    total = total + n;\n    n = n - 1;\n}"
	out, err := generateSource(t, src)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "for (;;) {"))
	be.True(t, strings.Contains(out, "if (!((n) != 0.0)) break;"))
	be.True(t, strings.Contains(out, "total = _ts0;"))
	// No vectors anywhere in this one.
	be.Equal(t, false, strings.Contains(out, "Vector _tv"))
}
