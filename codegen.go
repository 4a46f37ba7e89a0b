package main

import (
	"bytes"
	"fmt"
	"io"
)

// exprResult is what generating one expression yields: the C fragment
// that names or computes the value, the kind it resolved to, and
// whether the fragment is transient text. A non-transient fragment is
// the name of a declared temporary variable; callers must treat it as a
// variable reference, not as throwaway text.
type exprResult struct {
	code      string
	kind      SymbolKind
	transient bool
}

// Generator translates one AST into a complete C source file.
//
// Statements are staged into a buffer while temporary allocations are
// recorded; final assembly then declares exactly the temporaries that
// were used and frees exactly the vector temporaries that exist. The
// temp pool therefore has no fixed ceiling.
//
// A Generator is single-use state but Generate resets it, so repeated
// runs over the same inputs produce byte-identical output.
type Generator struct {
	symtab *SymbolTable
	body   bytes.Buffer

	tempCounter int
	scalarTemps []string
	vectorTemps []string

	Errors ErrorCollection
}

func NewGenerator(st *SymbolTable) *Generator {
	return &Generator{symtab: st}
}

// runtimeHelpers is the vector runtime emitted verbatim at the top of
// every generated program: the Vector struct, lifetime management,
// elementwise arithmetic, scalar broadcast add, and the interactive
// vector reader.
const runtimeHelpers = `/* --- Runtime Helper Functions --- */
typedef struct {
    double* data;
    size_t size;
} Vector;

/* Creates a vector (allocates data). Caller must free using vector_free_data. */
Vector vector_create(size_t size) {
    Vector v;
    v.size = size;
    if (size > 0) {
        v.data = (double*)malloc(size * sizeof(double));
        if (!v.data) { perror("vector_create malloc failed"); exit(1); }
    } else {
        v.data = NULL;
    }
    return v;
}

/* Frees the data array within a vector struct. */
void vector_free_data(Vector *v) {
    if (v && v->data) {
        free(v->data);
        v->data = NULL;
        v->size = 0;
    }
}

/* Assigns vector src to dst (deep copy). Frees existing dst data. */
void vector_assign(Vector *dst, const Vector src) {
    vector_free_data(dst);
    dst->size = src.size;
    if (src.size > 0 && src.data) {
        dst->data = (double*)malloc(src.size * sizeof(double));
        if (!dst->data) { perror("vector_assign malloc failed"); exit(1); }
        memcpy(dst->data, src.data, src.size * sizeof(double));
    } else {
        dst->data = NULL;
    }
}

/* Adds two vectors element-wise. Creates a new result vector. */
Vector vector_add(Vector v1, Vector v2) {
    if (v1.size != v2.size) { fprintf(stderr, "Runtime Error: Vector size mismatch for add (%ld != %ld)\n", (long)v1.size, (long)v2.size); exit(1); }
    Vector result = vector_create(v1.size);
    for (size_t i = 0; i < result.size; ++i) {
        result.data[i] = v1.data[i] + v2.data[i];
    }
    return result;
}

/* Subtracts v2 from v1 element-wise. Creates a new result vector. */
Vector vector_sub(Vector v1, Vector v2) {
    if (v1.size != v2.size) { fprintf(stderr, "Runtime Error: Vector size mismatch for sub (%ld != %ld)\n", (long)v1.size, (long)v2.size); exit(1); }
    Vector result = vector_create(v1.size);
    for (size_t i = 0; i < result.size; ++i) {
        result.data[i] = v1.data[i] - v2.data[i];
    }
    return result;
}

/* Multiplies two vectors element-wise. Creates a new result vector. */
Vector vector_mul(Vector v1, Vector v2) {
    if (v1.size != v2.size) { fprintf(stderr, "Runtime Error: Vector size mismatch for mul (%ld != %ld)\n", (long)v1.size, (long)v2.size); exit(1); }
    Vector result = vector_create(v1.size);
    for (size_t i = 0; i < result.size; ++i) {
        result.data[i] = v1.data[i] * v2.data[i];
    }
    return result;
}

/* Divides v1 by v2 element-wise. Checks each divisor for zero. */
Vector vector_div(Vector v1, Vector v2) {
    if (v1.size != v2.size) { fprintf(stderr, "Runtime Error: Vector size mismatch for div (%ld != %ld)\n", (long)v1.size, (long)v2.size); exit(1); }
    Vector result = vector_create(v1.size);
    for (size_t i = 0; i < result.size; ++i) {
        if (v2.data[i] == 0.0) { fprintf(stderr, "Runtime Error: Division by zero in vector division at index %ld\n", (long)i); exit(1); }
        result.data[i] = v1.data[i] / v2.data[i];
    }
    return result;
}

/* Adds scalar to each element of a vector. Creates a new result vector. */
Vector vector_add_scalar(Vector v, double s) {
    Vector result = vector_create(v.size);
    for (size_t i = 0; i < result.size; ++i) {
        result.data[i] = v.data[i] + s;
    }
    return result;
}

/* Reads a vector (space-separated doubles) from stdin until newline. */
Vector runtime_read_vector() {
    Vector v = vector_create(0);
    double num;
    size_t capacity = 0;
    printf(">>> Enter vector elements separated by spaces, then press Enter:\n");
    int status;
    while ((status = scanf("%lf", &num)) == 1) {
        if (v.size >= capacity) {
            capacity = (capacity == 0) ? 8 : capacity * 2;
            double* new_data = (double*)realloc(v.data, capacity * sizeof(double));
            if (!new_data) { perror("read_vector realloc failed"); vector_free_data(&v); exit(1); }
            v.data = new_data;
        }
        v.data[v.size++] = num;
        int next_char = getchar();
        if (next_char == '\n' || next_char == EOF) { break; }
        ungetc(next_char, stdin);
    }
    if (status != 1 && v.size == 0) {
        fprintf(stderr, "Runtime Error: Invalid input - expected numbers.\n");
    }
    printf("<<< Read %ld elements.\n", (long)v.size);
    return v;
}
/* --- End Runtime Helper Functions --- */

/* External plotting entry point (see runtime/runtime_viz.c). */
extern void viz_scatter_plot(double *x_data, size_t x_size, double *y_data, size_t y_size);
`

// emit writes one staged statement line at the given indent level.
func (g *Generator) emit(indentLevel int, format string, args ...any) {
	for i := 0; i < indentLevel; i++ {
		g.body.WriteString("    ")
	}
	fmt.Fprintf(&g.body, format, args...)
	g.body.WriteByte('\n')
}

func (g *Generator) newScalarTemp() string {
	name := fmt.Sprintf("_ts%d", g.tempCounter)
	g.tempCounter++
	g.scalarTemps = append(g.scalarTemps, name)
	return name
}

func (g *Generator) newVectorTemp() string {
	name := fmt.Sprintf("_tv%d", g.tempCounter)
	g.tempCounter++
	g.vectorTemps = append(g.vectorTemps, name)
	return name
}

func (g *Generator) semanticErrorf(format string, args ...any) {
	g.Errors.Addf("semantic error: "+format, args...)
}

// genExpr translates one expression node and returns the fragment that
// holds its value. Operands of binary expressions are generated left
// then right, before the operation itself is dispatched on the pair of
// resolved kinds.
func (g *Generator) genExpr(node *ASTNode) exprResult {
	if node == nil {
		return exprResult{code: "0.0", kind: KindScalar, transient: true}
	}

	switch node.Kind {
	case NodeNumber:
		return exprResult{code: floatToString(node.Number), kind: KindScalar, transient: true}

	case NodeIdent:
		// Kind is whatever the symbol holds now: a whole-table
		// snapshot, not a per-branch type.
		return exprResult{code: node.Sym.Name, kind: node.Sym.Kind, transient: true}

	case NodeVector:
		return g.genVectorLiteral(node)

	case NodeBinary:
		return g.genBinaryOp(node)

	case NodeUnary:
		operand := g.genExpr(node.Children[0])
		if operand.kind != KindScalar || node.Op != '-' {
			g.semanticErrorf("unsupported unary operation '%c' on %s operand", node.Op, operand.kind)
			return exprResult{code: "0.0", kind: KindScalar, transient: true}
		}
		temp := g.newScalarTemp()
		g.emit(1, "%s = -(%s);", temp, operand.code)
		return exprResult{code: temp, kind: KindScalar}

	case NodeCall:
		return g.genCall(node)

	default:
		g.semanticErrorf("cannot generate expression for node kind %s", node.Kind)
		return exprResult{code: "0.0", kind: KindScalar, transient: true}
	}
}

func (g *Generator) genVectorLiteral(node *ASTNode) exprResult {
	temp := g.newVectorTemp()
	count := len(node.Children)
	if count == 0 {
		g.emit(1, "vector_assign(&%s, (Vector){ NULL, 0 });", temp)
		return exprResult{code: temp, kind: KindVector}
	}

	// Element computations come first so the initializer itself only
	// ever holds value fragments.
	codes := make([]string, count)
	for i, elem := range node.Children {
		elemRes := g.genExpr(elem)
		if elemRes.kind != KindScalar {
			// Degrade to a placeholder but still flag the program.
			g.semanticErrorf("non-scalar element in vector literal")
			codes[i] = "0.0"
			continue
		}
		codes[i] = elemRes.code
	}

	initName := temp + "_init"
	g.emit(1, "double %s[] = {", initName)
	for i, code := range codes {
		sep := ","
		if i == count-1 {
			sep = ""
		}
		g.emit(2, "%s%s", code, sep)
	}
	g.emit(1, "};")
	g.emit(1, "vector_assign(&%s, (Vector){ %s, %d });", temp, initName, count)
	return exprResult{code: temp, kind: KindVector}
}

func (g *Generator) genBinaryOp(node *ASTNode) exprResult {
	left := g.genExpr(node.Children[0])
	right := g.genExpr(node.Children[1])
	op := node.Op

	switch {
	case left.kind == KindScalar && right.kind == KindScalar:
		temp := g.newScalarTemp()
		g.emit(1, "%s = (%s) %c (%s);", temp, left.code, op, right.code)
		return exprResult{code: temp, kind: KindScalar}

	case left.kind == KindVector && right.kind == KindVector:
		var opFunc string
		switch op {
		case '+':
			opFunc = "vector_add"
		case '-':
			opFunc = "vector_sub"
		case '*':
			opFunc = "vector_mul"
		case '/':
			opFunc = "vector_div"
		default:
			g.semanticErrorf("unsupported vector binary operation '%c'", op)
			return exprResult{code: "0.0", kind: KindScalar, transient: true}
		}
		temp := g.newVectorTemp()
		g.emit(1, "%s = %s(%s, %s);", temp, opFunc, left.code, right.code)
		return exprResult{code: temp, kind: KindVector}

	case left.kind == KindVector && right.kind == KindScalar && op == '+':
		temp := g.newVectorTemp()
		g.emit(1, "%s = vector_add_scalar(%s, %s);", temp, left.code, right.code)
		return exprResult{code: temp, kind: KindVector}

	case left.kind == KindScalar && right.kind == KindVector && op == '+':
		// Broadcast add commutes; the helper takes the vector first.
		temp := g.newVectorTemp()
		g.emit(1, "%s = vector_add_scalar(%s, %s);", temp, right.code, left.code)
		return exprResult{code: temp, kind: KindVector}

	case left.kind != right.kind:
		g.semanticErrorf("unsupported binary operation '%c' between scalar and vector", op)
		return exprResult{code: "0.0", kind: KindScalar, transient: true}

	default:
		g.semanticErrorf("type mismatch for binary operation '%c' (lhs: %s, rhs: %s)", op, left.kind, right.kind)
		return exprResult{code: "0.0", kind: KindScalar, transient: true}
	}
}

func (g *Generator) genCall(node *ASTNode) exprResult {
	callee := node.Sym.Name
	argCount := len(node.Children)

	if callee == "read_vector" {
		if argCount != 0 {
			g.semanticErrorf("read_vector() expects 0 arguments, got %d", argCount)
			return exprResult{code: "0.0", kind: KindVector, transient: true}
		}
		temp := g.newVectorTemp()
		g.emit(1, "%s = runtime_read_vector();", temp)
		return exprResult{code: temp, kind: KindVector}
	}

	args := make([]exprResult, argCount)
	for i, arg := range node.Children {
		args[i] = g.genExpr(arg)
	}

	if callee == "scatter_plot" {
		if argCount != 2 || args[0].kind != KindVector || args[1].kind != KindVector {
			g.semanticErrorf("scatter_plot() expects exactly 2 vector arguments")
			return exprResult{code: "0.0", kind: KindScalar, transient: true}
		}
		g.emit(1, "viz_scatter_plot(%s.data, %s.size, %s.data, %s.size);",
			args[0].code, args[0].code, args[1].code, args[1].code)
		// No usable value; the caller discards this placeholder.
		return exprResult{code: "0.0", kind: KindScalar, transient: true}
	}

	// Generic external function: vectors expand to (data, length) pairs,
	// the result is assumed to be a numeric scalar.
	var argList bytes.Buffer
	for i, arg := range args {
		if i > 0 {
			argList.WriteString(", ")
		}
		if arg.kind == KindVector {
			fmt.Fprintf(&argList, "%s.data, %s.size", arg.code, arg.code)
		} else {
			argList.WriteString(arg.code)
		}
	}
	temp := g.newScalarTemp()
	g.emit(1, "%s = %s(%s);", temp, callee, argList.String())
	return exprResult{code: temp, kind: KindScalar}
}

// genStmt translates one statement node. A semantic error abandons the
// current statement's emission; sibling statements are still walked so
// independent errors surface in the same pass.
func (g *Generator) genStmt(node *ASTNode) {
	if node == nil {
		return
	}

	switch node.Kind {
	case NodeBlock:
		g.emit(1, "{")
		for _, stmt := range node.Children {
			g.genStmt(stmt)
		}
		g.emit(1, "}")

	case NodeAssign:
		target := node.Sym
		before := g.Errors.Count()
		res := g.genExpr(node.Children[0])
		if g.Errors.Count() > before {
			return
		}
		if target.Kind != res.kind {
			g.semanticErrorf("type mismatch in assignment to '%s' (target: %s, value: %s)",
				target.Name, target.Kind, res.kind)
			return
		}
		if target.Kind == KindScalar {
			g.emit(1, "%s = %s;", target.Name, res.code)
		} else {
			g.emit(1, "vector_assign(&%s, %s);", target.Name, res.code)
		}

	case NodeIf:
		before := g.Errors.Count()
		cond := g.genExpr(node.Children[0])
		switch {
		case g.Errors.Count() > before:
			g.emit(1, "if (0) { /* invalid condition */")
		case cond.kind != KindScalar:
			g.semanticErrorf("non-scalar condition in if statement")
			g.emit(1, "if (0) { /* invalid condition */")
		default:
			g.emit(1, "if ((%s) != 0.0) {", cond.code)
		}
		g.genStmt(node.Children[1])
		g.emit(1, "}")
		if els := node.ElseBranch(); els != nil {
			g.emit(1, "else {")
			g.genStmt(els)
			g.emit(1, "}")
		}

	case NodeWhile:
		// The condition's computation is re-emitted inside the loop so
		// side-effecting condition temporaries are recomputed before
		// every test, then the loop exits when the value is 0.0.
		g.emit(1, "for (;;) {")
		before := g.Errors.Count()
		cond := g.genExpr(node.Children[0])
		switch {
		case g.Errors.Count() > before:
			g.emit(1, "break; /* invalid loop condition */")
		case cond.kind != KindScalar:
			g.semanticErrorf("non-scalar condition in while statement")
			g.emit(1, "break; /* invalid loop condition */")
		default:
			g.emit(1, "if (!((%s) != 0.0)) break;", cond.code)
		}
		g.genStmt(node.Children[1])
		g.emit(1, "}")

	case NodeNumber, NodeIdent, NodeVector, NodeBinary, NodeUnary, NodeCall:
		// Bare expression statement: value is discarded.
		before := g.Errors.Count()
		res := g.genExpr(node)
		if g.Errors.Count() > before {
			return
		}
		if node.Kind == NodeCall && node.Sym.Name == "scatter_plot" {
			return // no meaningful value to discard
		}
		g.emit(1, "(void)(%s);", res.code)

	default:
		g.semanticErrorf("cannot generate statement for node kind %s", node.Kind)
	}
}

func (g *Generator) reset() {
	g.body.Reset()
	g.tempCounter = 0
	g.scalarTemps = nil
	g.vectorTemps = nil
	g.Errors = ErrorCollection{}
}

// Generate translates the whole program rooted at a statement list and
// writes one compilable C source file to w. A non-nil error reports the
// recorded semantic errors; the written output still exists but is not
// guaranteed correct.
func (g *Generator) Generate(root *ASTNode, w io.Writer) error {
	if root == nil || root.Kind != NodeBlock {
		return fmt.Errorf("error: program root must be a statement list")
	}
	g.reset()

	// Stage statements first; declarations must cover exactly the
	// temporaries the statements use.
	g.genStmt(root)

	var out bytes.Buffer
	out.WriteString("/* Generated by the WizuAll compiler. */\n\n")
	out.WriteString("#include <stdio.h>\n")
	out.WriteString("#include <stdlib.h>\n")
	out.WriteString("#include <string.h>\n")
	out.WriteString("#include <stddef.h>\n")
	out.WriteString("#include <math.h>\n\n")
	out.WriteString(runtimeHelpers)
	out.WriteString("\nint main(void) {\n")

	// Variable declarations: one per live symbol, most-recent-first,
	// then the temporaries this run allocated.
	out.WriteString("    /* --- Variable Declarations --- */\n")
	for _, sym := range g.symtab.Symbols() {
		if sym.Kind == KindScalar {
			fmt.Fprintf(&out, "    double %s = 0.0;\n", sym.Name)
		} else {
			fmt.Fprintf(&out, "    Vector %s = { NULL, 0 };\n", sym.Name)
		}
	}
	for _, temp := range g.scalarTemps {
		fmt.Fprintf(&out, "    double %s = 0.0;\n", temp)
	}
	for _, temp := range g.vectorTemps {
		fmt.Fprintf(&out, "    Vector %s = { NULL, 0 };\n", temp)
	}
	out.WriteString("\n    /* --- Program Statements --- */\n")
	out.Write(g.body.Bytes())

	out.WriteString("\n    /* --- Cleanup --- */\n")
	for _, sym := range g.symtab.Symbols() {
		if sym.Kind == KindVector {
			fmt.Fprintf(&out, "    vector_free_data(&%s);\n", sym.Name)
		}
	}
	for _, temp := range g.vectorTemps {
		fmt.Fprintf(&out, "    vector_free_data(&%s);\n", temp)
	}
	out.WriteString("    return 0;\n}\n")

	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("error: writing output: %w", err)
	}
	return g.Errors.Err()
}
