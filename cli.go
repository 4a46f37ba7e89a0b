package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const historyFile = ".wizuallc_history"

func showUsage() {
	fmt.Fprintf(os.Stderr, `wizuallc - the WizuAll vector scripting compiler (emits C)

Usage:
    wizuallc <command> [arguments]

Commands:
    build <file>    Compile a .wzl file to a C source file
    run <file>      Compile a .wzl file, build it with cc, and execute it
    check <file>    Parse and semantically check a .wzl file
    ast <file>      Print the parsed AST as an S-expression
    repl            Translate statements interactively
    help            Show this help message

Examples:
    wizuallc build -o out.c -runtime examples/plot.wzl
    wizuallc run examples/average.wzl
    wizuallc check myscript.wzl
    wizuallc ast myscript.wzl

Use "wizuallc <command> -h" for more information about a command.
`)
}

// compileSource parses and generates one program. The returned bytes
// are the generated C file; they are present even when err reports
// semantic errors, since partial output is kept by design.
func compileSource(source []byte, verbose bool) ([]byte, error) {
	input := append(source, '\x00')
	Init(input)
	NextToken()

	symtab := NewSymbolTable()
	parser := NewParser(symtab)
	root := parser.ParseProgram()
	if parser.Errors.HasErrors() {
		return nil, fmt.Errorf("parse errors:\n%s", parser.Errors.String())
	}

	if verbose {
		fmt.Printf("AST: %s\n", ToSExpr(root))
	}

	gen := NewGenerator(symtab)
	var out bytes.Buffer
	err := gen.Generate(root, &out)
	return out.Bytes(), err
}

func readSourceFile(filename string) []byte {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return source
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <filename>.c)")
	withRuntime := fs.Bool("runtime", false, "Also write the plotting runtime files beside the output")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wizuallc build [-o output] [-runtime] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .wzl file to a C source file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".wzl") + ".c"
	}

	if *verbose {
		fmt.Printf("Compiling %s to %s...\n", filename, outputFile)
	}

	cSource, err := compileSource(readSourceFile(filename), *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		if len(cSource) > 0 {
			// Keep the partial output on disk for inspection.
			_ = os.WriteFile(outputFile, cSource, 0644)
		}
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, cSource, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	if *withRuntime {
		if err := WriteRuntimeAssets(filepath.Dir(outputFile)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing runtime files: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generated %s (%d bytes)\n", outputFile, len(cSource))
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	cc := fs.String("cc", "cc", "C compiler to build the generated program with")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wizuallc run [-v] [-cc compiler] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .wzl file, build it with a C compiler, and execute it\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	cSource, err := compileSource(readSourceFile(filename), *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	workDir, err := os.MkdirTemp("", "wizuallc-run-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating work directory: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(workDir)

	cFile := filepath.Join(workDir, "program.c")
	if err := os.WriteFile(cFile, cSource, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", cFile, err)
		os.Exit(1)
	}
	if err := WriteRuntimeAssets(workDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing runtime files: %v\n", err)
		os.Exit(1)
	}

	binary := filepath.Join(workDir, "program")
	if *verbose {
		fmt.Printf("Building with %s...\n", *cc)
	}
	build := exec.Command(*cc, "-o", binary, cFile, filepath.Join(workDir, "runtime_viz.c"), "-lm")
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "C build failed: %v\n%s", err, out)
		os.Exit(1)
	}

	// Run inside workDir so plot.gp and plot_data.txt resolve.
	cmd := exec.Command(binary)
	cmd.Dir = workDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wizuallc check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and semantically check a .wzl file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	if _, err := compileSource(readSourceFile(filename), *verbose); err != nil {
		fmt.Printf("Errors in %s:\n%v\n", filename, err)
		os.Exit(1)
	}
	fmt.Printf("%s: no errors found\n", filename)
}

func astCommand(args []string) {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wizuallc ast <file>\n")
		fmt.Fprintf(os.Stderr, "Print the parsed AST as an S-expression\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	input := append(readSourceFile(filename), '\x00')
	Init(input)
	NextToken()
	parser := NewParser(NewSymbolTable())
	root := parser.ParseProgram()
	if parser.Errors.HasErrors() {
		fmt.Fprintf(os.Stderr, "Parse errors in %s:\n%s\n", filename, parser.Errors.String())
		os.Exit(1)
	}
	fmt.Println(ToSExpr(root))
}

// replCommand translates statements interactively: each line is added
// to the accumulated program, which is recompiled as a whole so symbol
// kinds and diagnostics stay consistent with batch compilation.
func replCommand(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wizuallc repl\n")
		fmt.Fprintf(os.Stderr, "Translate statements interactively. Commands: :gen, :ast, :reset, :quit\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	fmt.Println("WizuAll interactive translator. Type :quit to exit, :gen to show the generated C.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var program strings.Builder
	for {
		line, err := ln.Prompt("wzl> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		trimmed := strings.TrimSpace(line)
		switch trimmed {
		case "":
			continue
		case ":quit":
			return
		case ":reset":
			program.Reset()
			fmt.Println("program cleared")
			continue
		case ":gen":
			out, err := compileSource([]byte(program.String()), false)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Stdout.Write(out)
			continue
		case ":ast":
			input := append([]byte(program.String()), '\x00')
			Init(input)
			NextToken()
			parser := NewParser(NewSymbolTable())
			fmt.Println(ToSExpr(parser.ParseProgram()))
			continue
		}

		candidate := program.String() + trimmed + "\n"
		if _, err := compileSource([]byte(candidate), false); err != nil {
			fmt.Fprintln(os.Stderr, err)
			// Parse errors drop the line; semantic errors keep it so the
			// user sees the same sticky failure a batch compile reports.
			if strings.Contains(err.Error(), "parse errors") {
				continue
			}
		}
		program.Reset()
		program.WriteString(candidate)
		ln.AppendHistory(trimmed)
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		buildCommand(args)
	case "run":
		runCommand(args)
	case "check":
		checkCommand(args)
	case "ast":
		astCommand(args)
	case "repl":
		replCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
