// Bling CLI - parses, compiles, and runs Bling programs
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/OliveIsAWord/Bling/compiler"
	"github.com/OliveIsAWord/Bling/manifest"
	"github.com/OliveIsAWord/Bling/vm"
)

// Exit codes from sysexits.h, as far as they apply.
const (
	exitUsage    = 64 // the command was used incorrectly
	exitDataErr  = 65 // the input data was incorrect (parse error)
	exitNoInput  = 66 // an input file did not exist or was not readable
	exitSoftware = 70 // an internal software error (interpreter defect)
)

var log = commonlog.GetLogger("bling")

func main() {
	verbose := flag.Bool("v", false, "Print the compiled bytecode listing before running")
	timing := flag.Bool("t", false, "Print execution time")
	source := flag.String("e", "", "Run the given source text instead of a file")
	depth := flag.Int("depth", 0, "Recursion depth limit (overrides bling.toml)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bling [options] [source file]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a Bling program and prints its final value.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bling program.bling      # Run a source file\n")
		fmt.Fprintf(os.Stderr, "  bling -e 'print(42)'     # Run inline source\n")
		fmt.Fprintf(os.Stderr, "  bling -v program.bling   # Show bytecode, then run\n")
	}
	flag.Parse()

	commonlog.Configure(0, nil)

	// bling.toml is optional; it supplies the entry file and depth limit
	// when present.
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	text, err := loadSource(*source, flag.Args(), m)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errNoSource) {
			flag.Usage()
			os.Exit(exitUsage)
		}
		os.Exit(exitNoInput)
	}

	exprs, err := compiler.Parse(text)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitDataErr)
	}

	// Compile in keep mode so the program's final value can be printed.
	code, idents, err := compiler.Compile(exprs, compiler.Keep)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitDataErr)
	}
	if shouldDisassemble(*verbose, m) {
		fmt.Print(vm.Disassemble(code, idents))
	}

	exec := vm.NewExecutor(code, idents)
	exec.InitializeBuiltins()
	switch {
	case *depth > 0:
		exec.SetMaxDepth(*depth)
	case m != nil:
		exec.SetMaxDepth(m.Run.DepthLimit)
	}

	start := time.Now()
	result, err := exec.Run()
	elapsed := time.Since(start)

	if err != nil {
		var scriptErr *vm.ScriptError
		if errors.As(err, &scriptErr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", scriptErr)
			os.Exit(1)
		}
		// Anything else is a defect in the interpreter, not the program.
		log.Criticalf("interpreter bug: %v", err)
		os.Exit(exitSoftware)
	}

	fmt.Println(result)
	if *timing {
		fmt.Fprintf(os.Stderr, "Time taken: %s\n", elapsed)
	}
}

var errNoSource = errors.New("no source file specified")

// shouldDisassemble honors the -v flag or, failing that, the manifest's
// disassemble setting.
func shouldDisassemble(verbose bool, m *manifest.Manifest) bool {
	if verbose {
		return true
	}
	return m != nil && m.Run.Disassemble
}

// loadSource picks the program text: -e source, a command-line file, or the
// manifest's entry file, in that order.
func loadSource(inline string, args []string, m *manifest.Manifest) (string, error) {
	if inline != "" {
		return inline, nil
	}
	path := ""
	switch {
	case len(args) > 0:
		path = args[0]
	case m != nil && m.EntryPath() != "":
		path = m.EntryPath()
	default:
		return "", errNoSource
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
