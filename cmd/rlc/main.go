// Package main provides the entry point for the Royal compiler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/cli"
	"github.com/royal-lang/rl/internal/diag"
	"github.com/royal-lang/rl/internal/lexer"
	"github.com/royal-lang/rl/internal/parser"
	"github.com/royal-lang/rl/internal/parsetree"
	"github.com/royal-lang/rl/internal/project"
	"github.com/royal-lang/rl/internal/semantics"
	"github.com/royal-lang/rl/internal/watch"
)

// sourceExtension is the file extension of Royal source files.
const sourceExtension = ".rl"

type options struct {
	root        string
	projectFile string
	dumpTrees   bool
	debugLexer  bool
	verbose     bool
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "print version information as JSON")
		showHelp    = flag.Bool("help", false, "show help information")
		root        = flag.String("root", ".", "project root directory")
		projectFile = flag.String("project", project.DefaultFilename, "project filename inside the root")
		dumpTrees   = flag.Bool("dump-tree", false, "write token tree JSON dumps for each module")
		debugLexer  = flag.Bool("debug-lexer", false, "enable lexer debug output")
		watchMode   = flag.Bool("watch", false, "recompile when source files change")
		verbose     = flag.Bool("verbose", false, "enable verbose output")
	)

	flag.Parse()

	if *showVersion {
		cli.PrintVersion("rlc", *jsonOutput)

		return
	}

	if *showHelp {
		showUsage()

		return
	}

	opts := options{
		root:        *root,
		projectFile: *projectFile,
		dumpTrees:   *dumpTrees,
		debugLexer:  *debugLexer,
		verbose:     *verbose,
	}

	logger := cli.NewLogger(*verbose, *debugLexer)

	proj, err := project.Load(filepath.Join(opts.root, opts.projectFile))
	if err != nil {
		cli.Fatal("%v", err)
	}

	logger.Info("compiling project %s", proj.Name)

	ok := compileProject(proj, opts, logger)

	if *watchMode {
		watchLoop(proj, opts, logger)

		return
	}

	if !ok {
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("rlc - Royal Compiler")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("    rlc [OPTIONS]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("    --root         Project root directory (default .)")
	fmt.Println("    --project      Project filename inside the root (default " + project.DefaultFilename + ")")
	fmt.Println("    --dump-tree    Write token tree JSON dumps for each module")
	fmt.Println("    --debug-lexer  Enable lexer debug output")
	fmt.Println("    --watch        Recompile when source files change")
	fmt.Println("    --verbose      Enable verbose output")
	fmt.Println("    --version      Show version information")
	fmt.Println("    --help         Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("    rlc --root examples/hello")
	fmt.Println("    rlc --root . --watch --verbose")
}

// compileProject runs the full front-end pipeline over every source file of
// the project and reports whether compilation stayed error free. The run
// short-circuits between phases as soon as errors appear.
func compileProject(proj *project.Project, opts options, logger *cli.Logger) bool {
	engine := diag.NewEngine(os.Stderr)

	files, err := collectSources(proj, opts.root)
	if err != nil {
		logger.Error("%v", err)

		return false
	}

	if len(files) == 0 {
		logger.Warn("no source files found for project %s", proj.Name)
	}

	var modules []*ast.Module

	for _, file := range files {
		module := compileFile(engine, file, opts)
		if module != nil {
			modules = append(modules, module)
		}
	}

	if engine.HasErrors() {
		return false
	}

	for _, module := range modules {
		semantics.CheckIncludes(engine, module, opts.root)
	}

	semantics.CheckImports(engine, modules)

	return !engine.HasErrors()
}

// compileFile runs lexing, grouping and parsing for one source file.
func compileFile(engine *diag.Engine, file string, opts options) *ast.Module {
	source, err := os.ReadFile(file)
	if err != nil {
		engine.Emitf(label(file, opts.root), 0, "Failed to read source file: %v.", err)

		return nil
	}

	lexemes := lexer.Scan(string(source), false)

	if opts.debugLexer {
		fmt.Println(strings.Repeat("=", 50))

		for _, lexeme := range lexemes {
			fmt.Printf("Lexeme: %-20q | Line: %d\n", lexeme.Text, lexeme.Line)
		}

		fmt.Println(strings.Repeat("=", 50))
	}

	tree := parsetree.Group(lexemes)

	ctx := parser.NewContext(engine, label(file, opts.root))
	ctx.Verbose = opts.verbose

	module := parser.ParseModule(ctx, tree)

	if opts.dumpTrees {
		name := module.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(file), sourceExtension)
		}

		if err := parsetree.Dump(opts.root, name, tree); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	return module
}

// collectSources walks the project's source paths and returns every Royal
// source file in a stable order.
func collectSources(proj *project.Project, root string) ([]string, error) {
	var files []string

	for _, sourcePath := range proj.SourcePaths {
		dir := filepath.Join(root, sourcePath)

		err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !entry.IsDir() && strings.HasSuffix(path, sourceExtension) {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk source path %s: %w", sourcePath, err)
		}
	}

	sort.Strings(files)

	return files, nil
}

// label renders a source path relative to the project root for diagnostics.
func label(file, root string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return filepath.ToSlash(file)
	}

	return filepath.ToSlash(rel)
}

// watchLoop recompiles the project whenever a source file changes.
func watchLoop(proj *project.Project, opts options, logger *cli.Logger) {
	watcher, err := watch.New(sourceExtension)
	if err != nil {
		cli.Fatal("failed to start watcher: %v", err)
	}
	defer watcher.Close()

	for _, sourcePath := range proj.SourcePaths {
		if err := watcher.AddTree(filepath.Join(opts.root, sourcePath)); err != nil {
			cli.Fatal("failed to watch %s: %v", sourcePath, err)
		}
	}

	logger.Info("watching %d source path(s)", len(proj.SourcePaths))

	for {
		select {
		case event := <-watcher.Events():
			logger.Info("change detected in %s", event.Path)
			compileProject(proj, opts, logger)
		case err := <-watcher.Errors():
			logger.Error("watch error: %v", err)
		}
	}
}
