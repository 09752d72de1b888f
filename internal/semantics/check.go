// Package semantics performs the trivial existence checks that run after
// parsing: include files must exist on disk and import targets must name a
// module in the compilation. Anything deeper belongs to later phases.
package semantics

import (
	"os"
	"path/filepath"

	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/diag"
)

// CheckIncludes verifies that every include path resolves to an existing
// file. Relative paths are resolved against the project root; absolute paths
// are checked as given.
func CheckIncludes(engine *diag.Engine, module *ast.Module, root string) {
	for _, include := range module.Includes {
		path := include.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		if _, err := os.Stat(path); err != nil {
			engine.Emitf(module.Source, include.Line, "Include file '%s' could not be found.", include.Path)
		}
	}
}

// CheckImports verifies that every import names a module present in the
// compilation.
func CheckImports(engine *diag.Engine, modules []*ast.Module) {
	known := make(map[string]bool, len(modules))

	for _, module := range modules {
		if module.Name != "" {
			known[module.Name] = true
		}
	}

	for _, module := range modules {
		for _, imported := range module.Imports {
			if !known[imported.Module] {
				engine.Emitf(module.Source, imported.Line, "Import module '%s' could not be found.", imported.Module)
			}
		}
	}
}
