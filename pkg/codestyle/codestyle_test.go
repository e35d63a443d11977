package codestyle_test

import (
	"bufio"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
)

// projectRoot returns the repository root by walking up from the current file.
func projectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	for {
		_, statErr := os.Stat(filepath.Join(dir, "go.mod"))
		if statErr == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (no go.mod found)")
		}

		dir = parent
	}
}

// skipDir reports whether a directory is outside the module's packages.
// Names starting with "_" or "." are ignored by the go tool as well.
func skipDir(name string) bool {
	if strings.HasPrefix(name, "_") || (strings.HasPrefix(name, ".") && name != ".") {
		return true
	}

	switch name {
	case "vendor", "testdata":
		return true
	default:
		return false
	}
}

// isGenerated reports whether a Go file contains the standard generated-code marker.
func isGenerated(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "Code generated") && strings.Contains(line, "DO NOT EDIT") {
			return true
		}
	}

	return false
}

// isGoSource returns true for non-test, non-generated Go source files.
func isGoSource(path string) bool {
	return strings.HasSuffix(path, ".go") &&
		!strings.HasSuffix(path, "_test.go") &&
		!isGenerated(path)
}

// walkGoFiles walks root and calls fn for every non-test, non-generated Go source file.
func walkGoFiles(t *testing.T, root string, fn func(rel string, f *ast.File)) {
	t.Helper()

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if skipDir(filepath.Base(path)) {
				return filepath.SkipDir
			}

			return nil
		}

		if !isGoSource(path) {
			return nil
		}

		fset := token.NewFileSet()

		parsed, parseErr := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if parseErr != nil {
			return fmt.Errorf("parsing Go file %s: %w", path, parseErr)
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}

		fn(rel, parsed)

		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}

// ---------- Banned filenames ----------

// bannedFilename is a basename that must not appear in the module.
type bannedFilename struct {
	Name   string
	Reason string
	// Fix takes the relative path as its only verb.
	Fix string
}

// getBannedFilenames returns the filenames that must not exist.
func getBannedFilenames() []bannedFilename {
	return []bannedFilename{
		{
			Name:   "types.go",
			Reason: "Grouping types by kind instead of by domain. Types belong next to the code that uses them.",
			Fix:    "Move each type from %s into the file that uses it most, then delete the file.",
		},
		{
			Name:   "utils.go",
			Reason: "A grab-bag file with no domain responsibility.",
			Fix:    "Move each function from %s to the file that owns its domain, then delete the file.",
		},
		{
			Name:   "helpers.go",
			Reason: "A grab-bag file with no domain responsibility.",
			Fix: "Move each function from %s to the file that owns its domain, " +
				"e.g. palette lookups belong in palette.go. Delete the file once empty.",
		},
		{
			Name:   "common.go",
			Reason: "If everything is common, nothing is.",
			Fix:    "Move each symbol from %s to the file that owns its concept, then delete the file.",
		},
		{
			Name:   "constants.go",
			Reason: "Constants live next to the code that uses them.",
			Fix:    "Move each constant from %s to the file where it is used, then delete the file.",
		},
		{
			Name:   "errors.go",
			Reason: "Sentinel errors live next to the functions that return them.",
			Fix:    "Move each error variable from %s to the file of the function returning it, then delete the file.",
		},
	}
}

// TestNoBannedFilenames verifies that no Go source files use grab-bag naming patterns.
func TestNoBannedFilenames(t *testing.T) {
	t.Parallel()

	root := projectRoot(t)

	var violations []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if skipDir(filepath.Base(path)) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		base := filepath.Base(path)
		for _, banned := range getBannedFilenames() {
			if base == banned.Name {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return fmt.Errorf("computing relative path for %s: %w", path, relErr)
				}

				violations = append(violations, fmt.Sprintf(
					"VIOLATION: %s\n  Reason: %s\n  Fix: %s",
					rel, banned.Reason, fmt.Sprintf(banned.Fix, rel),
				))
			}
		}

		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	if len(violations) > 0 {
		t.Errorf("found %d banned filename(s):\n\n%s",
			len(violations), strings.Join(violations, "\n\n"))
	}
}

// ---------- Interface checks ----------

// interfaceDecl captures a declared interface and its location.
type interfaceDecl struct {
	Name    string
	File    string // relative path.
	Pkg     string // package directory (relative).
	Methods int    // number of methods.
}

// collectInterfaces parses all Go files under root and returns declared interfaces.
func collectInterfaces(t *testing.T, root string) []interfaceDecl {
	t.Helper()

	var decls []interfaceDecl

	walkGoFiles(t, root, func(rel string, f *ast.File) {
		pkgDir := filepath.Dir(rel)

		for _, decl := range f.Decls {
			genDecl, isGenDecl := decl.(*ast.GenDecl)
			if !isGenDecl || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, isTypeSpec := spec.(*ast.TypeSpec)
				if !isTypeSpec {
					continue
				}

				ifaceType, isIface := typeSpec.Type.(*ast.InterfaceType)
				if !isIface {
					continue
				}

				decls = append(decls, interfaceDecl{
					Name:    typeSpec.Name.Name,
					File:    rel,
					Pkg:     pkgDir,
					Methods: countMethods(ifaceType),
				})
			}
		}
	})

	return decls
}

// countMethods returns the number of methods (not embedded interfaces) in an interface type.
func countMethods(iface *ast.InterfaceType) int {
	count := 0

	for _, method := range iface.Methods.List {
		if _, ok := method.Type.(*ast.FuncType); ok {
			count++
		}
	}

	return count
}

// maxInterfaceMethods is the maximum number of methods an interface should have.
// Interfaces with more than this many methods are likely too broad.
const maxInterfaceMethods = 5

// TestNoFatInterfaces verifies that interfaces stay small and focused.
// The Go proverb: "The bigger the interface, the weaker the abstraction.".
func TestNoFatInterfaces(t *testing.T) {
	t.Parallel()

	root := projectRoot(t)
	decls := collectInterfaces(t, root)

	var violations []string

	for _, item := range decls {
		if item.Methods > maxInterfaceMethods {
			violations = append(violations, fmt.Sprintf(
				"VIOLATION: interface %q in %s has %d methods (max %d)\n"+
					"  Reason: Large interfaces create tight coupling and are hard to implement/mock. "+
					"Go proverb: 'The bigger the interface, the weaker the abstraction.'\n"+
					"  Fix: Split %q into smaller, composable interfaces with 1-3 methods each. "+
					"Compose them via embedding where a larger surface is needed.",
				item.Name, item.File, item.Methods, maxInterfaceMethods,
				item.Name,
			))
		}
	}

	if len(violations) > 0 {
		t.Errorf("found %d fat interface(s):\n\n%s",
			len(violations), strings.Join(violations, "\n\n"))
	}
}

// ---------- Package naming ----------

// TestNoGrabBagPackages verifies that package names don't use generic names
// that indicate unclear responsibility.
func TestNoGrabBagPackages(t *testing.T) {
	t.Parallel()

	root := projectRoot(t)

	bannedPkgNames := map[string]string{
		"util":    "Use a domain-specific package name instead (e.g., 'stringutil', 'httputil').",
		"utils":   "Use a domain-specific package name instead (e.g., 'stringutil', 'httputil').",
		"misc":    "Every function belongs to a domain. Name the package after that domain.",
		"shared":  "If it's shared, it has a domain purpose. Name the package after that purpose.",
		"base":    "Use a concrete name describing what the package provides.",
		"generic": "Use a concrete name describing what the package provides.",
	}

	var violations []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if skipDir(base) {
			return filepath.SkipDir
		}

		if fix, banned := bannedPkgNames[base]; banned {
			goFiles, globErr := filepath.Glob(filepath.Join(path, "*.go"))
			if globErr != nil {
				return fmt.Errorf("globbing Go files in %s: %w", path, globErr)
			}

			if len(goFiles) > 0 {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return fmt.Errorf("computing relative path for %s: %w", path, relErr)
				}

				violations = append(violations, fmt.Sprintf(
					"VIOLATION: package %q at %s\n"+
						"  Reason: Generic package names indicate unclear responsibility.\n"+
						"  Fix: %s",
					base, rel, fix,
				))
			}
		}

		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	if len(violations) > 0 {
		t.Errorf("found %d grab-bag package(s):\n\n%s",
			len(violations), strings.Join(violations, "\n\n"))
	}
}

// ---------- Stuttering exports ----------

// stutters reports whether an exported identifier repeats the package name
// as a CamelCase prefix followed by a word boundary:
//
//	figure.FigureGrid → ("Grid", true)
//	frame.Framer      → ("", false)
//	config.Config     → ("", false)
func stutters(pkgName, exportedName string) (string, bool) {
	// Title-case the package name to match Go export casing.
	titled := strings.ToUpper(pkgName[:1]) + pkgName[1:]

	if !strings.HasPrefix(exportedName, titled) {
		return "", false
	}

	rest := exportedName[len(titled):]
	if rest == "" {
		return "", false
	}

	firstRune := rune(rest[0])
	if !unicode.IsUpper(firstRune) && !unicode.IsDigit(firstRune) {
		return "", false
	}

	return rest, true
}

// TestNoStutteringExports detects exported type names that stutter with the package name.
func TestNoStutteringExports(t *testing.T) {
	t.Parallel()

	root := projectRoot(t)

	var violations []string

	walkGoFiles(t, root, func(rel string, fval *ast.File) {
		pkgName := strings.ToLower(fval.Name.Name)

		for _, decl := range fval.Decls {
			genDecl, isGenDecl := decl.(*ast.GenDecl)
			if !isGenDecl || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, isTypeSpec := spec.(*ast.TypeSpec)
				if !isTypeSpec {
					continue
				}

				name := typeSpec.Name.Name
				if !ast.IsExported(name) {
					continue
				}

				if trimmed, isStutter := stutters(pkgName, name); isStutter {
					violations = append(violations, fmt.Sprintf(
						"VIOLATION: type %s.%s in %s stutters with package name\n"+
							"  Reason: In Go, '%s.%s' is read redundantly. "+
							"The package name already provides context.\n"+
							"  Fix: Rename %q to %q so callers write '%s.%s' instead of '%s.%s'.",
						fval.Name.Name, name, rel,
						fval.Name.Name, name,
						name, trimmed,
						fval.Name.Name, trimmed, fval.Name.Name, name,
					))
				}
			}
		}
	})

	if len(violations) > 0 {
		t.Errorf("found %d stuttering export(s):\n\n%s",
			len(violations), strings.Join(violations, "\n\n"))
	}
}

// ---------- Library output ----------

// allowedPrinters lists library files that may reference the process streams.
var allowedPrinters = map[string]bool{
	filepath.Join("pkg", "observability", "init.go"): true,
}

// printsDirectly reports the first fmt.Print* call or os.Stdout/os.Stderr
// reference in f.
func printsDirectly(f *ast.File) (string, bool) {
	var found string

	ast.Inspect(f, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok || found != "" {
			return found == ""
		}

		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		switch {
		case ident.Name == "fmt" && strings.HasPrefix(sel.Sel.Name, "Print"):
			found = "fmt." + sel.Sel.Name
		case ident.Name == "os" && (sel.Sel.Name == "Stdout" || sel.Sel.Name == "Stderr"):
			found = "os." + sel.Sel.Name
		}

		return found == ""
	})

	return found, found != ""
}

// TestLibrariesDoNotPrint verifies that packages under pkg/ write only to
// the writers they are given and log through slog.
func TestLibrariesDoNotPrint(t *testing.T) {
	t.Parallel()

	root := projectRoot(t)

	var violations []string

	walkGoFiles(t, filepath.Join(root, "pkg"), func(rel string, f *ast.File) {
		rel = filepath.Join("pkg", rel)
		if allowedPrinters[rel] {
			return
		}

		if what, ok := printsDirectly(f); ok {
			violations = append(violations, fmt.Sprintf(
				"VIOLATION: %s uses %s\n"+
					"  Fix: accept an io.Writer from the caller, or log through slog.Default().",
				rel, what,
			))
		}
	})

	if len(violations) > 0 {
		t.Errorf("found %d library file(s) writing to the process streams:\n\n%s",
			len(violations), strings.Join(violations, "\n\n"))
	}
}
