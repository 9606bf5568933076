package internal_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const modulePath = "github.com/NaMinhyeok/order-practice"

// layer lists the module packages a package tree may import besides itself.
// The most specific layer wins, so internal/core/port overrides internal/core.
type layer struct {
	pkg     string
	imports []string
}

var layers = []layer{
	{"internal/core", []string{"internal/core"}},
	{"internal/core/domain", nil},
	{"internal/core/port", []string{"internal/core/domain"}},
	{"internal/core/dto", []string{"internal/core/domain"}},

	{"internal/adapters/config", nil},
	{"internal/adapters/metrics", nil},

	// inbound: speak dto/domain to the services they are handed, never other adapters
	{"internal/adapters/http", []string{
		"internal/adapters/config",
		"internal/core/domain", "internal/core/dto", "internal/core/serviceerrors", "internal/core/logger",
	}},
	{"internal/adapters/cli", []string{"internal/adapters/config", "internal/core/domain"}},

	// background jobs reach the core through ports only
	{"internal/adapters/scheduler", []string{"internal/adapters/config", "internal/core/logger"}},
	{"internal/adapters/outbox", []string{"internal/adapters/config", "internal/core/port", "internal/core/logger"}},

	// outbound
	{"internal/adapters/postgres", []string{
		"internal/adapters/config", "internal/adapters/outbox",
		"internal/core/domain", "internal/core/port", "internal/core/serviceerrors", "internal/core/logger",
	}},
	{"internal/adapters/redis", []string{
		"internal/adapters/config", "internal/adapters/http/middleware",
		"internal/core/port", "internal/core/logger",
	}},
	{"internal/adapters/rabbitmq", []string{
		"internal/adapters/config",
		"internal/core/domain", "internal/core/port", "internal/core/logger",
	}},
	{"internal/adapters/github", []string{"internal/core/domain", "internal/core/port", "internal/core/serviceerrors"}},
	{"internal/adapters/slack", []string{"internal/adapters/config", "internal/core/domain", "internal/core/port"}},
	{"internal/adapters/roster", []string{"internal/core/domain", "internal/core/port"}},

	{"cmd/http", []string{
		"internal/core",
		"internal/adapters/config", "internal/adapters/http", "internal/adapters/metrics",
		"internal/adapters/outbox", "internal/adapters/postgres", "internal/adapters/rabbitmq",
		"internal/adapters/redis", "internal/adapters/scheduler",
	}},
	{"cmd/reviewer", []string{
		"internal/core",
		"internal/adapters/config", "internal/adapters/cli",
		"internal/adapters/github", "internal/adapters/roster", "internal/adapters/slack",
	}},
}

func within(pkg, tree string) bool {
	return pkg == tree || strings.HasPrefix(pkg, tree+"/")
}

func layerFor(pkg string) (layer, bool) {
	var best layer
	found := false
	for _, l := range layers {
		if within(pkg, l.pkg) && (!found || len(l.pkg) > len(best.pkg)) {
			best, found = l, true
		}
	}
	return best, found
}

// allowed reports whether pkg may import the module package imp.
func allowed(pkg, imp string) bool {
	l, ok := layerFor(pkg)
	if !ok {
		return false
	}
	if within(imp, l.pkg) {
		return true
	}
	for _, tree := range l.imports {
		if within(imp, tree) {
			return true
		}
	}
	return false
}

// moduleImports maps every non-test package directory to the module packages
// it imports.
func moduleImports(t *testing.T) map[string]map[string]token.Position {
	t.Helper()

	root, err := moduleRoot()
	if err != nil {
		t.Fatalf("locating go.mod: %v", err)
	}

	found := map[string]map[string]token.Position{}
	fset := token.NewFileSet()
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, "_test.go") {
			return nil
		}

		file, err := parser.ParseFile(fset, p, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, filepath.Dir(p))
		if err != nil {
			return err
		}
		pkg := filepath.ToSlash(rel)
		if found[pkg] == nil {
			found[pkg] = map[string]token.Position{}
		}
		for _, spec := range file.Imports {
			imp := strings.Trim(spec.Path.Value, `"`)
			if within(imp, modulePath) {
				found[pkg][strings.TrimPrefix(strings.TrimPrefix(imp, modulePath), "/")] = fset.Position(spec.Pos())
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking module: %v", err)
	}
	return found
}

func TestArchitecture_ImportsFollowLayers(t *testing.T) {
	for pkg, imports := range moduleImports(t) {
		if _, ok := layerFor(pkg); !ok {
			t.Errorf("package %s has no layer; add it to the layer table", pkg)
			continue
		}
		for imp, pos := range imports {
			if !allowed(pkg, imp) {
				t.Errorf("%v: %s must not import %s", pos, pkg, imp)
			}
		}
	}
}

func TestArchitecture_LayerTable(t *testing.T) {
	tests := []struct {
		pkg, imp string
		want     bool
	}{
		{"internal/core/domain", "internal/core/port", false},
		{"internal/core/port/mock", "internal/core/port", true},
		{"internal/core/port", "internal/core/service", false},
		{"internal/core/service", "internal/core/port", true},
		{"internal/core/service", "internal/adapters/config", false},
		{"internal/adapters/http/controllers", "internal/core/service", false},
		{"internal/adapters/http/controllers", "internal/adapters/http/handlers", true},
		{"internal/adapters/cli", "internal/adapters/github", false},
		{"internal/adapters/postgres/repository", "internal/adapters/http", false},
		{"internal/adapters/postgres/repository", "internal/adapters/outbox", true},
		{"internal/adapters/scheduler", "internal/core/service", false},
		{"internal/adapters/outbox", "internal/core/domain", false},
		{"internal/adapters/outbox/mock", "internal/adapters/outbox", true},
		{"cmd/reviewer", "internal/adapters/postgres", false},
		{"cmd/reviewer", "internal/adapters/redis", false},
		{"cmd/reviewer", "internal/adapters/rabbitmq", false},
		{"cmd/http", "internal/adapters/slack", false},
		{"cmd/http", "internal/core/service", true},
		{"tools/unlisted", "internal/core/domain", false},
	}
	for _, tt := range tests {
		t.Run(tt.pkg+" imports "+tt.imp, func(t *testing.T) {
			if got := allowed(tt.pkg, tt.imp); got != tt.want {
				t.Fatalf("allowed(%s, %s) = %v, want %v", tt.pkg, tt.imp, got, tt.want)
			}
		})
	}
}

func TestArchitecture_EveryLayerExists(t *testing.T) {
	imports := moduleImports(t)
	pkgs := make([]string, 0, len(imports))
	for pkg := range imports {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	for _, l := range layers {
		used := false
		for _, pkg := range pkgs {
			if within(pkg, l.pkg) {
				used = true
				break
			}
		}
		if !used {
			t.Errorf("layer %s matches no package", l.pkg)
		}
	}
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
