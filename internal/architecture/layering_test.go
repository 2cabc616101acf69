package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesImport = "studyroutine/internal/modules/"

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(slash, importPath string) {
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return
		}
		if violatesLayerRule(module, layer, importPath) {
			t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
		}
	})
}

// Transports and the dashboard talk to modules through port/in and dto only.
func TestOuterSurfacesUseInboundPorts(t *testing.T) {
	t.Parallel()
	for _, root := range []string{filepath.Join("..", "api"), filepath.Join("..", "ui")} {
		walkImports(t, root, func(slash, importPath string) {
			if !isPortIn(importPath) && !isDTO(importPath) {
				t.Fatalf("%s reaches past the inbound port: %s", slash, importPath)
			}
		})
	}
}

func walkImports(t *testing.T, root string, check func(slash, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, modulesImport) {
				continue
			}
			check(filepath.ToSlash(path), importPath+"/")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, modulesImport+module+"/")
	if !sameModule {
		if layer == "domain" || layer == "dto" {
			return true
		}
		return !isPortIn(importPath) && !isDTO(importPath)
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/")
	case "domain":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") || strings.Contains(importPath, "/service/")
	default:
		return false
	}
}

func TestViolatesLayerRule(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, imp string
		want               bool
	}{
		{"report", "adapter/out", modulesImport + "schedule/port/in/", false},
		{"report", "adapter/out", modulesImport + "schedule/service/", true},
		{"report", "domain", modulesImport + "schedule/dto/", true},
		{"schedule", "adapter/in", modulesImport + "schedule/service/", true},
		{"schedule", "usecase", modulesImport + "schedule/service/", false},
		{"schedule", "service", modulesImport + "schedule/usecase/", true},
	}
	for _, c := range cases {
		if got := violatesLayerRule(c.module, c.layer, c.imp); got != c.want {
			t.Fatalf("%s/%s importing %s: got %t want %t", c.module, c.layer, c.imp, got, c.want)
		}
	}
}
