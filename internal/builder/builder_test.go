package builder

import (
	"archive/zip"
	"context"
	"errors"
	"strings"
	"testing"

	"singularity/internal/spec"
)

func testApp() spec.AppSpecification {
	return spec.AppSpecification{
		Name:        "Demo Calculator",
		Description: "A simple calculator",
		Category:    "utility",
		Framework:   "react_native",
		Features:    []string{"basic_ui", "data_display", "settings"},
		Permissions: []string{"INTERNET"},
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(NewLocalBackend(t.TempDir()))
	for _, framework := range spec.Frameworks {
		b, err := reg.Lookup(framework)
		if err != nil {
			t.Fatalf("lookup %s: %v", framework, err)
		}
		if b.Framework() != framework {
			t.Fatalf("lookup %s returned %s", framework, b.Framework())
		}
	}
}

func TestRegistryUnsupportedPlatform(t *testing.T) {
	reg := NewRegistry(NewLocalBackend(t.TempDir()))
	_, err := reg.Lookup("ios_swift")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestGeneratedFileSets(t *testing.T) {
	reg := NewRegistry(NewLocalBackend(t.TempDir()))
	arch := spec.TemplateArchitecture(testApp())

	cases := map[string][]string{
		"react_native":   {"App.js", "package.json", "android/app/build.gradle"},
		"flutter":        {"lib/main.dart", "pubspec.yaml"},
		"kivy":           {"main.py", "buildozer.spec"},
		"cordova":        {"www/index.html", "config.xml"},
		"native_android": {"app/src/main/java/MainActivity.java", "app/src/main/AndroidManifest.xml", "app/build.gradle"},
	}
	for framework, wantFiles := range cases {
		b, err := reg.Lookup(framework)
		if err != nil {
			t.Fatalf("lookup %s: %v", framework, err)
		}
		files := b.GenerateCode(testApp(), arch)
		if len(files) != len(wantFiles) {
			t.Errorf("%s: got %d files, want %d", framework, len(files), len(wantFiles))
		}
		for _, f := range wantFiles {
			content, ok := files[f]
			if !ok {
				t.Errorf("%s: missing %s", framework, f)
				continue
			}
			if !strings.Contains(content, "Demo Calculator") && !strings.Contains(content, "demo") {
				t.Errorf("%s: %s does not mention the app", framework, f)
			}
		}
	}
}

func TestGenerateCodeIsStateless(t *testing.T) {
	reg := NewRegistry(NewLocalBackend(t.TempDir()))
	b, _ := reg.Lookup("flutter")
	arch := spec.TemplateArchitecture(testApp())
	first := b.GenerateCode(testApp(), arch)
	second := b.GenerateCode(testApp(), arch)
	for path, content := range first {
		if second[path] != content {
			t.Fatalf("repeated generation differs for %s", path)
		}
	}
}

func TestLocalBackendPackagesArtifact(t *testing.T) {
	backend := NewLocalBackend(t.TempDir())
	reg := NewRegistry(backend)
	b, _ := reg.Lookup("react_native")
	app := testApp()
	files := b.GenerateCode(app, spec.TemplateArchitecture(app))

	res, err := b.BuildArtifact(context.Background(), app, files)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.ArtifactName != "demo_calculator.apk" {
		t.Errorf("artifact name = %s", res.ArtifactName)
	}
	if len(res.BuildLog) == 0 {
		t.Errorf("empty build log")
	}

	zr, err := zip.OpenReader(res.ArtifactPath)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer zr.Close()
	if len(zr.File) != len(files) {
		t.Errorf("artifact holds %d entries, want %d", len(zr.File), len(files))
	}
}

func TestLocalBackendRejectsEmptyFileSet(t *testing.T) {
	backend := NewLocalBackend(t.TempDir())
	if _, err := backend.Build(context.Background(), testApp(), nil); err == nil {
		t.Fatalf("expected error for empty file set")
	}
}
