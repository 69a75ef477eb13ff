package builder

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"singularity/internal/spec"
)

// Backend packages a generated file set into the final artifact. The
// compile toolchain behind it is opaque to the pipeline.
type Backend interface {
	Build(ctx context.Context, app spec.AppSpecification, files FileSet) (Result, error)
}

// LocalBackend writes the file set under a per-build directory and packages
// it into a single .apk artifact (zip payload).
type LocalBackend struct {
	BuildDir string
}

func NewLocalBackend(buildDir string) *LocalBackend {
	return &LocalBackend{BuildDir: buildDir}
}

func (b *LocalBackend) Build(ctx context.Context, app spec.AppSpecification, files FileSet) (Result, error) {
	started := time.Now()
	if len(files) == 0 {
		return Result{}, fmt.Errorf("build %s: no source files", app.Name)
	}
	if err := os.MkdirAll(b.BuildDir, 0o755); err != nil {
		return Result{}, err
	}
	workDir, err := os.MkdirTemp(b.BuildDir, slug(app.Name, "-")+"-*")
	if err != nil {
		return Result{}, err
	}

	// Logs accrued so far ride along on failure for diagnostics.
	logs := []string{fmt.Sprintf("build dir %s", workDir)}
	for _, path := range sortedPaths(files) {
		if err := ctx.Err(); err != nil {
			return Result{BuildLog: logs}, err
		}
		dst := filepath.Join(workDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return Result{BuildLog: logs}, err
		}
		if err := os.WriteFile(dst, []byte(files[path]), 0o644); err != nil {
			return Result{BuildLog: logs}, err
		}
		logs = append(logs, "wrote "+path)
	}

	name := slug(app.Name, "_") + ".apk"
	artifactPath := filepath.Join(workDir, name)
	if err := writeArchive(artifactPath, files); err != nil {
		return Result{BuildLog: logs}, fmt.Errorf("package %s: %w", name, err)
	}
	logs = append(logs, "packaged "+name)

	return Result{
		ArtifactPath: artifactPath,
		ArtifactName: name,
		BuildLog:     logs,
		Elapsed:      time.Since(started),
	}, nil
}

func writeArchive(path string, files FileSet) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)
	for _, p := range sortedPaths(files) {
		w, err := zw.Create(p)
		if err != nil {
			_ = out.Close()
			return err
		}
		if _, err := w.Write([]byte(files[p])); err != nil {
			_ = out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func sortedPaths(files FileSet) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
