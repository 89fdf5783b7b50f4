package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func stubLookPath(t *testing.T, found map[string]string) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if p, ok := found[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestToolchainResolutionOrder(t *testing.T) {
	root := t.TempDir()
	bundled := filepath.Join(root, "app", "bin")
	dev := filepath.Join(root, "src", "bin")
	touch(t, filepath.Join(bundled, binaryName("ffmpeg")))
	touch(t, filepath.Join(bundled, binaryName("ffprobe")))
	touch(t, filepath.Join(dev, binaryName("ffmpeg")))
	touch(t, filepath.Join(dev, binaryName("ffprobe")))
	stubLookPath(t, map[string]string{"ffmpeg": "/usr/bin/ffmpeg", "ffprobe": "/usr/bin/ffprobe"})

	tc := NewToolchain(
		DirResolver{Label: "bundled", Dir: bundled},
		DirResolver{Label: "development", Dir: dev},
		PathResolver{},
	)
	tools, err := tc.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tools.Source != "bundled" || tools.Ffmpeg != filepath.Join(bundled, binaryName("ffmpeg")) {
		t.Errorf("tools = %+v; want bundled pair", tools)
	}
}

func TestDirResolverNeedsBothBinaries(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, binaryName("ffmpeg")))
	stubLookPath(t, map[string]string{"ffmpeg": "/usr/bin/ffmpeg", "ffprobe": "/usr/bin/ffprobe"})

	tc := NewToolchain(DirResolver{Label: "bundled", Dir: dir}, PathResolver{})
	tools, err := tc.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tools.Source != "PATH" || tools.Ffprobe != "/usr/bin/ffprobe" {
		t.Errorf("tools = %+v; want PATH fallback", tools)
	}
}

func TestExplicitResolver(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, "custom-ffmpeg")
	ffprobe := filepath.Join(dir, "custom-ffprobe")
	touch(t, ffmpeg)
	touch(t, ffprobe)

	if _, ok := (ExplicitResolver{Ffmpeg: ffmpeg}).Resolve(); ok {
		t.Error("explicit resolver without ffprobe next to ffmpeg should not resolve")
	}
	tools, ok := ExplicitResolver{Ffmpeg: ffmpeg, Ffprobe: ffprobe}.Resolve()
	if !ok || tools.Ffmpeg != ffmpeg || tools.Source != "config" {
		t.Errorf("Resolve = %+v, %v", tools, ok)
	}
}

func TestToolchainNothingFound(t *testing.T) {
	stubLookPath(t, nil)

	tc := NewToolchain(DirResolver{Label: "bundled", Dir: t.TempDir()}, PathResolver{})
	_, err := tc.Resolve()
	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("err = %v; want *DependencyError", err)
	}
	if tc.Ffmpeg() != binaryName("ffmpeg") {
		t.Errorf("Ffmpeg() = %q; want bare name", tc.Ffmpeg())
	}
}

func TestToolchainCachesResult(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, binaryName("ffmpeg")))
	touch(t, filepath.Join(dir, binaryName("ffprobe")))

	tc := NewToolchain(DirResolver{Label: "bundled", Dir: dir})
	first, err := tc.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}
	second, err := tc.Resolve()
	if err != nil || second != first {
		t.Errorf("second Resolve = %+v, %v; want cached %+v", second, err, first)
	}
}

func TestExplicitResolverPairsWithSibling(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, binaryName("ffmpeg"))
	ffprobe := filepath.Join(dir, binaryName("ffprobe"))
	touch(t, ffmpeg)
	touch(t, ffprobe)
	stubLookPath(t, map[string]string{"ffmpeg": "/usr/bin/ffmpeg", "ffprobe": "/usr/bin/ffprobe"})

	tools, err := NewToolchain(DefaultResolvers(Options{Ffmpeg: ffmpeg})...).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tools.Source != "config" || tools.Ffmpeg != ffmpeg || tools.Ffprobe != ffprobe {
		t.Errorf("tools = %+v; want configured ffmpeg with its ffprobe", tools)
	}

	tools, err = NewToolchain(DefaultResolvers(Options{Ffprobe: ffprobe})...).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tools.Source != "config" || tools.Ffmpeg != ffmpeg {
		t.Errorf("tools = %+v; want ffmpeg found next to configured ffprobe", tools)
	}
}
