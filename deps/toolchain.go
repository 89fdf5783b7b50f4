package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

// Tools holds the resolved ffmpeg and ffprobe binaries and where they came from.
type Tools struct {
	Ffmpeg  string
	Ffprobe string
	Source  string
}

// Resolver finds an ffmpeg/ffprobe pair in one candidate location.
type Resolver interface {
	Name() string
	Resolve() (Tools, bool)
}

// Options selects the candidate locations used by DefaultResolvers.
type Options struct {
	// Ffmpeg and Ffprobe are explicit binary paths. When only one is set the
	// other is looked for in the same directory.
	Ffmpeg  string
	Ffprobe string
	// BinDir is an extra directory checked before the bundled locations.
	BinDir string
}

// fileExists is swapped in tests.
var fileExists = func(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func binaryName(tool string) string {
	if runtime.GOOS == "windows" {
		return tool + ".exe"
	}
	return tool
}

// Sibling returns the path of tool in the same directory as bin.
func Sibling(bin, tool string) string {
	return filepath.Join(filepath.Dir(bin), binaryName(tool))
}

// ExplicitResolver uses binary paths given in configuration. A single path is
// paired with the other tool next to it.
type ExplicitResolver struct {
	Ffmpeg  string
	Ffprobe string
}

func (r ExplicitResolver) Name() string { return "config" }

func (r ExplicitResolver) Resolve() (Tools, bool) {
	switch {
	case r.Ffmpeg == "" && r.Ffprobe == "":
		return Tools{}, false
	case r.Ffprobe == "":
		r.Ffprobe = Sibling(r.Ffmpeg, "ffprobe")
	case r.Ffmpeg == "":
		r.Ffmpeg = Sibling(r.Ffprobe, "ffmpeg")
	}
	if !fileExists(r.Ffmpeg) || !fileExists(r.Ffprobe) {
		return Tools{}, false
	}
	return Tools{Ffmpeg: r.Ffmpeg, Ffprobe: r.Ffprobe, Source: r.Name()}, true
}

// DirResolver looks for both binaries in one directory. A directory holding
// only one of them is skipped.
type DirResolver struct {
	Label string
	Dir   string
}

func (r DirResolver) Name() string { return r.Label }

func (r DirResolver) Resolve() (Tools, bool) {
	if r.Dir == "" {
		return Tools{}, false
	}
	ffmpeg := filepath.Join(r.Dir, binaryName("ffmpeg"))
	ffprobe := filepath.Join(r.Dir, binaryName("ffprobe"))
	if !fileExists(ffmpeg) || !fileExists(ffprobe) {
		return Tools{}, false
	}
	return Tools{Ffmpeg: ffmpeg, Ffprobe: ffprobe, Source: r.Label}, true
}

// PathResolver uses the system's installed copies found on PATH.
type PathResolver struct{}

func (PathResolver) Name() string { return "PATH" }

func (PathResolver) Resolve() (Tools, bool) {
	ffmpeg, err := lookPath("ffmpeg")
	if err != nil {
		return Tools{}, false
	}
	ffprobe, err := lookPath("ffprobe")
	if err != nil {
		return Tools{}, false
	}
	return Tools{Ffmpeg: ffmpeg, Ffprobe: ffprobe, Source: "PATH"}, true
}

// DefaultResolvers returns the resolution order: explicit config paths, the
// configured bin dir, bin/ next to the executable, bin/ under the working
// directory (development checkout), then PATH.
func DefaultResolvers(opts Options) []Resolver {
	resolvers := []Resolver{
		ExplicitResolver{Ffmpeg: opts.Ffmpeg, Ffprobe: opts.Ffprobe},
		DirResolver{Label: "bin_dir", Dir: opts.BinDir},
	}
	if exe, err := os.Executable(); err == nil {
		if real, err := filepath.EvalSymlinks(exe); err == nil {
			exe = real
		}
		resolvers = append(resolvers, DirResolver{Label: "bundled", Dir: filepath.Join(filepath.Dir(exe), "bin")})
	}
	if wd, err := os.Getwd(); err == nil {
		resolvers = append(resolvers, DirResolver{Label: "development", Dir: filepath.Join(wd, "bin")})
	}
	return append(resolvers, PathResolver{})
}

// Toolchain evaluates its resolvers once and caches the result for the
// lifetime of the process.
type Toolchain struct {
	resolvers []Resolver

	once  sync.Once
	tools Tools
	err   error
}

// NewToolchain creates a toolchain over an ordered list of resolvers.
func NewToolchain(resolvers ...Resolver) *Toolchain {
	return &Toolchain{resolvers: resolvers}
}

// Resolve returns the first pair found, or a DependencyError if none is.
func (t *Toolchain) Resolve() (Tools, error) {
	t.once.Do(func() {
		for _, r := range t.resolvers {
			if tools, ok := r.Resolve(); ok {
				t.tools = tools
				return
			}
		}
		t.err = &DependencyError{
			Name:       "ffmpeg/ffprobe",
			InstallURL: FfmpegInstallURL,
			Hint:       FfmpegInstallHint,
		}
	})
	return t.tools, t.err
}

// Ffmpeg returns the resolved ffmpeg path, or the bare name when unresolved so
// that invocation fails with the process error.
func (t *Toolchain) Ffmpeg() string {
	tools, err := t.Resolve()
	if err != nil {
		return binaryName("ffmpeg")
	}
	return tools.Ffmpeg
}

// Ffprobe returns the resolved ffprobe path, or the bare name when unresolved.
func (t *Toolchain) Ffprobe() string {
	tools, err := t.Resolve()
	if err != nil {
		return binaryName("ffprobe")
	}
	return tools.Ffprobe
}
