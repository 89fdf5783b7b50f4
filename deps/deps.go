package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
	// FfmpegInstallHint is shown when no ffmpeg/ffprobe pair can be resolved.
	FfmpegInstallHint = "install it manually, e.g. brew install ffmpeg (macOS) or apt install ffmpeg (Linux)"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
	Hint       string
}

func (e *DependencyError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s not found; %s. Install from: %s", e.Name, e.Hint, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	_, err := exec.LookPath("mpv")
	if err != nil {
		return &DependencyError{
			Name:       "mpv",
			InstallURL: MpvInstallURL,
		}
	}
	return nil
}
