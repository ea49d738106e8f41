// Package source discovers and reads Playnite log files.
//
// Discovery scans a Playnite data directory for the well-known log
// locations: the shared extensions.log and playnite.log at the root, the
// per-extension UniPlaySong.log and PlayniteSound.log anywhere under
// Extensions/, and the same two names at the root for older installs.
package source

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jittakal/logdiag/internal/analyzer"
	apperrors "github.com/jittakal/logdiag/internal/errors"
)

// extensionLogNames are the per-extension log file names searched for
// under Extensions/ and at the data directory root.
var extensionLogNames = []string{"UniPlaySong.log", "PlayniteSound.log"}

// Discover returns the log files present under the Playnite data
// directory, in stable priority order. Missing files are simply omitted;
// an empty result is not an error.
func Discover(dataDir string) []string {
	var files []string

	for _, name := range []string{"extensions.log", "playnite.log"} {
		path := filepath.Join(dataDir, name)
		if fileExists(path) {
			files = append(files, path)
		}
	}

	extensionsDir := filepath.Join(dataDir, "Extensions")
	filepath.WalkDir(extensionsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		for _, name := range extensionLogNames {
			if d.Name() == name {
				files = append(files, path)
			}
		}
		return nil
	})

	for _, name := range extensionLogNames {
		path := filepath.Join(dataDir, name)
		if fileExists(path) {
			files = append(files, path)
		}
	}

	return files
}

// Read loads one log file into an analyzer input. The origin label is the
// file's base name.
func Read(path string) (analyzer.Input, error) {
	origin := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return analyzer.Input{}, &apperrors.InputError{
			Origin: origin,
			Path:   path,
			Err:    err,
		}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Some extension logs carry very long raw lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return analyzer.Input{}, &apperrors.InputError{
			Origin: origin,
			Path:   path,
			Err:    err,
		}
	}

	return analyzer.Input{Origin: origin, Lines: lines}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
