package seed

import (
	"embed"
	"strings"

	"github.com/pkg/errors"
)

//go:embed presets
var presetFS embed.FS

// Preset names
const (
	PresetPython = "python"
	PresetJava   = "java"
	PresetCPP    = "cpp"
	PresetUser   = "user"
)

// ErrUnknownPreset is returned for names outside Presets
var ErrUnknownPreset = errors.New("unknown preset")

var presetFiles = map[string]string{
	PresetPython: "presets/python.py",
	PresetJava:   "presets/java.java",
	PresetCPP:    "presets/cpp.cpp",
}

// Presets lists selectable presets in cycling order
func Presets() []string {
	return []string{PresetPython, PresetJava, PresetCPP, PresetUser}
}

// IsPreset reports whether name is selectable
func IsPreset(name string) bool {
	return name == PresetUser || presetFiles[name] != ""
}

// Sample returns an embedded code sample with any byte-order mark removed
func Sample(name string) (string, error) {
	file, ok := presetFiles[name]
	if !ok {
		return "", errors.Wrapf(ErrUnknownPreset, "sample %q", name)
	}
	data, err := presetFS.ReadFile(file)
	if err != nil {
		return "", errors.Wrapf(err, "read sample %q", name)
	}
	return StripBOM(string(data)), nil
}

// StripBOM removes a single leading U+FEFF
func StripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
