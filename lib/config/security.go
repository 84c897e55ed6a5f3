package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-i2p/logger"
)

// SecureFilePermissions for generated property files, which carry database
// credentials.
const SecureFilePermissions = 0o600

// StandardDirPermissions for log and relay-log directories.
const StandardDirPermissions = 0o755

// SanitizePath joins userPath onto basePath and rejects the result if it
// escapes basePath. Absolute user paths must already lie under basePath.
// The returned path is cleaned but keeps basePath's relative/absolute form.
func SanitizePath(basePath, userPath string) (string, error) {
	if basePath == "" {
		return "", fmt.Errorf("base path cannot be empty")
	}
	cleanBase := filepath.Clean(basePath)
	if userPath == "" {
		return cleanBase, nil
	}

	resolved := filepath.Clean(userPath)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(cleanBase, resolved)
	}

	if err := validatePathWithinBase(cleanBase, resolved, userPath, basePath); err != nil {
		return "", err
	}
	return resolved, nil
}

// validatePathWithinBase compares absolute forms so "." and "./x" style
// bases behave like their absolute equivalents.
func validatePathWithinBase(cleanBase, resolved, userPath, basePath string) error {
	absBase, err := filepath.Abs(cleanBase)
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}
	absResolved, err := filepath.Abs(resolved)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	baseWithSep := absBase
	if !strings.HasSuffix(baseWithSep, string(filepath.Separator)) {
		baseWithSep += string(filepath.Separator)
	}
	if absResolved != absBase && !strings.HasPrefix(absResolved, baseWithSep) {
		log.WithFields(logger.Fields{
			"at":            "SanitizePath",
			"reason":        "path_traversal_attempt",
			"base_path":     absBase,
			"resolved_path": absResolved,
		}).Warn("potential path traversal blocked")
		return fmt.Errorf("path %q escapes base directory %q", userPath, basePath)
	}
	return nil
}
