// Package loader reads candidate URL lists from CSV, JSON, and XLSX files.
package loader

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// NormalizeURL trims the raw value and prefixes "http://" when no scheme is
// present. Returns "" for blank input.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "http://" + raw
	}
	return raw
}

// Load reads a URL list, dispatching on file extension (.json, .xlsx,
// anything else is treated as CSV). A malformed or unreadable file yields an
// empty list, logged but non-fatal: a bad prospect file should not kill a
// run.
func Load(path string) []string {
	var (
		urls []string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		urls, err = FromJSON(path)
	case ".xlsx":
		urls, err = FromXLSX(path)
	default:
		urls, err = FromCSV(path)
	}
	if err != nil {
		zap.L().Error("loader: load failed", zap.String("path", path), zap.Error(err))
		return nil
	}

	zap.L().Info("loader: loaded urls", zap.String("path", path), zap.Int("count", len(urls)))
	return urls
}
