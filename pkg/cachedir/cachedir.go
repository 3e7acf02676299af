// Package cachedir resolves the per-credential directory that backs the local
// fallback cache. The namespace is the API key itself, so two clients built
// with different credentials never share cached values.
package cachedir

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Author is the vendor segment under the user cache root.
const Author = "envbee"

// Resolver maps an application identity (the API key) to a filesystem path.
// Injected into the client so deployments can relocate the cache explicitly
// instead of relying on ambient OS lookups.
type Resolver func(appID string) (string, error)

// Default resolves to {userCacheDir}/envbee/{appID} and creates the directory.
func Default(appID string) (string, error) {
	if strings.TrimSpace(appID) == "" {
		return "", errors.New("cachedir: app id is required")
	}
	root, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, Author, appID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Fixed returns a resolver that always yields the provided directory,
// creating it on first use. Useful for tests and containerized deployments.
func Fixed(dir string) Resolver {
	return func(string) (string, error) {
		if strings.TrimSpace(dir) == "" {
			return "", errors.New("cachedir: directory is required")
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", err
		}
		return dir, nil
	}
}
