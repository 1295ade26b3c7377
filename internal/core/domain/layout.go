package domain

import "path/filepath"

const (
	// SiftDirName is the name of the internal state directory.
	SiftDirName = ".sift"

	// CacheDirName is the name of the cache directory inside the state directory.
	CacheDirName = "cache"

	// SuiteFileName is the name of the scenario suite configuration file.
	SuiteFileName = "sift.yaml"

	// DefaultRemote is the remote used when the suite file does not name one.
	DefaultRemote = "origin"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStatePath returns the fetch state cache directory relative to the suite root.
func DefaultStatePath() string {
	return filepath.Join(SiftDirName, CacheDirName)
}
