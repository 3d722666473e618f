// Package storage defines the rooted file-system abstraction used for
// reading project sources and writing generated output.
package storage

// Provider is the interface for file operations under a fixed root. All
// paths are relative to that root; anything escaping it is rejected.
type Provider interface {
	// Glob returns the paths under dir matching pattern, sorted
	// lexicographically.
	Glob(dir, pattern string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent
	// directories as needed.
	Write(path string, content []byte) error
	// DirExists reports whether dir exists and is a directory.
	DirExists(dir string) (bool, error)
}
