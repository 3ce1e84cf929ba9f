package ports

// PathResolver locates an executable using the host's standard
// executable-search mechanism. Abstracting the execution path keeps the
// installer deterministic under test: fakes stand in for the real host.
type PathResolver interface {
	// Resolve returns the absolute path of the named executable, or an
	// error when it cannot be located.
	Resolve(name string) (string, error)
}
