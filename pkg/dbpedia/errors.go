package dbpedia

import "fmt"

// RemoteUnavailableError marks a remote endpoint failure (timeout or
// non-2xx). It is always absorbed inside the adapter: external knowledge
// is optional enrichment and never fails a request.
type RemoteUnavailableError struct {
	Endpoint string
	Cause    error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("remote knowledge endpoint %s unavailable: %v", e.Endpoint, e.Cause)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.Cause
}

// CacheCorruptionError marks an unparseable cache file. Recovery deletes
// the offending file and treats the lookup as a miss.
type CacheCorruptionError struct {
	Path  string
	Cause error
}

func (e *CacheCorruptionError) Error() string {
	return fmt.Sprintf("corrupted cache file %s: %v", e.Path, e.Cause)
}

func (e *CacheCorruptionError) Unwrap() error {
	return e.Cause
}
