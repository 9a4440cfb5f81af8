package triplestore

// NotLoadedError is returned by every query operation invoked before the
// ontology graph has been loaded. It maps to HTTP 500 at the boundary.
type NotLoadedError struct{}

func (NotLoadedError) Error() string {
	return "ontology graph is not loaded"
}

// ErrNotLoaded is the shared instance callers compare against with errors.Is
var ErrNotLoaded = NotLoadedError{}
