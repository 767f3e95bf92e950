package blake2b

import "fmt"

// ConfigurationError reports a Params field outside the range BLAKE2b
// allows. It's returned by Params.Validate and anything that calls it, and
// is always caught before any compression runs.
type ConfigurationError struct {
	Field string
	Value interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("blake2b: invalid %s: %v", e.Field, e.Value)
}

func configErr(field string, value interface{}) error {
	return &ConfigurationError{Field: field, Value: value}
}

// UsageError reports a programming mistake in how the batched hashing API
// was driven: reading a HashManyJob before it ran, or running it twice.
// Because these can only come from a logic error in the caller, and not
// from any input BLAKE2b hashes, the package reports them by panicking
// rather than by threading an error return through hot code.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "blake2b: " + e.Msg
}

func usagePanic(msg string) {
	panic(&UsageError{Msg: msg})
}
