package job

import "fmt"

// A ConfigError is a problem with the job settings, found before the job
// starts.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// An InputError is an input texture which is missing, unreadable, or not an
// image.
type InputError struct {
	Channel Channel
	Path    string
	Err     error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s texture: %v", e.Channel, e.Err)
	}
	return fmt.Sprintf("%s texture %q: %v", e.Channel, e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
