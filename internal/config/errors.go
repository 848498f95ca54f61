package config

import "fmt"

type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return "config file does not exist: " + e.Path
}

type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read config %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
