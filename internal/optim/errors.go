package optim

import (
	"fmt"
)

// ErrInvalidArgument is returned by configuration validation when a
// hyperparameter is outside its allowed range.
type ErrInvalidArgument struct {
	Name    string      // Name of the field, e.g. "Epsilon"
	Value   interface{} // The invalid value that was provided
	Message string      // Optional explanation, e.g. the allowed range
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %v is invalid for field %q", err.Value, err.Name)
	}
	return fmt.Sprintf("value %v is invalid for field %q; %s", err.Value, err.Name, err.Message)
}
