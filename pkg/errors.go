package shared

import (
	"errors"
	"fmt"
)

// NotFoundError reports a lookup for a document that does not exist.
// Adapters translate backend-specific sentinel errors into this type so
// services and HTTP handlers never branch on storage internals.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
