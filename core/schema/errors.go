package schema

import "fmt"

// InvalidFieldError reports a malformed field declaration.
type InvalidFieldError struct {
	Model  string
	Field  string
	Reason string
}

func (e InvalidFieldError) Error() string {
	return fmt.Sprintf("model %q: field %q: %s", e.Model, e.Field, e.Reason)
}

// InvalidModelError reports a malformed model declaration.
type InvalidModelError struct {
	Model  string
	Reason string
}

func (e InvalidModelError) Error() string {
	return fmt.Sprintf("model %q: %s", e.Model, e.Reason)
}

// CompositeKeyError reports a malformed composite primary key declaration.
type CompositeKeyError struct {
	Model  string
	Field  string
	Reason string
}

func (e CompositeKeyError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("model %q: composite key field %q: %s", e.Model, e.Field, e.Reason)
	}
	return fmt.Sprintf("model %q: composite key: %s", e.Model, e.Reason)
}

// OwnershipFieldMissingError reports an ownership rule whose owner field
// does not exist on the model.
type OwnershipFieldMissingError struct {
	Model string
	Field string
}

func (e OwnershipFieldMissingError) Error() string {
	return fmt.Sprintf("model %q: ownership field %q does not exist", e.Model, e.Field)
}

// DuplicateModelError reports a registration attempt for a name that is
// already registered. The pre-existing entry is left untouched.
type DuplicateModelError struct {
	Name string
}

func (e DuplicateModelError) Error() string {
	return fmt.Sprintf("model %q already registered", e.Name)
}

// NotFoundError reports a lookup for an unregistered model name.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("model %q not registered", e.Name)
}

// RegistrySealedError reports a registration attempt after the registry was
// sealed.
type RegistrySealedError struct{}

func (e RegistrySealedError) Error() string {
	return "registry is sealed"
}
