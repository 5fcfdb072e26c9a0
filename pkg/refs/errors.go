package refs

import "errors"

// ErrInvalidDeclaration is returned when a reference declaration has a shape
// that cannot be turned into a Target, or when Init receives a value that is
// neither a declaration map nor a producer.
var ErrInvalidDeclaration = errors.New("refs: invalid reference declaration")

// ErrAlreadyCreated is returned when Created runs twice for the same instance.
var ErrAlreadyCreated = errors.New("refs: instance already created")

// ErrUnknownRef is returned by Refs.Require when the name was never declared.
var ErrUnknownRef = errors.New("refs: unknown reference")
