package factory

import "errors"

var (
	ErrUnknownParent = errors.New("factory: unknown parent")
	ErrNameTaken     = errors.New("factory: name already taken")
	ErrUnknownKind   = errors.New("factory: unknown kind")
	ErrNotFound      = errors.New("factory: entity not found")
	ErrEmptyName     = errors.New("factory: empty name")
	ErrCannotMove    = errors.New("factory: entity cannot be moved there")
	ErrPinned        = errors.New("factory: entity cannot be erased")
	ErrDestroyed     = errors.New("factory: parent has been destroyed")
)
