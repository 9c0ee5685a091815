package service

import "errors"

var (
	// ErrSelfLink is returned when a resource is linked under itself.
	ErrSelfLink = errors.New("a resource cannot contain itself")
	// ErrLinkCycle is returned when a link would make a resource its own ancestor.
	ErrLinkCycle = errors.New("link would create a cycle")
	// ErrLinkTooDeep is returned when a link would push a subtree past the
	// maximum navigation depth.
	ErrLinkTooDeep = errors.New("link would exceed maximum navigation depth")
	// ErrPositionTaken is returned when another child already holds the
	// requested position under the same parent.
	ErrPositionTaken = errors.New("position already taken by a sibling")
	// ErrInvalidInput marks caller mistakes such as an empty type or name.
	ErrInvalidInput = errors.New("invalid input")
)
