package forest

import "errors"

var (
	// ErrInvalidArgument reports a nil or otherwise unusable argument. No
	// tree is touched when it is returned.
	ErrInvalidArgument = errors.New("forest: invalid argument")
	// ErrTreeUpdate wraps an error returned by Tree.Update.
	ErrTreeUpdate = errors.New("forest: tree update failed")
	// ErrTraversal wraps an error from a visitor factory or a tree walk.
	ErrTraversal = errors.New("forest: traversal failed")
	// ErrCoordinator wraps an error returned by the Coordinator.
	ErrCoordinator = errors.New("forest: coordinator failed")
)
