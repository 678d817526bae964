package comm

import "errors"

var (
	// ErrKindMismatch is returned when a broadcast buffer's element type does
	// not match the declared Kind.
	ErrKindMismatch = errors.New("comm: buffer does not match element kind")

	// ErrCollectiveMismatch is returned when a rank's broadcast disagrees with
	// the coordinator's in length or kind.
	ErrCollectiveMismatch = errors.New("comm: collective call does not match coordinator")

	// ErrAborted is returned from collectives of a group whose launch failed on
	// another rank.
	ErrAborted = errors.New("comm: group aborted")

	// ErrUnknownModel is returned for unregistered execution model names.
	ErrUnknownModel = errors.New("comm: unknown execution model")

	// ErrInvalidLaunch is returned when a launch configuration cannot be
	// satisfied by its model.
	ErrInvalidLaunch = errors.New("comm: invalid launch configuration")
)
