package editor

import "errors"

// ErrRoomNotFound is returned by text-facing operations when no room has the given ID.
var ErrRoomNotFound = errors.New("room not found")
