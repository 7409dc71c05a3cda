package playback

import "errors"

var errLoopStarted = errors.New("playback: loop already running")
