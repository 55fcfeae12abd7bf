package main

import "time"

// nowUnix returns the current wall-clock time as seconds since the
// POSIX epoch, the timestamp a commit is stamped with.
func nowUnix() int64 {
	return time.Now().Unix()
}
