package utils

import "time"

func TimeToTimestamp(t time.Time) int64 {
	return t.Unix()
}
