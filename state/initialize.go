package state

import (
	"time"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}
