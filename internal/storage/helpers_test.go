package storage

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func cmpIgnoreTimes() cmp.Option {
	return cmpopts.IgnoreFields(Run{}, "StartedAt", "FinishedAt")
}
