//go:build !unix

package local

import (
	"errors"
	"os"
)

var errNoPause = errors.New("pausing speech is not supported on this platform")

func suspend(*os.Process) error { return errNoPause }

func resume(*os.Process) error { return nil }
