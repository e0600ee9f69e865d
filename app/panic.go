package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"fbsnake/hal"
)

// guardStep turns a panic inside step into an error so the runner unwinds
// normally and releases the display. The panic value and stack go to the log.
func guardStep(l hal.Logger, step hal.StepFunc) hal.StepFunc {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			l.WriteLineString(fmt.Sprintf("fbsnake panic: %v", v))
			for _, line := range strings.Split(string(debug.Stack()), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
			err = fmt.Errorf("app: panic: %v", v)
		}()
		return step()
	}
}
