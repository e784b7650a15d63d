package go_func_utils

import (
	"fmt"
	"log"
	"runtime/debug"
)

// SafeGo runs fn on a new goroutine. A panic is logged with its stack before
// being re-raised, since the curses UI swallows anything written to stderr.
func SafeGo(logger *log.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}

// Recover runs fn and turns a panic into an error, so a misbehaving pose
// source fails one frame instead of the whole process
func Recover(logger *log.Logger, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
			err = fmt.Errorf("%s panicked: %v", name, r)
		}
	}()
	return fn()
}
