package engine

import "sync/atomic"

var crashHandler atomic.Pointer[func(any)]

// SetCrashHandler installs the panic handler used by Go and Loop
// Injected by main so engine stays independent of the terminal package
func SetCrashHandler(fn func(any)) {
	crashHandler.Store(&fn)
}

// HandleCrash forwards a recovered panic to the installed handler, re-panicking without one
func HandleCrash(r any) {
	if r == nil {
		return
	}
	if h := crashHandler.Load(); h != nil && *h != nil {
		(*h)(r)
		return
	}
	panic(r)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
