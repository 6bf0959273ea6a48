// Package navigation provides the redirect-to-login indirection shared
// by the session store and the REST client. Both trigger it on logout;
// neither knows what "going to the login screen" means for the caller.
package navigation

import (
	"fmt"
	"io"
)

// Navigator is invoked whenever the session ends and the user must
// re-authenticate. Implementations must be safe to call from a goroutine
// with no caller awaiting completion.
type Navigator func()

// Nop returns a Navigator that does nothing. Useful for SDK consumers
// that handle re-authentication themselves.
func Nop() Navigator {
	return func() {}
}

// LoginPrompt returns a Navigator that writes re-login guidance to w.
// This is the CLI's equivalent of redirecting to the login page.
func LoginPrompt(w io.Writer) Navigator {
	return func() {
		fmt.Fprintln(w, "Session ended. Run 'inkctl login' to sign in again.")
	}
}

// Invoke calls nav if it is non-nil.
func Invoke(nav Navigator) {
	if nav != nil {
		nav()
	}
}
