package display

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// GenericError is the only error text shown to users without asking for details
const GenericError = "Error: check error details"

// Notice is the user-facing rendering of a failure.
// Ref lets callers tie the notice to a log line carrying the same details.
type Notice struct {
	Message string `json:"error"`
	Details string `json:"details"`
	Ref     string `json:"ref"`
}

// NewNotice wraps err into a Notice under a fresh reference.
// It does not log; the caller decides where the details may be written.
func NewNotice(err error) Notice {
	return Notice{
		Message: GenericError,
		Details: err.Error(),
		Ref:     uuid.NewString(),
	}
}

// Render writes the notice; details are included only when showDetails is set
func (n Notice) Render(w io.Writer, showDetails bool) {
	fmt.Fprintf(w, "%s (ref %s)\n", n.Message, n.Ref)
	if showDetails {
		fmt.Fprintf(w, "\nError Details:\n  %s\n", n.Details)
	} else {
		fmt.Fprintln(w, "Run again with --details to see the full error.")
	}
}
