package ca

import "fmt"

// NotACaError reports that an authority tried to issue a certificate while
// its own certificate is not marked is_ca.
type NotACaError struct{ IssuerID string }

func (e *NotACaError) Error() string {
	return fmt.Sprintf("authority %q is not a CA and cannot issue certificates", e.IssuerID)
}
