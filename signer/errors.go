package signer

// InvalidChainError reports that a chain passed to New cannot be used by
// this signer, for a reason other than the structural checks in certutil.
type InvalidChainError struct{ Reason string }

func (e *InvalidChainError) Error() string { return "invalid chain: " + e.Reason }
