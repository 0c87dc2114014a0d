package llm

import "fmt"

// FailureKind categorizes why a provider call did not produce text.
type FailureKind int

const (
	// FailureNone is the zero value used when no failure is recorded.
	FailureNone FailureKind = iota
	// FailureMissingCredential means no credential was available; no call was made.
	FailureMissingCredential
	// FailureRateLimited means the provider reported HTTP 429.
	FailureRateLimited
	// FailureProvider means the provider returned an explicit error payload.
	FailureProvider
	// FailureTimeout means the call deadline elapsed first.
	FailureTimeout
	// FailureNetwork means a transport-level fault.
	FailureNetwork
	// FailureInternal means the call failed inside this process, such as a
	// recovered panic. Its message is never shown to the user.
	FailureInternal
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureMissingCredential:
		return "missing_credential"
	case FailureRateLimited:
		return "rate_limited"
	case FailureProvider:
		return "provider_error"
	case FailureTimeout:
		return "timeout"
	case FailureNetwork:
		return "network_fault"
	case FailureInternal:
		return "internal"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Failure is a classified provider fault.
type Failure struct {
	Message string
	Kind    FailureKind
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// OutcomeKind tags which variant an Outcome holds.
type OutcomeKind int

const (
	// OutcomeEmpty is a well-formed response with no usable text.
	OutcomeEmpty OutcomeKind = iota
	// OutcomeText carries response text.
	OutcomeText
	// OutcomeFailure carries a Failure.
	OutcomeFailure
)

// Outcome is the result of one provider attempt or of a whole attempt sequence.
type Outcome struct {
	Failure *Failure
	Text    string
	Kind    OutcomeKind
	// Cause records the last retryable failure seen before an attempt
	// sequence ended Empty, so callers can tell exhaustion from silence.
	Cause FailureKind
}

// TextOutcome wraps response text.
func TextOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeText, Text: text}
}

// EmptyOutcome is a response that carried no text.
func EmptyOutcome() Outcome {
	return Outcome{Kind: OutcomeEmpty}
}

// FailureOutcome wraps a classified fault.
func FailureOutcome(kind FailureKind, message string) Outcome {
	return Outcome{Kind: OutcomeFailure, Failure: &Failure{Kind: kind, Message: message}}
}

// FailureKind returns the failure kind, or FailureNone when the outcome is not a failure.
func (o Outcome) FailureKind() FailureKind {
	if o.Kind != OutcomeFailure || o.Failure == nil {
		return FailureNone
	}
	return o.Failure.Kind
}
