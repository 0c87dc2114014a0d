package llm

import (
	"regexp"
	"strings"
)

// User-facing messages returned by the gateway.
const (
	MissingCredentialMessage = "Add an AI API key to get insights."
	BusyMessage              = "Processing... Please wait a second."
	TimeoutMessage           = "Request timed out. Please check your connection and try again."
	QuotaMessage             = "Quota exceeded. Check your Google AI Studio plan or wait 60 seconds."
	ModelNotFoundMessage     = "Model not found. Try changing the AI model in Settings."
	NoResponseMessage        = "No response"
	NoInsightMessage         = "Keep tracking your expenses to see insights!"
	UnexpectedMessage        = "AI Error: unexpected failure"

	errorPrefix = "AI Error: "
)

// ClassifyFailure maps a failure to the message shown to the user. The first
// matching rule wins: timeout, then quota, then model not found, then passthrough.
// Matching is case-sensitive.
func ClassifyFailure(kind FailureKind, raw string) string {
	switch {
	case kind == FailureMissingCredential:
		return MissingCredentialMessage
	case kind == FailureInternal:
		return UnexpectedMessage
	case kind == FailureTimeout || strings.Contains(raw, "timeout"):
		return TimeoutMessage
	case strings.Contains(raw, "quota") || strings.Contains(raw, "429"):
		return QuotaMessage
	case strings.Contains(raw, "NOT_FOUND") || strings.Contains(raw, "404"):
		return ModelNotFoundMessage
	default:
		return errorPrefix + raw
	}
}

// IsFailureReply reports whether reply is any of the gateway's failure notices.
func IsFailureReply(reply string) bool {
	switch reply {
	case MissingCredentialMessage, BusyMessage, TimeoutMessage, QuotaMessage, ModelNotFoundMessage:
		return true
	}
	return IsErrorMessage(reply)
}

// IsErrorMessage reports whether a gateway reply is a passthrough error.
func IsErrorMessage(reply string) bool {
	return strings.HasPrefix(reply, errorPrefix)
}

// minRedactLength is the shortest credential replaced literally. Shorter
// values are left to the pattern rules.
const minRedactLength = 8

var (
	keyParam    = regexp.MustCompile(`([?&]key=)[^&\s"]+`)
	bearerToken = regexp.MustCompile(`(?i)(bearer\s+)\S+`)
	openAIKey   = regexp.MustCompile(`(?i)\bsk-[A-Za-z0-9_\-]{4,}`)
)

// Redact removes credential material from s. It replaces the credential itself
// when it is long enough to be a real key, then masks key query parameters,
// bearer tokens and anything shaped like an OpenAI key.
func Redact(s, credential string) string {
	if len(credential) >= minRedactLength {
		s = strings.ReplaceAll(s, credential, "[redacted]")
	}
	s = keyParam.ReplaceAllString(s, "${1}[redacted]")
	s = bearerToken.ReplaceAllString(s, "${1}[redacted]")
	return openAIKey.ReplaceAllString(s, "[redacted]")
}

// MaskCredential shows only the last four characters of a credential.
func MaskCredential(credential string) string {
	if len(credential) <= 4 {
		return strings.Repeat("*", len(credential))
	}
	return strings.Repeat("*", len(credential)-4) + credential[len(credential)-4:]
}
