// Package llm provides the AI request gateway used by the budgeting assistant.
// The shape of the user's credential picks a Gemini-compatible or an
// OpenAI-compatible backend; every call then passes a single-flight throttle
// and a retrying, deadline-bounded attempt sequence before its outcome is
// turned into display text.
package llm
