// Package generation produces the narrative vacation report for a filtered
// set of destinations through a text-generation model.
package generation

// Kind discriminates the possible results of a generation attempt.
type Kind string

const (
	// KindGenerated means a report text was produced.
	KindGenerated Kind = "GENERATED"
	// KindUnavailable means the deployment has no generation capability
	// configured. This is a steady state, not an error.
	KindUnavailable Kind = "UNAVAILABLE"
	// KindFailed means a configured capability errored on this attempt.
	KindFailed Kind = "FAILED"
)

// Outcome is the tagged result of a generation attempt. Callers branch on
// Kind instead of inspecting error values, so an unconfigured capability
// and a transport failure stay distinguishable.
type Outcome struct {
	Kind   Kind
	Report string
	Reason string
}

// Generated wraps a produced report text.
func Generated(report string) Outcome {
	return Outcome{Kind: KindGenerated, Report: report}
}

// Unavailable marks the capability as not configured.
func Unavailable(reason string) Outcome {
	return Outcome{Kind: KindUnavailable, Reason: reason}
}

// Failed marks a failed attempt against a configured capability.
func Failed(reason string) Outcome {
	return Outcome{Kind: KindFailed, Reason: reason}
}
