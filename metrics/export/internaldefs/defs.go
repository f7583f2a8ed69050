package internaldefs

import (
	authfront "github.com/dkarlsn/authfront"
)

// CounterDef defines a public type used by authfront APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authfront.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by authfront APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   authfront.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the metrics exporters.
var CounterDefs = []CounterDef{
	{ID: authfront.MetricLoginSuccess, Name: "authfront_login_success_total", Help: "Successful login attempts."},
	{ID: authfront.MetricLoginFailure, Name: "authfront_login_failure_total", Help: "Failed login attempts."},
	{ID: authfront.MetricVerifySuccess, Name: "authfront_verify_success_total", Help: "Verifications settled authenticated."},
	{ID: authfront.MetricVerifyRejected, Name: "authfront_verify_rejected_total", Help: "Verifications where the identity service rejected the artifact."},
	{ID: authfront.MetricVerifyTransportFailure, Name: "authfront_verify_transport_failure_total", Help: "Verifications failed by transport or storage errors."},
	{ID: authfront.MetricVerifySkipped, Name: "authfront_verify_skipped_total", Help: "Verifications settled without a network call (no stored artifact)."},
	{ID: authfront.MetricVerifyDeduplicated, Name: "authfront_verify_deduplicated_total", Help: "Callers that awaited an in-flight verification."},
	{ID: authfront.MetricLogout, Name: "authfront_logout_total", Help: "Logout operations."},
	{ID: authfront.MetricGateAdmitted, Name: "authfront_gate_admitted_total", Help: "Classified requests admitted by the gate."},
	{ID: authfront.MetricGateRedirectedLogin, Name: "authfront_gate_redirected_login_total", Help: "Protected requests redirected to the login path."},
	{ID: authfront.MetricGateRedirectedApp, Name: "authfront_gate_redirected_app_total", Help: "Credentialed login-path requests redirected to the protected root."},
	{ID: authfront.MetricGuardAllowed, Name: "authfront_guard_allowed_total", Help: "Requests passed by endpoint verification."},
	{ID: authfront.MetricGuardRejected, Name: "authfront_guard_rejected_total", Help: "Requests rejected by endpoint verification."},
}

// HistogramDefs is an exported constant or variable used by the metrics exporters.
var HistogramDefs = []HistogramDef{
	{ID: authfront.MetricVerifyLatency, Name: "authfront_verify_latency_seconds", Help: "Identity verification latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the metrics exporters.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the metrics exporters.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
