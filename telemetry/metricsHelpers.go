package telemetry

import "time"

// ObserveOutboundCall records one partner call.
func ObserveOutboundCall(target, outcome string, d time.Duration) {
	outboundCallsTotal.WithLabelValues(target, outcome).Inc()
	outboundCallDurationSeconds.WithLabelValues(target).Observe(d.Seconds())
}

// Increments the CPF validation counter labeled by result.
func IncCPFValidation(valid bool) {
	lbl := "invalid"
	if valid {
		lbl = "valid"
	}
	cpfValidationsTotal.WithLabelValues(lbl).Inc()
}

func IncLoanRequestsCreated() {
	loanRequestsCreatedTotal.Inc()
}

func IncLoanRequestsDeleted() {
	loanRequestsDeletedTotal.Inc()
}

// Increments the failure counter with a bounded reason.
// Reasons: "validation", "db", "not_found".
func IncLoanRequestsFailed(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	loanRequestsFailedTotal.WithLabelValues(reason).Inc()
}

func IncEventsPublished() {
	eventsPublishedTotal.Inc()
}

// Reasons: "schema", "kafka".
func IncEventsFailed(reason string) {
	eventsFailedTotal.WithLabelValues(reason).Inc()
}

func IncEventsDropped() {
	eventsDroppedTotal.Inc()
}

// Sets the current queue size gauge.
func SetEventsQueueCurrent(n int) {
	eventsQueueCurrent.Set(float64(n))
}

func IncRateLimitDecision(allowed bool) {
	lbl := "denied"
	if allowed {
		lbl = "allowed"
	}
	rateLimitDecisionsTotal.WithLabelValues(lbl).Inc()
}
