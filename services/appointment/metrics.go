package appointment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var validationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "school_health_appointment_validations_total",
	Help: "Appointment window validations by outcome",
}, []string{"outcome"})

func observe(r Result) {
	validationCounter.WithLabelValues(r.Violation.String()).Inc()
}
