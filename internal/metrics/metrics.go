// Package metrics exposes Prometheus collectors for the combat host.
// Labels are bounded (outcome, reason, kind); never label by player.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	castsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcana_casts_total",
		Help: "Cast attempts by outcome and rejection reason",
	}, []string{"status", "reason"})

	effectMagnitude = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arcana_effect_magnitude",
		Help:    "Magnitude of emitted effect intents",
		Buckets: []float64{10, 25, 50, 75, 100, 150, 200, 300},
	}, []string{"kind"})

	bonusesArmed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcana_combo_bonuses_armed_total",
		Help: "Combo bonuses armed by pattern",
	}, []string{"kind"})

	bonusesConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcana_combo_bonuses_consumed_total",
		Help: "Damage casts multiplied by an armed combo bonus",
	})

	combinationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcana_combinations_total",
		Help: "Resolved elemental combinations",
	}, []string{"combination"}) // bounded by the catalog

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcana_active_sessions",
		Help: "Players currently joined to the combat engine",
	})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcana_casts_rate_limited_total",
		Help: "Cast inputs dropped by the per-player limiter",
	})

	persistErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcana_persist_errors_total",
		Help: "Player Store write failures",
	}, []string{"op"}) // "mana", "skill"

	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcana_websocket_clients",
		Help: "Connected effect stream clients",
	})

	wsMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcana_websocket_messages_total",
		Help: "Effect messages broadcast to stream clients",
	})
)

// RecordCast counts one cast attempt.
func RecordCast(status, reason string) {
	castsTotal.WithLabelValues(status, reason).Inc()
}

// ObserveEffect records the magnitude of one emitted intent.
func ObserveEffect(kind string, magnitude float64) {
	effectMagnitude.WithLabelValues(kind).Observe(magnitude)
}

// RecordBonusArmed counts an armed combo bonus.
func RecordBonusArmed(kind string) {
	bonusesArmed.WithLabelValues(kind).Inc()
}

// RecordBonusConsumed counts a cast that applied a bonus multiplier.
func RecordBonusConsumed() {
	bonusesConsumed.Inc()
}

// RecordCombination counts a resolved combination.
func RecordCombination(id string) {
	combinationsTotal.WithLabelValues(id).Inc()
}

// SetActiveSessions updates the joined player gauge.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// RecordRateLimited counts a dropped cast input.
func RecordRateLimited() {
	rateLimited.Inc()
}

// RecordPersistError counts a failed Player Store write.
// op must be "mana" or "skill".
func RecordPersistError(op string) {
	persistErrors.WithLabelValues(op).Inc()
}

// SetWSClients updates the stream client gauge.
func SetWSClients(n int) {
	wsClients.Set(float64(n))
}

// IncWSMessages counts one broadcast message.
func IncWSMessages() {
	wsMessages.Inc()
}
