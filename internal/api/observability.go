// Observability: Prometheus metrics and a localhost-only debug server with
// pprof. The debug surface never binds a public interface.
package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// =============================================================================
// METRICS
// =============================================================================

var (
	// Frame loop health
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sandlot_tick_duration_seconds",
		Help:    "Duration of one simulation frame",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs .. ~400ms
	})

	// Session lifecycle
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sandlot_active_sessions",
		Help: "Number of live simulation sessions",
	})
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sandlot_sessions_created_total",
		Help: "Total sessions created since start",
	})

	// Gameplay throughput
	pitchesThrown = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sandlot_pitches_total",
		Help: "Total pitches thrown across all sessions",
	})
	swingsTaken = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sandlot_swings_total",
		Help: "Total swings triggered across all sessions",
	})
	playOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sandlot_play_outcomes_total",
		Help: "Resolved plays by outcome",
	}, []string{"outcome"}) // bounded: out/single/double/triple/homeRun/error

	// Connection handling
	wsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sandlot_websocket_connections",
		Help: "Currently connected websocket clients",
	})
	connectionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sandlot_connections_rejected_total",
		Help: "Rejected connections by reason",
	}, []string{"reason"}) // bounded: rate_limit/origin/capacity
)

// RecordTickDuration observes one frame's wall time.
func RecordTickDuration(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

// RecordSessionCreated bumps the session counters.
func RecordSessionCreated() {
	sessionsCreated.Inc()
	activeSessions.Inc()
}

// RecordSessionClosed decrements the live-session gauge.
func RecordSessionClosed() {
	activeSessions.Dec()
}

// RecordPitch counts a pitch command accepted by a controller.
func RecordPitch() {
	pitchesThrown.Inc()
}

// RecordSwing counts a swing command accepted by a controller.
func RecordSwing() {
	swingsTaken.Inc()
}

// RecordPlayOutcome counts one resolved play. The label set is bounded by
// the fielding outcome enum.
func RecordPlayOutcome(outcome string) {
	playOutcomes.WithLabelValues(outcome).Inc()
}

// RecordWSConnect / RecordWSDisconnect track the websocket gauge.
func RecordWSConnect()    { wsConnections.Inc() }
func RecordWSDisconnect() { wsConnections.Dec() }

// RecordConnectionRejected counts a rejected connection by reason.
func RecordConnectionRejected(reason string) {
	connectionsRejected.WithLabelValues(reason).Inc()
}

// =============================================================================
// DEBUG SERVER
// =============================================================================

// localhostOnly rejects requests that did not arrive over loopback.
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := GetClientIP(r)
		if ip != "127.0.0.1" && ip != "::1" && !strings.HasPrefix(ip, "127.") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StartDebugServer serves /metrics and /debug/pprof on a localhost-only
// listener. Runs in its own goroutine; errors are logged, not fatal.
func StartDebugServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	srv := &http.Server{
		Addr:         addr,
		Handler:      localhostOnly(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("🔍 Debug server on %s (metrics + pprof, localhost only)", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("⚠️ Debug server error: %v", err)
		}
	}()
}
