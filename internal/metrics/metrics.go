package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// HTTP endpoints
	EndpointRoot        = "api_root"
	EndpointUsers       = "users"
	EndpointTeams       = "teams"
	EndpointActivities  = "activities"
	EndpointLeaderboard = "leaderboard"
	EndpointWorkouts    = "workouts"
	EndpointHealth      = "health"

	// Recompute results
	ResultSuccess = "success"
	ResultFailure = "failure"

	// Entity types
	EntityUsers       = "users"
	EntityTeams       = "teams"
	EntityActivities  = "activities"
	EntityLeaderboard = "leaderboard"
	EntityWorkouts    = "workouts"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint", "status_code"},
	)
)

// Leaderboard Metrics
var (
	LeaderboardRecomputesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_recomputes_total",
			Help: "Total number of leaderboard recompute passes by result",
		},
		[]string{"result"},
	)

	LeaderboardRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leaderboard_recompute_duration_seconds",
			Help:    "Time spent recomputing aggregates and ranks",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	LeaderboardSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leaderboard_size",
			Help: "Number of leaderboard entries at the last recompute",
		},
	)
)

// Seed Metrics
var (
	SeedRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_runs_total",
			Help: "Total number of reset-and-repopulate runs by result",
		},
		[]string{"result"},
	)
)

// Entity Metrics
var (
	EntityRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "entity_rows",
			Help: "Number of stored rows per entity type",
		},
		[]string{"entity"},
	)
)
