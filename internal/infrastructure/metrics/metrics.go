package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	UsersCreated   prometheus.Counter
	CreditsApplied prometheus.Counter
	DebitsApplied  prometheus.Counter
	EscrowMoved    prometheus.Counter
	EscrowReleased prometheus.Counter
	PayoutAmount   prometheus.Histogram

	// Wager metrics
	WagersOpened         prometheus.Counter
	WagersClosed         prometheus.Counter
	WagerJoins           prometheus.Counter
	StakeAmount          prometheus.Histogram
	SettlementsCompleted *prometheus.CounterVec
	SettlementDuration   prometheus.Histogram

	// Reconciliation metrics
	ReconciliationFailures prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	EventsPublished    prometheus.Counter
	EventPublishErrors prometheus.Counter
	OutboxQueueDepth   prometheus.Gauge
	IdempotencyReplays prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_users_created_total",
			Help: "Total number of users registered",
		}),
		CreditsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_credits_applied_total",
			Help: "Total number of credit operations applied",
		}),
		DebitsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_debits_applied_total",
			Help: "Total number of debit operations applied",
		}),
		EscrowMoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_escrow_moves_total",
			Help: "Total number of stakes moved into escrow",
		}),
		EscrowReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_escrow_releases_total",
			Help: "Total number of stakes released from escrow",
		}),
		PayoutAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wagerbank_payout_amount",
			Help:    "Amounts credited to winners at settlement, stake included",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		WagersOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_wagers_opened_total",
			Help: "Total number of wagers opened",
		}),
		WagersClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_wagers_closed_total",
			Help: "Total number of wagers closed to new participants",
		}),
		WagerJoins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_wager_joins_total",
			Help: "Total number of stakes placed",
		}),
		StakeAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wagerbank_stake_amount",
			Help:    "Stake amounts placed on wagers",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		SettlementsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerbank_settlements_completed_total",
				Help: "Total number of settlements by outcome",
			},
			[]string{"outcome"},
		),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wagerbank_settlement_duration_seconds",
			Help:    "Duration of settlement transactions",
			Buckets: prometheus.DefBuckets,
		}),

		ReconciliationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_reconciliation_failures_total",
			Help: "Total number of balances that failed reconciliation",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerbank_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wagerbank_http_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerbank_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wagerbank_db_duration_seconds",
				Help:    "Duration of database queries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "wagerbank_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerbank_db_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerbank_redis_operations_total",
				Help: "Total number of Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerbank_redis_errors_total",
				Help: "Total number of Redis errors",
			},
			[]string{"operation"},
		),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_events_published_total",
			Help: "Total number of outbox events published",
		}),
		EventPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_event_publish_errors_total",
			Help: "Total number of outbox publish failures",
		}),
		OutboxQueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "wagerbank_outbox_queue_depth",
			Help: "Number of unpublished outbox events at last poll",
		}),
		IdempotencyReplays: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerbank_idempotency_replays_total",
			Help: "Total number of requests answered from the idempotency cache",
		}),
	}
}
