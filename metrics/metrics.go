package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PurchasesCreated counts committed purchases.
	PurchasesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tastehub",
		Subsystem: "orders",
		Name:      "purchases_created_total",
		Help:      "Number of purchases committed together with their stock reservation.",
	})

	// ReservationConflicts counts conditional stock reservations that touched
	// zero rows, i.e. lost races or stock drained between check and commit.
	ReservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tastehub",
		Subsystem: "orders",
		Name:      "reservation_conflicts_total",
		Help:      "Number of stock reservations refused at write time.",
	})

	// MessagesSent counts persisted chat messages by sender side.
	MessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tastehub",
		Subsystem: "chat",
		Name:      "messages_sent_total",
		Help:      "Number of chat messages persisted.",
	}, []string{"sender"})
)
