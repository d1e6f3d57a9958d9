package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// NotificationBatches counts publish notification batches by outcome:
	// sent, failed, skipped (no transport or no recipients).
	NotificationBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsroom",
		Name:      "notification_batches_total",
		Help:      "Publish notification batches by outcome.",
	}, []string{"outcome"})

	NotificationMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "newsroom",
		Name:      "notification_messages_total",
		Help:      "Individual notification messages handed to the mail transport.",
	})

	// APIKeyAuth counts API key authentication attempts: ok, invalid.
	APIKeyAuth = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsroom",
		Name:      "api_key_auth_total",
		Help:      "API key authentication attempts by result.",
	}, []string{"result"})

	ArticleTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsroom",
		Name:      "article_transitions_total",
		Help:      "Article status transitions by target status.",
	}, []string{"status"})
)

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
