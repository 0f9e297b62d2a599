package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshTotal counts catalog refresh outcomes by result
	// (success, fetch_error, parse_error).
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modcatalog_refresh_total",
		Help: "Catalog refresh attempts by result.",
	}, []string{"result"})

	// CacheFallbackTotal counts refreshes served from the persistent cache
	// after a live fetch failure.
	CacheFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modcatalog_cache_fallback_total",
		Help: "Refreshes that fell back to the cached catalog.",
	})

	// CatalogItems tracks the size of the current snapshot.
	CatalogItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "modcatalog_items",
		Help: "Number of items in the current catalog snapshot.",
	})
)
