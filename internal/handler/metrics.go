package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// generationFallbackTotal считает подстановки заготовок: ответ модели
	// не разобрался и клиент получил детерминированный fallback.
	generationFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velia_generation_fallback_total",
			Help: "Total number of responses served from the deterministic fallback payload.",
		},
		[]string{"kind"},
	)

	// recapMalformedSegments считает строки пересказа без корректного
	// таймкода [MM:SS–MM:SS]. Текст при этом не исправляется.
	recapMalformedSegments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "velia_recap_malformed_segments_total",
			Help: "Total number of recap lines that do not start with a well-formed timestamp.",
		},
	)
)
