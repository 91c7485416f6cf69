package quiz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizzesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "econolearn_quizzes_generated_total",
		Help: "Quizzes generated, labeled by collection id.",
	}, []string{"collection"})

	wrongRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "econolearn_wrong_questions_recorded_total",
		Help: "Question ids submitted as wrong answers.",
	})

	reviewsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "econolearn_review_sessions_built_total",
		Help: "Review sessions assembled from missed-question sets.",
	})
)
