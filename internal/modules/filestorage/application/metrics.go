package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultStored   = "stored"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "image_uploads_total",
		Help: "Total number of upload attempts by result.",
	}, []string{"result"})

	uploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "image_upload_bytes_total",
		Help: "Total bytes written by successful uploads.",
	})
)
