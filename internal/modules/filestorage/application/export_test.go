package application

import "github.com/prometheus/client_golang/prometheus"

func UploadsTotal() *prometheus.CounterVec { return uploadsTotal }
