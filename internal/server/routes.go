package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(resultsService *ResultsService) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/import", resultsService.ImportResults)
	mux.HandleFunc("/results/", resultsService.GetAggregate)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
