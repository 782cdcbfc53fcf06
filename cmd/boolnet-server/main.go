package main

import (
	"flag"
	"os"

	"github.com/Ashar-LUMS/boolnet/pkg/api"
	"github.com/Ashar-LUMS/boolnet/pkg/logging"
	"github.com/Ashar-LUMS/boolnet/pkg/metrics"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	logLevel := flag.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	flag.Parse()

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))
	registry := metrics.NewRegistry()

	server := api.NewServer(*port, logger, registry)
	if err := server.Start(); err != nil {
		logger.Error("server failed", logging.Error(err))
		os.Exit(1)
	}
}
