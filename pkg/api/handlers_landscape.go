package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Ashar-LUMS/boolnet/pkg/landscape"
	"github.com/Ashar-LUMS/boolnet/pkg/logging"
)

// handleLandscape runs the probabilistic relaxation solver
func (s *Server) handleLandscape(w http.ResponseWriter, r *http.Request) {
	var req LandscapeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	net, err := buildNetwork(req.Nodes, req.Edges, req.Options)
	if err != nil {
		s.metrics.RecordSolverRun("error", 0, 0)
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := landscape.DefaultSolverOptions()
	if len(req.Solver) > 0 {
		// Unmarshal over the defaults: fields the request names win, the
		// rest keep their default values.
		if err := json.Unmarshal(req.Solver, &opts); err != nil {
			s.metrics.RecordSolverRun("error", 0, 0)
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid solver options: %v", err))
			return
		}
	}

	start := time.Now()
	result, err := landscape.Solve(net, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, landscape.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		s.metrics.RecordSolverRun("error", time.Since(start), 0)
		s.respondError(w, status, err.Error())
		return
	}

	status := "converged"
	if !result.Converged {
		status = "max_iterations"
	}
	s.metrics.RecordSolverRun(status, time.Since(start), result.Iterations)
	s.logger.Info("landscape solve complete",
		logging.Mode("landscape"),
		logging.NodeCount(len(result.Order)),
		logging.Iterations(result.Iterations),
		logging.Bool("converged", result.Converged),
	)

	s.respondJSON(w, http.StatusOK, LandscapeResponse{
		Order:           result.Order,
		Probabilities:   result.Probabilities,
		PotentialEnergy: result.PotentialEnergy,
		Converged:       result.Converged,
		Iterations:      result.Iterations,
	})
}
