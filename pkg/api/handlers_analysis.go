package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Ashar-LUMS/boolnet/pkg/dynamics"
	"github.com/Ashar-LUMS/boolnet/pkg/logging"
	"github.com/Ashar-LUMS/boolnet/pkg/rules"
)

// handleAnalyzeRules runs an attractor search over a rule-defined network
func (s *Server) handleAnalyzeRules(w http.ResponseWriter, r *http.Request) {
	var req RuleAnalysisRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), searchTimeout(req.TimeoutSeconds))
	defer cancel()

	opts := dynamics.DefaultSearchOptions()
	opts.Workers = req.Workers

	start := time.Now()
	result, codec, err := runRuleSearch(ctx, &req, opts)
	if err != nil {
		s.analysisError(w, "rules", err)
		return
	}

	s.metrics.RecordAnalysis("rules", "ok", time.Since(start), result.ExploredStateCount, len(result.Attractors), result.Truncated)
	s.logger.Info("rule analysis complete",
		logging.AnalysisID(result.AnalysisID),
		logging.Mode("rules"),
		logging.NodeCount(codec.Len()),
		logging.Attractors(len(result.Attractors)),
		logging.StatesExplored(result.ExploredStateCount),
	)
	s.respondJSON(w, http.StatusOK, toAnalysisResponse(result, codec))
}

// handleAnalyzeThreshold runs an attractor search over a weighted network
func (s *Server) handleAnalyzeThreshold(w http.ResponseWriter, r *http.Request) {
	var req ThresholdAnalysisRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), searchTimeout(req.TimeoutSeconds))
	defer cancel()

	opts := dynamics.DefaultSearchOptions()
	opts.Workers = req.Workers

	start := time.Now()
	result, codec, err := runThresholdSearch(ctx, &req, opts)
	if err != nil {
		s.analysisError(w, "threshold", err)
		return
	}

	s.metrics.RecordAnalysis("threshold", "ok", time.Since(start), result.ExploredStateCount, len(result.Attractors), result.Truncated)
	s.logger.Info("threshold analysis complete",
		logging.AnalysisID(result.AnalysisID),
		logging.Mode("threshold"),
		logging.NodeCount(codec.Len()),
		logging.Attractors(len(result.Attractors)),
		logging.StatesExplored(result.ExploredStateCount),
	)
	s.respondJSON(w, http.StatusOK, toAnalysisResponse(result, codec))
}

// analysisError maps engine failures onto the error envelope. Compilation
// problems carry their full line-numbered list.
func (s *Server) analysisError(w http.ResponseWriter, mode string, err error) {
	var compileErrs rules.ErrorList
	if errors.As(err, &compileErrs) {
		s.metrics.RecordCompilationFailure()
		s.metrics.AnalysesTotal.WithLabelValues(mode, "compile_error").Inc()
		s.respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "rule compilation failed",
			Errors: ruleErrorItems(compileErrs),
		})
		return
	}

	s.metrics.AnalysesTotal.WithLabelValues(mode, "error").Inc()
	s.logger.Warn("analysis rejected", logging.Mode(mode), logging.Error(err))
	s.respondError(w, http.StatusBadRequest, err.Error())
}
