package api

import (
	"errors"
	"net/http"

	"github.com/Ashar-LUMS/boolnet/pkg/rules"
)

// handleValidateRules compiles a rule set without running a search, so
// editors can surface every problem in one round trip.
func (s *Server) handleValidateRules(w http.ResponseWriter, r *http.Request) {
	var req ValidateRulesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	rs, err := rules.Compile(req.Rules)
	if err != nil {
		var compileErrs rules.ErrorList
		if errors.As(err, &compileErrs) {
			s.metrics.RecordCompilationFailure()
			s.respondJSON(w, http.StatusOK, ValidateRulesResponse{
				Valid:  false,
				Errors: ruleErrorItems(compileErrs),
			})
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, ValidateRulesResponse{
		Valid:   true,
		Targets: rs.Targets(),
	})
}
