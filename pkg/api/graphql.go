package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/Ashar-LUMS/boolnet/pkg/dynamics"
	"github.com/Ashar-LUMS/boolnet/pkg/rules"
)

// graphQLRequest is the standard GraphQL HTTP payload
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

var ruleErrorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RuleError",
	Fields: graphql.Fields{
		"line":    &graphql.Field{Type: graphql.Int},
		"message": &graphql.Field{Type: graphql.String},
	},
})

var ruleValidationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RuleValidation",
	Fields: graphql.Fields{
		"valid":   &graphql.Field{Type: graphql.Boolean},
		"targets": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"errors":  &graphql.Field{Type: graphql.NewList(ruleErrorType)},
	},
})

var attractorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Attractor",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.Int},
		"kind":       &graphql.Field{Type: graphql.String},
		"period":     &graphql.Field{Type: graphql.Int},
		"states":     &graphql.Field{Type: graphql.NewList(graphql.String)},
		"basinSize":  &graphql.Field{Type: graphql.Float},
		"basinShare": &graphql.Field{Type: graphql.Float},
	},
})

var analysisType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Analysis",
	Fields: graphql.Fields{
		"analysisId":         &graphql.Field{Type: graphql.String},
		"order":              &graphql.Field{Type: graphql.NewList(graphql.String)},
		"attractors":         &graphql.Field{Type: graphql.NewList(attractorType)},
		"exploredStateCount": &graphql.Field{Type: graphql.Float},
		"totalStateSpace":    &graphql.Field{Type: graphql.Float},
		"truncated":          &graphql.Field{Type: graphql.Boolean},
		"warnings":           &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

// buildSchema wires the read-only GraphQL mirror of the REST surface.
func (s *Server) buildSchema() (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"validateRules": &graphql.Field{
				Type: ruleValidationType,
				Args: graphql.FieldConfigArgument{
					"rules": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					lines, err := stringListArg(p.Args, "rules")
					if err != nil {
						return nil, err
					}

					rs, err := rules.Compile(lines)
					var compileErrs rules.ErrorList
					if errors.As(err, &compileErrs) {
						return ValidateRulesResponse{Valid: false, Errors: ruleErrorItems(compileErrs)}, nil
					}
					if err != nil {
						return nil, err
					}
					return ValidateRulesResponse{Valid: true, Targets: rs.Targets()}, nil
				},
			},
			"analyzeRules": &graphql.Field{
				Type: analysisType,
				Args: graphql.FieldConfigArgument{
					"rules": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					lines, err := stringListArg(p.Args, "rules")
					if err != nil {
						return nil, err
					}

					req := RuleAnalysisRequest{Rules: lines}
					result, codec, err := runRuleSearch(p.Context, &req, dynamics.DefaultSearchOptions())
					if err != nil {
						return nil, err
					}
					return toAnalysisResponse(result, codec), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// stringListArg extracts a [String!]! argument
func stringListArg(args map[string]any, name string) ([]string, error) {
	raw, ok := args[name].([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a list of strings", name)
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("argument %q must be a list of strings", name)
		}
		out[i] = s
	}
	return out, nil
}

// handleGraphQL executes a GraphQL query against the engine schema
func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	schema, err := s.schema()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "schema unavailable")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultSearchTimeout)
	defer cancel()

	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        ctx,
	})
	s.respondJSON(w, http.StatusOK, result)
}
