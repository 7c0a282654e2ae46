package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Marketplace_Hub/internal/graph"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
)

// maxBodyBytes caps the size of a GraphQL request body.
const maxBodyBytes = 1 << 20

type graphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type GraphQLHandler struct {
	Schema *graph.Schema
}

func NewGraphQLHandler(schema *graph.Schema) *GraphQLHandler {
	return &GraphQLHandler{Schema: schema}
}

// POST /graphql with a JSON body, or GET /graphql?query=...
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if vars := q.Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				writeError(w, http.StatusBadRequest, "variables must be a JSON object")
				return
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			logger.Log.WithError(err).Warn("Invalid GraphQL request body")
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Must provide query string")
		return
	}

	result := h.Schema.Do(r.Context(), req.Query, req.Variables, req.OperationName)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Log.WithError(err).Error("Failed to encode GraphQL response")
	}
}

type errorBody struct {
	Errors []map[string]string `json:"errors"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Errors: []map[string]string{{"message": message}}})
}
