package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// requestSchemas maps the schema route name to the request body it describes.
var requestSchemas = map[string]any{
	"compile":  CompileRequest{},
	"evaluate": EvaluateRequest{},
	"signals":  SignalsRequest{},
}

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["request"]

	request, ok := requestSchemas[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "unknown request schema: " + name,
			Code:  errors.ErrCodeDataNotFound,
		})

		return
	}

	schema, err := ToJSONSchema(request)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(schema))
}
