package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rxtech-lab/argo-formula/internal/formula"
	"github.com/rxtech-lab/argo-formula/internal/strategy"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
	"go.uber.org/zap"
)

type CompileRequest struct {
	Formula string `json:"formula" validate:"required"`
}

type CompileResponse struct {
	OK  bool   `json:"ok"`
	AST string `json:"ast"`
}

type EvaluateRequest struct {
	Formula string       `json:"formula" validate:"required"`
	Close   types.Series `json:"close" validate:"required"`
}

type EvaluateResponse struct {
	Series types.Series `json:"series"`
}

type SignalsRequest struct {
	Left     string       `json:"left"`
	Operator string       `json:"operator" validate:"required"`
	Right    string       `json:"right" validate:"required"`
	Close    types.Series `json:"close" validate:"required"`
}

type SignalsResponse struct {
	Name    string         `json:"name"`
	Signals []types.Signal `json:"signals"`
}

type FunctionsResponse struct {
	Functions []string `json:"functions"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse carries the error message verbatim with its numeric code.
type ErrorResponse struct {
	Error string           `json:"error"`
	Code  errors.ErrorCode `json:"code"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req CompileRequest
	if !s.decode(w, r, &req) {
		return
	}

	compiled, err := s.cache.Compile(req.Formula)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CompileResponse{OK: true, AST: compiled.AST().String()})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	series, err := s.cache.Evaluate(req.Formula, formula.NewEvaluationContext(req.Close))
	s.metrics.ObserveEvaluation("api", time.Since(start))

	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, EvaluateResponse{Series: series})
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	var req SignalsRequest
	if !s.decode(w, r, &req) {
		return
	}

	rule, err := strategy.NewRule(req.Left, req.Operator, req.Right)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := formula.NewEvaluationContext(req.Close)

	start := time.Now()

	left, err := s.cache.Evaluate(rule.Left, ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	right, err := s.cache.Evaluate(rule.Right, ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	signals := rule.Signals(left, right)
	s.metrics.ObserveEvaluation("api", time.Since(start))
	s.metrics.RecordSignals(signals)

	writeJSON(w, http.StatusOK, SignalsResponse{Name: rule.Name(), Signals: signals})
}

// decode reads and validates a JSON body, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		status := http.StatusBadRequest

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}

		writeJSON(w, status, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
			Code:  errors.ErrCodeInvalidParameter,
		})

		return false
	}

	if err := s.validate.Struct(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  errors.ErrCodeMissingParameter,
		})

		return false
	}

	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", zap.Error(err))
	} else {
		s.log.Debug("Request rejected", zap.Error(err))
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeSyntax,
		errors.ErrCodeUnknownIdentifier,
		errors.ErrCodeUnknownFunction,
		errors.ErrCodeArity,
		errors.ErrCodeInvalidOperator,
		errors.ErrCodeEmptyFormula,
		errors.ErrCodeMissingParameter,
		errors.ErrCodeInvalidParameter:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
