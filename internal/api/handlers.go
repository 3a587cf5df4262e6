package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/output"
	"github.com/rgehrsitz/taxberg/internal/rules"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-200 response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// CalculateTax handles POST /api/calculate-tax. The body is a JSON tax input in
// any pay period; the response is the annual breakdown.
func (s *Server) CalculateTax(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	input, err := s.parser.ParseJSON(body)
	if err != nil {
		s.writeError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidateInput(input); err != nil {
		s.writeError(c, http.StatusBadRequest, "Invalid tax input: "+err.Error())
		return
	}

	annual := calculation.Annualize(*input)
	breakdown, err := s.engine.ComputeBreakdown(annual)
	if err != nil {
		var calcErr *calculation.CalculationError
		if errors.As(err, &calcErr) {
			s.logger.Error("tax calculation failed",
				zap.String("operation", calcErr.Operation),
				zap.String(requestIDKey, c.GetString(requestIDKey)),
				zap.Error(err))
		}
		_ = c.Error(err)
		s.writeError(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(c, http.StatusOK, output.NewBreakdownJSON(breakdown))
}

// Health handles GET /healthz
func (s *Server) Health(c *gin.Context) {
	s.writeJSON(c, http.StatusOK, gin.H{
		"status":   "ok",
		"taxYears": rules.Years(),
	})
}

var encodeFailureBody = []byte(`{"status":500,"message":"failed to encode response"}`)

func (s *Server) writeError(c *gin.Context, status int, message string) {
	s.writeJSON(c, status, ErrorResponse{Status: status, Message: message})
}

func (s *Server) writeJSON(c *gin.Context, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		c.Data(http.StatusInternalServerError, "application/json; charset=utf-8", encodeFailureBody)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
