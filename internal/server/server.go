// Package server exposes the calculation engine as a small stateless HTTP
// compute API. Nothing is stored; every request carries its full input.
package server

import (
	"log"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"taxfolio/internal/calculation"
	"taxfolio/internal/domain"
)

// Server routes compute requests to the tax engine and the retirement
// projector.
type Server struct {
	engine    *calculation.Engine
	projector *calculation.RetirementProjector
}

// New creates a server with default engine and projector configuration.
func New() *Server {
	return &Server{
		engine:    calculation.NewEngine(),
		projector: calculation.NewRetirementProjector(),
	}
}

// NewWithComponents creates a server with explicit components, used by tests
// to inject a seeded projector.
func NewWithComponents(engine *calculation.Engine, projector *calculation.RetirementProjector) *Server {
	return &Server{engine: engine, projector: projector}
}

// errorResponse is the error envelope for all failure responses.
type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// taxResponse wraps a tax calculation with its request id.
type taxResponse struct {
	CalculationID string                   `json:"calculationId"`
	Results       domain.CalculatedResults `json:"results"`
}

// retirementRequest pairs projector inputs with the filer context.
type retirementRequest struct {
	Inputs domain.RetirementInputs `json:"inputs"`
	Filer  domain.FilerContext     `json:"filer"`
}

// retirementResponse wraps a retirement analysis with its request id.
type retirementResponse struct {
	CalculationID string                    `json:"calculationId"`
	Analysis      domain.RetirementAnalysis `json:"analysis"`
}

// Handler is the fasthttp request handler for all routes.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		if !ctx.IsGet() {
			s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/api/tax/calculate":
		s.handleTaxCalculate(ctx)
	case "/api/retirement/project":
		s.handleRetirementProject(ctx)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) handleTaxCalculate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var profile domain.TaxProfile
	if err := json.Unmarshal(ctx.PostBody(), &profile); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if profile.FilingStatus != "" && !profile.FilingStatus.Valid() {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Unknown filing status: "+string(profile.FilingStatus))
		return
	}

	results := s.engine.Calculate(profile)
	s.writeJSON(ctx, fasthttp.StatusOK, taxResponse{
		CalculationID: uuid.NewString(),
		Results:       results,
	})
}

func (s *Server) handleRetirementProject(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req retirementRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	analysis := s.projector.Project(req.Inputs, req.Filer)
	s.writeJSON(ctx, fasthttp.StatusOK, retirementResponse{
		CalculationID: uuid.NewString(),
		Analysis:      analysis,
	})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, err := json.Marshal(errorResponse{Status: status, Message: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

// ListenAndServe starts the server on the given port.
func (s *Server) ListenAndServe(port string) error {
	log.Printf("taxfolio compute API starting on port %s", port)
	return fasthttp.ListenAndServe(":"+port, s.Handler)
}
