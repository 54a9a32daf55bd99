package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SimulationRunner is the part of the simulation service the handlers call.
type SimulationRunner interface {
	Defaults() domain.ReportRequest
	Report(ctx context.Context, req domain.ReportRequest) (*domain.DashboardReport, error)
	Simulate(ctx context.Context, req domain.ReportRequest, reorderPoint *float64) (*domain.RunReport, error)
	Compare(ctx context.Context, req domain.ReportRequest, scenarios []domain.Scenario) ([]domain.ScenarioOutcome, error)
	Sweep(ctx context.Context, req domain.ReportRequest) (*domain.SweepReport, error)
	PurgeCache(ctx context.Context) error
}

type SimulationHandler struct {
	service SimulationRunner
}

func NewSimulationHandler(service SimulationRunner) *SimulationHandler {
	return &SimulationHandler{service: service}
}

type defaultsResponse struct {
	Request domain.ReportRequest `json:"request"`
	Limits  domain.InputLimits   `json:"limits"`
}

type simulateBody struct {
	domain.ReportRequest
	ReorderPoint *float64 `json:"reorder_point"`
}

type compareBody struct {
	domain.ReportRequest
	Scenarios []domain.Scenario `json:"scenarios"`
}

type compareResponse struct {
	Outcomes []domain.ScenarioOutcome `json:"outcomes"`
}

// GetDefaults handles GET /api/v1/simulations/defaults
func (h *SimulationHandler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, defaultsResponse{
		Request: h.service.Defaults(),
		Limits:  domain.DashboardInputLimits,
	})
}

// Report handles POST /api/v1/simulations/report.
// Fields left out of the body keep their configured defaults; an empty body
// yields the default dashboard.
func (h *SimulationHandler) Report(c *gin.Context) {
	req := h.service.Defaults()
	if err := bindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	report, err := h.service.Report(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "failed to build report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Simulate handles POST /api/v1/simulations/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	body := simulateBody{ReportRequest: h.service.Defaults()}
	if err := bindBody(c, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	run, err := h.service.Simulate(c.Request.Context(), body.ReportRequest, body.ReorderPoint)
	if err != nil {
		h.fail(c, "failed to run simulation", err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// Compare handles POST /api/v1/simulations/compare
func (h *SimulationHandler) Compare(c *gin.Context) {
	body := compareBody{ReportRequest: h.service.Defaults()}
	if err := bindBody(c, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	outcomes, err := h.service.Compare(c.Request.Context(), body.ReportRequest, body.Scenarios)
	if err != nil {
		h.fail(c, "failed to compare scenarios", err)
		return
	}
	c.JSON(http.StatusOK, compareResponse{Outcomes: outcomes})
}

// Sweep handles POST /api/v1/simulations/sweep
func (h *SimulationHandler) Sweep(c *gin.Context) {
	req := h.service.Defaults()
	if err := bindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	out, err := h.service.Sweep(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "failed to sweep service levels", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PurgeCache handles DELETE /api/v1/simulations/cache
func (h *SimulationHandler) PurgeCache(c *gin.Context) {
	if err := h.service.PurgeCache(c.Request.Context()); err != nil {
		h.fail(c, "failed to purge report cache", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SimulationHandler) fail(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters", "details": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": message, "details": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
	}
}

// bindBody decodes a JSON body over dst. A missing or empty body, including an
// empty chunked one, leaves dst untouched.
func bindBody(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
