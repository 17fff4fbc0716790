// Package http exposes the orchestrator over a JSON API. Handlers translate
// requests into commands and queries and map the error taxonomy onto HTTP
// status codes; error bodies are always {"error": <message>}.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/queries"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP routes to the application use cases.
type Server struct {
	startStageHandler    commands.StartStageCommandHandler
	completeStageHandler commands.CompleteStageCommandHandler
	startWorkflowHandler commands.StartWorkflowCommandHandler

	summaryHandler queries.GetDashboardSummaryQueryHandler
	metricsHandler queries.GetDashboardMetricsQueryHandler
	ordersHandler  queries.GetOrdersQueryHandler
}

// NewServer creates the HTTP server facade.
func NewServer(
	startStageHandler commands.StartStageCommandHandler,
	completeStageHandler commands.CompleteStageCommandHandler,
	startWorkflowHandler commands.StartWorkflowCommandHandler,
	summaryHandler queries.GetDashboardSummaryQueryHandler,
	metricsHandler queries.GetDashboardMetricsQueryHandler,
	ordersHandler queries.GetOrdersQueryHandler,
) *Server {
	return &Server{
		startStageHandler:    startStageHandler,
		completeStageHandler: completeStageHandler,
		startWorkflowHandler: startWorkflowHandler,
		summaryHandler:       summaryHandler,
		metricsHandler:       metricsHandler,
		ordersHandler:        ordersHandler,
	}
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/stages/start", s.StartStage)
	v1.POST("/stages/complete", s.CompleteStage)
	v1.POST("/workflows", s.StartWorkflow)
	v1.GET("/dashboard/summary", s.DashboardSummary)
	v1.GET("/dashboard/metrics", s.DashboardMetrics)
	v1.GET("/dashboard/orders", s.DashboardOrders)
}

type errorResponse struct {
	Error string `json:"error"`
}

type startStageRequest struct {
	TenantID   string `json:"tenantId"`
	OrderID    string `json:"orderId"`
	Stage      string `json:"stage"`
	AssignedTo string `json:"assignedTo"`
}

type stageRecordResponse struct {
	TenantID   string     `json:"tenantId"`
	OrderID    string     `json:"orderId"`
	Stage      string     `json:"stage"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	AssignedTo string     `json:"assignedTo"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

// StartStage handles POST /api/v1/stages/start.
func (s *Server) StartStage(ctx echo.Context) error {
	var request startStageRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewStartStageCommand(request.TenantID, request.OrderID, request.Stage, request.AssignedTo)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	record, err := s.startStageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeMappedError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStageRecordResponse(record))
}

type completeStageRequest struct {
	TenantID string `json:"tenantId"`
	OrderID  string `json:"orderId"`
	Stage    string `json:"stage"`
}

type completeStageResponse struct {
	Duration int64 `json:"duration"`
}

// CompleteStage handles POST /api/v1/stages/complete.
func (s *Server) CompleteStage(ctx echo.Context) error {
	var request completeStageRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewCompleteStageCommand(request.TenantID, request.OrderID, request.Stage)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	duration, err := s.completeStageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeMappedError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, completeStageResponse{Duration: duration})
}

type startWorkflowRequest struct {
	TenantID   string `json:"tenantId"`
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
}

type startWorkflowResponse struct {
	ExecutionRef string `json:"executionRef"`
}

// StartWorkflow handles POST /api/v1/workflows.
func (s *Server) StartWorkflow(ctx echo.Context) error {
	var request startWorkflowRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewStartWorkflowCommand(request.TenantID, request.OrderID, request.CustomerID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	executionRef, err := s.startWorkflowHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeMappedError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, startWorkflowResponse{ExecutionRef: executionRef})
}

// DashboardSummary handles GET /api/v1/dashboard/summary.
func (s *Server) DashboardSummary(ctx echo.Context) error {
	query, err := queries.NewGetDashboardSummaryQuery(ctx.QueryParam("tenantId"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	summary, err := s.summaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeMappedError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summary)
}

// DashboardMetrics handles GET /api/v1/dashboard/metrics.
func (s *Server) DashboardMetrics(ctx echo.Context) error {
	query, err := queries.NewGetDashboardMetricsQuery(ctx.QueryParam("tenantId"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	metrics, err := s.metricsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeMappedError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, metrics)
}

// DashboardOrders handles GET /api/v1/dashboard/orders.
func (s *Server) DashboardOrders(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(ctx, http.StatusBadRequest, err)
		}
		limit = parsed
	}

	query, err := queries.NewGetOrdersQuery(ctx.QueryParam("tenantId"), limit)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	orders, err := s.ordersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeMappedError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

func toStageRecordResponse(record *stagerecord.Record) stageRecordResponse {
	return stageRecordResponse{
		TenantID:   record.Key().TenantID().String(),
		OrderID:    record.Key().OrderID().String(),
		Stage:      record.Stage().String(),
		Status:     record.Status().String(),
		StartedAt:  record.StartedAt(),
		FinishedAt: record.FinishedAt(),
		AssignedTo: record.AssignedTo(),
	}
}

// writeMappedError converts domain errors into the response contract:
// invalid input 400, missing objects 404, conflicting state 409, everything
// else 500.
func writeMappedError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeError(ctx, http.StatusBadRequest, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err)
	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, stagerecord.ErrRecordAlreadyCompleted):
		return writeError(ctx, http.StatusConflict, err)
	default:
		return writeError(ctx, http.StatusInternalServerError, err)
	}
}

func writeError(ctx echo.Context, status int, err error) error {
	return ctx.JSON(status, errorResponse{Error: err.Error()})
}
