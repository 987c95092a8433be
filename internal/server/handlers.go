package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tournevent/fulfillment/internal/entity"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleFulfill(c *gin.Context) {
	orderID := c.Param("order_id")
	ctx := c.Request.Context()

	report, err := s.orch.Fulfill(ctx, orderID)
	if err != nil {
		s.handleOrchestratorError(c, orderID, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleCancel(c *gin.Context) {
	orderID := c.Param("order_id")
	ctx := c.Request.Context()

	report, err := s.orch.Cancel(ctx, orderID)
	if err != nil {
		s.handleOrchestratorError(c, orderID, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// handleOrchestratorError maps precondition errors to client statuses.
// Per-leg failures never arrive here; they live inside the report.
func (s *Server) handleOrchestratorError(c *gin.Context, orderID string, err error) {
	switch {
	case errors.Is(err, entity.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
	case errors.Is(err, entity.ErrNoLineItems):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "order has no line items"})
	default:
		s.logger.Error("Orchestration failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
