package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crestline/origination-backend/internal/http/response"
	"github.com/crestline/origination-backend/internal/pkg/logger"
	"github.com/crestline/origination-backend/internal/services"
)

type FundingHandler struct {
	log     *logger.Logger
	funding services.FundingService
}

func NewFundingHandler(baseLog *logger.Logger, funding services.FundingService) *FundingHandler {
	return &FundingHandler{log: baseLog.With("handler", "FundingHandler"), funding: funding}
}

func (h *FundingHandler) Calculate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var rates services.FundingRatesInput
	if err := c.ShouldBindJSON(&rates); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	row, err := h.funding.Calculate(c.Request.Context(), id, rates)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *FundingHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	rows, err := h.funding.History(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"funding_calculations": rows})
}
