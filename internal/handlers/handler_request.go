package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requestHandler handles HTTP requests related to reimbursement requests.
type requestHandler struct {
	requestService  portssvc.RequestSvcFacade
	workflowService portssvc.WorkflowSvc
	documentService portssvc.DocumentSvc
}

func newRequestHandler(rs portssvc.RequestSvcFacade, ws portssvc.WorkflowSvc, ds portssvc.DocumentSvc) *requestHandler {
	return &requestHandler{requestService: rs, workflowService: ws, documentService: ds}
}

// RegisterRequestRoutes registers routes related to requests and their lifecycle.
// Document routes are only registered when a document service is configured.
func RegisterRequestRoutes(rg *gin.RouterGroup, requestService portssvc.RequestSvcFacade, workflowService portssvc.WorkflowSvc, documentService portssvc.DocumentSvc) {
	h := newRequestHandler(requestService, workflowService, documentService)

	requests := rg.Group("/requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:id", h.getRequest)
		requests.PUT("/:id", h.updateRequest)

		requests.GET("/:id/actions", h.allowedActions)
		requests.POST("/:id/transitions", h.transitionRequest)
		requests.GET("/:id/history", h.getHistory)

		if documentService != nil {
			requests.GET("/:id/documents", h.listDocuments)
			requests.POST("/:id/documents", h.regenerateDocuments)
		}
	}
}

// requestIDParam parses the :id path parameter, answering 400 when it is malformed.
func requestIDParam(c *gin.Context, logger *slog.Logger) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid request ID in path", slog.String("request_id", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return 0, false
	}
	return id, true
}

// actorFromContext returns the authenticated user, answering 401 when it is absent.
func actorFromContext(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// createRequest godoc
// @Summary Create a request
// @Description Creates a DRAFT request owned by the logged-in user and calculates its totals.
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateRequestRequest true "Trip details"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} map[string]string "Invalid trip details"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "System parameters not configured"
// @Failure 500 {object} map[string]string "Failed to create request"
// @Security BearerAuth
// @Router /requests [post]
func (h *requestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "trip details")
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create reimbursement request", slog.String("destination", req.Destination))

	created, err := h.requestService.CreateRequest(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create request")
		return
	}

	logger.Info("Request created", slog.Int64("request_id", created.RequestID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(created))
}

// listRequests godoc
// @Summary List requests
// @Description Lists the caller's requests. Reviewers may pass all=true to see every request.
// @Tags requests
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   all query bool false "Include requests of other users (reviewers only)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list requests"
// @Security BearerAuth
// @Router /requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	requests, next, err := h.requestService.ListRequests(c.Request.Context(), params, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to list requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRequestsResponse(requests, next))
}

// getRequest godoc
// @Summary Get a request
// @Tags requests
// @Produce  json
// @Param   id path int true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} map[string]string "Invalid request ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /requests/{id} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID, ok := requestIDParam(c, logger)
	if !ok {
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	request, err := h.requestService.GetRequest(c.Request.Context(), requestID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to get request")
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// updateRequest godoc
// @Summary Edit a draft
// @Description Replaces the trip details of a DRAFT request and recalculates its totals.
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   id path int true "Request ID"
// @Param   request body dto.CreateRequestRequest true "Trip details"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} map[string]string "Invalid trip details"
// @Failure 403 {object} map[string]string "Only the requester may edit"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request is no longer a draft"
// @Security BearerAuth
// @Router /requests/{id} [put]
func (h *requestHandler) updateRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID, ok := requestIDParam(c, logger)
	if !ok {
		return
	}
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "trip details")
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	updated, err := h.requestService.UpdateDraft(c.Request.Context(), requestID, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update request")
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(updated))
}

// allowedActions godoc
// @Summary Allowed transitions
// @Description Lists the statuses the caller may move the request to.
// @Tags workflow
// @Produce  json
// @Param   id path int true "Request ID"
// @Success 200 {object} dto.AllowedActionsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /requests/{id}/actions [get]
func (h *requestHandler) allowedActions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID, ok := requestIDParam(c, logger)
	if !ok {
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	actions, err := h.workflowService.AllowedActions(c.Request.Context(), requestID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to list allowed actions")
		return
	}

	c.JSON(http.StatusOK, actions)
}

// transitionRequest godoc
// @Summary Move a request
// @Description Moves a request to another status and records the change in its history.
// @Description Submitting a draft assigns the case number.
// @Tags workflow
// @Accept  json
// @Produce  json
// @Param   id path int true "Request ID"
// @Param   transition body dto.TransitionRequest true "Destination status and note"
// @Success 200 {object} domain.TransitionResult
// @Failure 400 {object} map[string]string "Invalid status or missing note"
// @Failure 403 {object} map[string]string "Role not allowed"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Transition not allowed or request changed concurrently"
// @Failure 422 {object} map[string]string "Road distance unavailable"
// @Security BearerAuth
// @Router /requests/{id}/transitions [post]
func (h *requestHandler) transitionRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID, ok := requestIDParam(c, logger)
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "transition")
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("request_id", requestID), slog.String("to_status", req.Status))
	logger.Info("Received request to transition reimbursement request")

	result, err := h.workflowService.Transition(c.Request.Context(), requestID, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to transition request")
		return
	}

	c.JSON(http.StatusOK, result)
}

// getHistory godoc
// @Summary Request history
// @Description Returns the audit trail of a request and whether it matches the current status.
// @Tags workflow
// @Produce  json
// @Param   id path int true "Request ID"
// @Success 200 {object} dto.HistoryResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /requests/{id}/history [get]
func (h *requestHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID, ok := requestIDParam(c, logger)
	if !ok {
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	history, err := h.workflowService.History(c.Request.Context(), requestID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to load history")
		return
	}

	c.JSON(http.StatusOK, history)
}

// listDocuments godoc
// @Summary Request documents
// @Tags documents
// @Produce  json
// @Param   id path int true "Request ID"
// @Success 200 {array} domain.Document
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /requests/{id}/documents [get]
func (h *requestHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID, ok := requestIDParam(c, logger)
	if !ok {
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	documents, err := h.documentService.ListDocuments(c.Request.Context(), requestID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, documents)
}

// regenerateDocuments godoc
// @Summary Regenerate documents
// @Description Recreates the folder and request document of a submitted request.
// @Tags documents
// @Produce  json
// @Param   id path int true "Request ID"
// @Success 201 {object} domain.DocumentRefs
// @Failure 400 {object} map[string]string "Request has no case number"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Documents are already being generated"
// @Security BearerAuth
// @Router /requests/{id}/documents [post]
func (h *requestHandler) regenerateDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID, ok := requestIDParam(c, logger)
	if !ok {
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	refs, err := h.documentService.RegenerateDocuments(c.Request.Context(), requestID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate documents")
		return
	}

	logger.Info("Documents regenerated", slog.Int64("request_id", requestID), slog.String("folder_id", refs.FolderID))
	c.JSON(http.StatusCreated, refs)
}
