package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
	portssvc "github.com/SscSPs/demerit_registry/internal/core/ports/services"
	"github.com/SscSPs/demerit_registry/internal/dto"
	"github.com/SscSPs/demerit_registry/internal/middleware"
	"github.com/SscSPs/demerit_registry/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// personHandler handles HTTP requests related to persons and their demerits.
type personHandler struct {
	personService portssvc.PersonSvcFacade
}

func newPersonHandler(ps portssvc.PersonSvcFacade) *personHandler {
	return &personHandler{personService: ps}
}

// RegisterPersonRoutes registers routes related to persons.
func RegisterPersonRoutes(rg *gin.RouterGroup, personService portssvc.PersonSvcFacade) {
	h := newPersonHandler(personService)

	persons := rg.Group("/persons")
	{
		persons.POST("", h.createPerson)
		persons.GET("/:personID", h.getPerson)
		persons.PUT("/:personID", h.updatePerson)
		persons.POST("/:personID/demerits", h.addDemeritPoints)
		persons.GET("/:personID/suspension", h.getSuspension)
		persons.GET("/:personID/demerits", h.listOffenses)
	}
}

// createPerson godoc
// @Summary Register a person
// @Description Validates and stores a new person record
// @Tags persons
// @Accept  json
// @Produce  json
// @Param   person body dto.CreatePersonRequest true "Person details"
// @Success 201 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Person identifier already stored"
// @Failure 500 {object} map[string]string "Failed to create person"
// @Router /persons [post]
func (h *personHandler) createPerson(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePerson", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("person_id", req.PersonID))
	logger.Info("Received request to create person")

	person, err := h.personService.CreatePerson(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to create person")
		return
	}

	logger.Info("Person created successfully")
	c.JSON(http.StatusCreated, dto.ToPersonResponse(person))
}

// getPerson godoc
// @Summary Get a person by identifier
// @Tags persons
// @Produce  json
// @Param   personID path string true "Person identifier (URL encoded)"
// @Success 200 {object} dto.PersonResponse
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 500 {object} map[string]string "Failed to retrieve person"
// @Router /persons/{personID} [get]
func (h *personHandler) getPerson(c *gin.Context) {
	personID := c.Param("personID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("person_id", personID))

	person, err := h.personService.GetPerson(c.Request.Context(), personID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve person")
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}

// updatePerson godoc
// @Summary Update a person's details
// @Description Replaces all personal details. A birthdate change must be the only change;
// @Description under-18s cannot change address; identifiers starting with an even digit cannot change.
// @Tags persons
// @Accept  json
// @Produce  json
// @Param   personID path string true "Current person identifier (URL encoded)"
// @Param   person body dto.UpdatePersonRequest true "Full replacement details"
// @Success 200 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Persons under 18 cannot change address"
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 409 {object} map[string]string "Update conflicts with locked fields or an existing identifier"
// @Failure 500 {object} map[string]string "Failed to update person"
// @Router /persons/{personID} [put]
func (h *personHandler) updatePerson(c *gin.Context) {
	personID := c.Param("personID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("person_id", personID))

	var req dto.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePerson", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to update person", slog.String("new_person_id", req.PersonID))
	person, err := h.personService.UpdatePerson(c.Request.Context(), personID, req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to update person")
		return
	}

	logger.Info("Person updated successfully")
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}

// addDemeritPoints godoc
// @Summary Record an offense
// @Description Adds 1-6 demerit points on a DD-MM-YYYY date and returns the resulting suspension state
// @Tags demerits
// @Accept  json
// @Produce  json
// @Param   personID path string true "Person identifier (URL encoded)"
// @Param   offense body dto.AddDemeritRequest true "Offense"
// @Success 200 {object} dto.SuspensionResponse
// @Failure 400 {object} map[string]string "Invalid date or points"
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 500 {object} map[string]string "Failed to record offense"
// @Router /persons/{personID}/demerits [post]
func (h *personHandler) addDemeritPoints(c *gin.Context) {
	personID := c.Param("personID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("person_id", personID))

	var req dto.AddDemeritRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddDemeritPoints", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.personService.AddDemeritPoints(c.Request.Context(), personID, req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to record offense")
		return
	}

	logger.Info("Offense recorded", slog.Int("points", req.Points), slog.Bool("suspended", resp.Suspended))
	c.JSON(http.StatusOK, resp)
}

// getSuspension godoc
// @Summary Get suspension state
// @Tags demerits
// @Produce  json
// @Param   personID path string true "Person identifier (URL encoded)"
// @Success 200 {object} dto.SuspensionResponse
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 500 {object} map[string]string "Failed to retrieve suspension state"
// @Router /persons/{personID}/suspension [get]
func (h *personHandler) getSuspension(c *gin.Context) {
	personID := c.Param("personID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("person_id", personID))

	resp, err := h.personService.GetSuspension(c.Request.Context(), personID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve suspension state")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listOffenses godoc
// @Summary List the stored offense audit trail
// @Tags demerits
// @Produce  json
// @Param   personID path string true "Person identifier (URL encoded)"
// @Param   limit query int false "Page size (1-500); all entries when omitted"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListOffensesResponse
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 500 {object} map[string]string "Failed to list offenses"
// @Router /persons/{personID}/demerits [get]
func (h *personHandler) listOffenses(c *gin.Context) {
	personID := c.Param("personID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("person_id", personID))

	var params dto.ListOffensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListOffenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.personService.ListOffenseHistory(c.Request.Context(), personID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list offenses")
		return
	}

	page, next, err := pagination.Page(records, params.Limit, params.NextToken)
	if err != nil {
		logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToListOffensesResponse(page, next))
}

// writeServiceError maps service errors to status codes. Unknown errors are
// logged and reported with the generic failure message.
func writeServiceError(c *gin.Context, logger *slog.Logger, err error, failure string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrMinorAddressLock):
		logger.Warn("Update forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPolicyViolation), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Person not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
	default:
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
}
