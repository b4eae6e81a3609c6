package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/service"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
	"github.com/noah-isme/enroll-flow-api/pkg/response"
)

// SessionHandler exposes enrollment session lifecycle endpoints.
type SessionHandler struct {
	sessions         *service.SessionService
	defaultPackageID string
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(sessions *service.SessionService, defaultPackageID string) *SessionHandler {
	return &SessionHandler{sessions: sessions, defaultPackageID: defaultPackageID}
}

// Create godoc
// @Summary Open an enrollment session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest false "Session payload"
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	sess, err := h.sessions.Create(c.Request.Context(), req, h.defaultPackageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sess)
}

// Get godoc
// @Summary Get a session snapshot
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// Reset godoc
// @Summary Reset a session to its initial state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	sess, err := h.sessions.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// Delete godoc
// @Summary Tear a session down
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clock godoc
// @Summary Get the session countdown
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/clock [get]
func (h *SessionHandler) Clock(c *gin.Context) {
	clock, err := h.sessions.Clock(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clock, nil)
}
