package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dilahazalbilgin/VerifID/internal/api/metrics"
	"github.com/dilahazalbilgin/VerifID/internal/core/domain"
	"github.com/dilahazalbilgin/VerifID/internal/core/ports"
)

// VerificationHandler handles HTTP requests for the request-ID token
// lifecycle.
type VerificationHandler struct {
	service ports.VerificationService
}

func NewVerificationHandler(service ports.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

// Generate handles POST /api/verification/generate-request-id. Calling it
// with an existing token rotates the token.
//
// @Summary      Generate or rotate the caller's request ID
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  generateRequestIDResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/verification/generate-request-id [post]
func (h *VerificationHandler) Generate(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.GenerateRequestID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	metrics.RequestIDsGeneratedTotal.Inc()
	return c.JSON(http.StatusOK, generateRequestIDResponse{
		Success:   true,
		Message:   "request ID generated successfully",
		RequestID: result.RequestID,
		User: verifiedUserSummary{
			ID:         result.User.ID,
			FirstName:  result.User.FirstName,
			LastName:   result.User.LastName,
			Email:      result.User.Email,
			IsVerified: result.User.IsVerified,
		},
	})
}

// Lookup handles GET /api/verification/verify/:requestId, the public
// unauthenticated dereference for third parties. An unknown token renders
// the stable found:false shape rather than the generic error envelope.
//
// @Summary      Look up verification status by request ID
// @Tags         verification
// @Produce      json
// @Param        requestId  path      string  true  "Request ID (e.g. req_m1abc_x7k2p9qz4r1n0)"
// @Success      200        {object}  lookupResponse
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  lookupNotFoundResponse
// @Router       /api/verification/verify/{requestId} [get]
func (h *VerificationHandler) Lookup(c echo.Context) error {
	requestID := c.Param("requestId")

	result, err := h.service.LookupByRequestID(c.Request().Context(), requestID)
	if err != nil {
		if errors.Is(err, domain.ErrRequestIDNotFound) {
			metrics.LookupsTotal.WithLabelValues("miss").Inc()
			return c.JSON(http.StatusNotFound, lookupNotFoundResponse{
				Found:   false,
				Message: err.Error(),
			})
		}
		if errors.Is(err, domain.ErrRequestIDRequired) {
			metrics.LookupsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.LookupsTotal.WithLabelValues("hit").Inc()
	return c.JSON(http.StatusOK, lookupResponse{
		Success:   true,
		Found:     true,
		Message:   "user verification status retrieved successfully",
		Verified:  result.Verified,
		RequestID: result.RequestID,
		User: lookupUserResponse{
			ID:           result.User.ID,
			FirstName:    result.User.FirstName,
			LastName:     result.User.LastName,
			Email:        result.User.Email,
			IDCardNumber: result.User.IDCardNumber,
			IsVerified:   result.User.IsVerified,
			VerifiedAt:   result.User.VerifiedAt,
		},
		Timestamp: time.Now().UTC(),
	})
}

// MyRequestID handles GET /api/verification/my-request-id.
//
// @Summary      Get the caller's own request ID
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ownRequestIDResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/verification/my-request-id [get]
func (h *VerificationHandler) MyRequestID(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.GetMyRequestID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := ownRequestIDResponse{
		Success:      true,
		IsVerified:   result.IsVerified,
		HasRequestID: result.HasRequestID,
		User: ownUserResponse{
			FirstName: result.FirstName,
			LastName:  result.LastName,
			Email:     result.Email,
		},
	}
	if result.HasRequestID {
		resp.RequestID = &result.RequestID
	}

	return c.JSON(http.StatusOK, resp)
}

// Revoke handles DELETE /api/verification/revoke-request-id.
//
// @Summary      Revoke the caller's request ID
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  revokeResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/verification/revoke-request-id [delete]
func (h *VerificationHandler) Revoke(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	revoked, err := h.service.RevokeRequestID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	metrics.RequestIDsRevokedTotal.Inc()
	return c.JSON(http.StatusOK, revokeResponse{
		Success:          true,
		Message:          "request ID revoked successfully",
		RevokedRequestID: revoked,
	})
}
