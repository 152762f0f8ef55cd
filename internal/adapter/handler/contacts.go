package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/innovators-table/followup-assistant/errors"
	dto "github.com/innovators-table/followup-assistant/internal/adapter/dto/followup"
	"github.com/innovators-table/followup-assistant/internal/usecase/followup"
)

// ContactsController handles CRM lookups
type ContactsController struct {
	svc    *followup.Service
	logger *zap.Logger
}

// NewContactsController creates a new contacts controller
func NewContactsController(svc *followup.Service, logger *zap.Logger) *ContactsController {
	return &ContactsController{svc: svc, logger: logger}
}

// Resolve looks up attendee profiles by email identifier
func (cc *ContactsController) Resolve(c echo.Context) error {
	var req dto.ResolveContactsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(cc.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(cc.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := cc.svc.ResolveContacts(c.Request().Context(), req.Identifiers, nil)
	if err != nil {
		return HandleError(cc.logger, c, err)
	}

	return HandleSuccess(cc.logger, c, dto.ResolveContactsResponse{
		Profiles: result.Profiles,
		Messages: result.Messages,
		Count:    len(result.Profiles),
	})
}

// Test verifies the CRM credentials
func (cc *ContactsController) Test(c echo.Context) error {
	connected, err := cc.svc.TestCRMConnection(c.Request().Context())
	if err != nil {
		return HandleError(cc.logger, c, err)
	}

	return HandleSuccess(cc.logger, c, dto.ConnectionTestResponse{Connected: connected})
}
