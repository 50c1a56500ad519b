// Package http exposes the order lifecycle operations over a hand-written
// Echo API. Request and response bodies live in requests.go/responses.go;
// this file holds the server, its routes and the error mapping.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pos/internal/adapters/out/auth"
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	syncDraftHandler      commands.SyncDraftCommandHandler
	deleteDraftsHandler   commands.DeleteDraftsCommandHandler
	finalizeOrderHandler  commands.FinalizeOrderCommandHandler
	verifyOrderHandler    commands.VerifyOrderCommandHandler
	rejectOrderHandler    commands.RejectOrderCommandHandler
	updateStatusHandler   commands.UpdateOrderStatusCommandHandler
	holdOrderHandler      commands.HoldOrderCommandHandler
	resumeHoldHandler     commands.ResumeHoldOrderCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	returnOrderHandler    commands.ReturnOrderCommandHandler
	splitOrderHandler     commands.SplitOrderCommandHandler
	mergeOrdersHandler    commands.MergeOrdersCommandHandler
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler

	getHoldOrdersHandler   queries.GetHoldOrdersQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// ServerParams carries the command and query handlers the server routes to.
type ServerParams struct {
	SyncDraft      commands.SyncDraftCommandHandler
	DeleteDrafts   commands.DeleteDraftsCommandHandler
	FinalizeOrder  commands.FinalizeOrderCommandHandler
	VerifyOrder    commands.VerifyOrderCommandHandler
	RejectOrder    commands.RejectOrderCommandHandler
	UpdateStatus   commands.UpdateOrderStatusCommandHandler
	HoldOrder      commands.HoldOrderCommandHandler
	ResumeHold     commands.ResumeHoldOrderCommandHandler
	CancelOrder    commands.CancelOrderCommandHandler
	ReturnOrder    commands.ReturnOrderCommandHandler
	SplitOrder     commands.SplitOrderCommandHandler
	MergeOrders    commands.MergeOrdersCommandHandler
	ConfirmPayment commands.ConfirmPaymentCommandHandler

	GetHoldOrders   queries.GetHoldOrdersQueryHandler
	GetActiveOrders queries.GetActiveOrdersQueryHandler
}

// NewServer creates an HTTP server routing to the given handlers.
func NewServer(params ServerParams) *Server {
	return &Server{
		syncDraftHandler:       params.SyncDraft,
		deleteDraftsHandler:    params.DeleteDrafts,
		finalizeOrderHandler:   params.FinalizeOrder,
		verifyOrderHandler:     params.VerifyOrder,
		rejectOrderHandler:     params.RejectOrder,
		updateStatusHandler:    params.UpdateStatus,
		holdOrderHandler:       params.HoldOrder,
		resumeHoldHandler:      params.ResumeHold,
		cancelOrderHandler:     params.CancelOrder,
		returnOrderHandler:     params.ReturnOrder,
		splitOrderHandler:      params.SplitOrder,
		mergeOrdersHandler:     params.MergeOrders,
		confirmPaymentHandler:  params.ConfirmPayment,
		getHoldOrdersHandler:   params.GetHoldOrders,
		getActiveOrdersHandler: params.GetActiveOrders,
	}
}

// RegisterRoutes attaches every operation under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.PUT("/drafts", s.SyncDraft)
	api.DELETE("/drafts", s.DeleteDrafts)

	api.POST("/orders/:id/finalize", s.FinalizeOrder)
	api.POST("/orders/:id/verify", s.VerifyOrder)
	api.POST("/orders/:id/reject", s.RejectOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/hold", s.HoldOrder)
	api.POST("/orders/:id/resume", s.ResumeHoldOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/returns", s.ReturnOrder)
	api.POST("/orders/:id/split", s.SplitOrder)
	api.POST("/orders/merge", s.MergeOrders)
	api.POST("/orders/:id/payment", s.ConfirmPayment)

	api.GET("/orders/hold", s.GetHoldOrders)
	api.GET("/orders/active", s.GetActiveOrders)
}

// SyncDraft handles PUT /api/v1/drafts - upserts the session's draft cart.
func (s *Server) SyncDraft(ctx echo.Context) error {
	var req syncDraftRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	creator, err := order.CreatorTypeFromString(req.Creator)
	if err != nil {
		return s.respondError(ctx, err)
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return s.respondError(ctx, err)
	}

	items, err := req.itemInputs()
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewSyncDraftCommand(kernel.NewUUID(), req.SessionKey,
		creator, req.CreatorName, req.Customer.toDomain(), paymentMethod, items)
	if err != nil {
		return s.respondError(ctx, err)
	}

	draft, err := s.syncDraftHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(draft))
}

// DeleteDrafts handles DELETE /api/v1/drafts - purges abandoned drafts.
// The optional older_than_minutes query parameter spares recent carts;
// without it every draft goes.
func (s *Server) DeleteDrafts(ctx echo.Context) error {
	minutes := 0
	if raw := ctx.QueryParam("older_than_minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return s.respondError(ctx,
				errs.NewValueIsInvalidError("older_than_minutes is invalid"))
		}
		minutes = parsed
	}

	cutoff := time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)
	cmd, err := commands.NewDeleteDraftsCommand(cutoff)
	if err != nil {
		return s.respondError(ctx, err)
	}

	deleted, err := s.deleteDraftsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int{"deleted": deleted})
}

// FinalizeOrder handles POST /api/v1/orders/:id/finalize - submits a draft
// for fulfillment.
func (s *Server) FinalizeOrder(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewFinalizeOrderCommand(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.finalizeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyOrder handles POST /api/v1/orders/:id/verify - staff approval of a
// pending order.
func (s *Server) VerifyOrder(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewVerifyOrderCommand(orderID, bearerToken(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.verifyOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:id/reject - staff rejection of a
// pending order.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req rejectOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, req.Reason, bearerToken(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - forward
// progression through the fulfillment statuses.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// HoldOrder handles POST /api/v1/orders/:id/hold - parks an in-progress
// order.
func (s *Server) HoldOrder(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req holdOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	cmd, err := commands.NewHoldOrderCommand(orderID, req.HoldName, bearerToken(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.holdOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResumeHoldOrder handles POST /api/v1/orders/:id/resume - returns a held
// order to the queue.
func (s *Server) ResumeHoldOrder(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewResumeHoldOrderCommand(orderID, bearerToken(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.resumeHoldHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - terminates a
// non-terminal order, with refund bookkeeping for paid ones.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	reasonType, err := order.ReasonCategoryFromString(req.ReasonType)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var refundAmount *kernel.Money
	if req.RefundAmount != nil {
		amount, moneyErr := kernel.NewMoney(*req.RefundAmount)
		if moneyErr != nil {
			return s.respondError(ctx, moneyErr)
		}
		refundAmount = &amount
	}

	var refundMethod *order.RefundMethod
	if req.RefundMethod != nil {
		method, methodErr := order.RefundMethodFromString(*req.RefundMethod)
		if methodErr != nil {
			return s.respondError(ctx, methodErr)
		}
		refundMethod = &method
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason, reasonType,
		refundAmount, refundMethod, bearerToken(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReturnOrder handles POST /api/v1/orders/:id/returns - records a full or
// partial return against a completed order.
func (s *Server) ReturnOrder(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req returnOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	returnType, err := order.ReturnTypeFromString(req.Type)
	if err != nil {
		return s.respondError(ctx, err)
	}

	reason, err := order.ReasonCategoryFromString(req.Reason)
	if err != nil {
		return s.respondError(ctx, err)
	}

	refundMethod, err := order.RefundMethodFromString(req.RefundMethod)
	if err != nil {
		return s.respondError(ctx, err)
	}

	lines, err := req.lineInputs()
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewReturnOrderCommand(orderID, returnType, reason,
		refundMethod, lines, req.Notes, bearerToken(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}

	record, err := s.returnOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, returnToResponse(record))
}

// SplitOrder handles POST /api/v1/orders/:id/split - separate checks.
func (s *Server) SplitOrder(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req splitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	splits, err := req.splitInputs()
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewSplitOrderCommand(orderID, splits, bearerToken(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}

	children, err := s.splitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersToResponse(children))
}

// MergeOrders handles POST /api/v1/orders/merge - combines several orders
// into one check.
func (s *Server) MergeOrders(ctx echo.Context) error {
	var req mergeOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	orderIDs, err := req.orderIDs()
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewMergeOrdersCommand(orderIDs, req.Name, bearerToken(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}

	merged, err := s.mergeOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(merged))
}

// ConfirmPayment handles POST /api/v1/orders/:id/payment - records the
// charge outcome reported by the terminal.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := s.orderIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req confirmPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body is invalid", err))
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, req.Reference)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetHoldOrders handles GET /api/v1/orders/hold - the parked orders board.
func (s *Server) GetHoldOrders(ctx echo.Context) error {
	query, err := queries.NewGetHoldOrdersQuery(ctx.QueryParam("creator"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	rows, err := s.getHoldOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, holdOrdersToResponse(rows))
}

// GetActiveOrders handles GET /api/v1/orders/active - the in-flight orders
// dashboard.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	rows, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, activeOrdersToResponse(rows))
}

func (s *Server) orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// bearerToken extracts the staff access token from the Authorization
// header. An absent header yields an empty token, which staff-only commands
// reject.
func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(header, "Bearer ")
}

// respondError maps domain and application errors to HTTP status codes.
func (s *Server) respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, auth.ErrTokenIsInvalid):
		code = http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrStaleState):
		code = http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrQuantityExceedsAvailable),
		errors.Is(err, order.ErrRefundExceedsItemValue),
		errors.Is(err, order.ErrPartitionMismatch),
		errors.Is(err, order.ErrIncompatibleMerge):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}
