// Package http is the inbound REST adapter. It binds requests, resolves the
// caller from the X-User-ID header, dispatches to command and query handlers
// and translates core errors into status codes. No business rule lives here.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const principalHeader = "X-User-ID"

const principalContextKey = "principal"

// CommandHandlers bundles every write-side handler the server dispatches to.
type CommandHandlers struct {
	RegisterUser    commands.RegisterUserCommandHandler
	CreateOrder     commands.CreateOrderCommandHandler
	AcceptOrder     commands.AcceptOrderCommandHandler
	AdvanceOrder    commands.AdvanceOrderCommandHandler
	CancelBySeller  commands.CancelOrderBySellerCommandHandler
	CancelByCourier commands.CancelOrderByCourierCommandHandler
	ConfirmDelivery commands.ConfirmDeliveryCommandHandler
	Deposit         commands.DepositCommandHandler
	Withdraw        commands.WithdrawCommandHandler
	CreateReview    commands.CreateReviewCommandHandler
	UpdateLocation  commands.UpdateCourierLocationCommandHandler
	SetUserStatus   commands.SetUserStatusCommandHandler
}

// QueryHandlers bundles every read-side handler the server dispatches to.
type QueryHandlers struct {
	AvailableOrders queries.GetAvailableOrdersQueryHandler
	OrderByID       queries.GetOrderByIDQueryHandler
	UserOrders      queries.GetUserOrdersQueryHandler
	Balance         queries.GetBalanceQueryHandler
	LedgerHistory   queries.GetLedgerHistoryQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	principals PrincipalResolver
	cmds       CommandHandlers
	qrys       QueryHandlers
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(principals PrincipalResolver, cmds CommandHandlers, qrys QueryHandlers) *Server {
	return &Server{
		principals: principals,
		cmds:       cmds,
		qrys:       qrys,
	}
}

// RegisterRoutes mounts every endpoint on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/users", s.RegisterUser)
	api.POST("/admin/users/:id/status", s.SetUserStatus)

	authed := api.Group("", s.withPrincipal)
	authed.POST("/orders", s.CreateOrder)
	authed.GET("/orders", s.GetUserOrders)
	authed.GET("/orders/available", s.GetAvailableOrders)
	authed.GET("/orders/:id", s.GetOrderByID)
	authed.POST("/orders/:id/accept", s.AcceptOrder)
	authed.POST("/orders/:id/status", s.AdvanceOrder)
	authed.POST("/orders/:id/cancel", s.CancelOrder)
	authed.POST("/orders/:id/confirm", s.ConfirmDelivery)
	authed.POST("/wallet/deposit", s.Deposit)
	authed.POST("/wallet/withdraw", s.Withdraw)
	authed.GET("/wallet", s.GetBalance)
	authed.GET("/wallet/history", s.GetLedgerHistory)
	authed.POST("/reviews", s.CreateReview)
	authed.POST("/couriers/location", s.UpdateLocation)
	authed.DELETE("/couriers/location", s.RemoveLocation)
}

// withPrincipal authenticates the request by resolving the X-User-ID header
// against the users table. Unknown or malformed callers get 401 before any
// handler runs.
func (s *Server) withPrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		raw := ctx.Request().Header.Get(principalHeader)
		if raw == "" {
			return writeUnauthorized(ctx, principalHeader+" header is required")
		}

		userID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeUnauthorized(ctx, principalHeader+" header is not a valid UUID")
		}

		principal, err := s.principals.Resolve(ctx.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return writeUnauthorized(ctx, "unknown user")
			}
			return writeError(ctx, err)
		}

		ctx.Set(principalContextKey, principal)
		return next(ctx)
	}
}

func principalFrom(ctx echo.Context) Principal {
	principal, _ := ctx.Get(principalContextKey).(Principal)
	return principal
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterUser handles POST /api/v1/users. The caller's identity is taken
// from the X-User-ID header as issued by the identity provider; this endpoint
// only records the marketplace profile.
func (s *Server) RegisterUser(ctx echo.Context) error {
	raw := ctx.Request().Header.Get(principalHeader)
	if raw == "" {
		return writeUnauthorized(ctx, principalHeader+" header is required")
	}
	userID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return writeUnauthorized(ctx, principalHeader+" header is not a valid UUID")
	}

	var req registerUserRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	role, err := user.RoleFromString(req.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	var transport courier.Transport
	if role.IsCourier() {
		transport, err = courier.TransportFromString(req.Transport)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	cmd, err := commands.NewRegisterUserCommand(userID, role, transport)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, idResponse{ID: userID.String()})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal := principalFrom(ctx)

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	pickup, err := kernel.NewGeoPoint(req.PickupLat, req.PickupLong)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.CreateOrderItem{
			Description: item.Description,
			Address:     item.Address,
			Lat:         item.Lat,
			Long:        item.Long,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		principal.ID,
		req.PickupAddress,
		pickup,
		moneyFromAPI(req.DeliveryCost),
		items,
	)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, idResponse{ID: orderID.String()})
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	principal := principalFrom(ctx)

	query, err := queries.NewGetAvailableOrdersQuery(principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	available, err := s.qrys.AvailableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]availableOrderResponse, 0, len(available))
	for _, o := range available {
		response = append(response, availableOrderResponse{
			ID:            o.ID.String(),
			PickupAddress: o.PickupAddress,
			PickupLat:     o.PickupPoint.Lat(),
			PickupLong:    o.PickupPoint.Long(),
			DeliveryCost:  o.DeliveryCost.Float64(),
			DistanceKm:    o.DistanceKm,
			CreatedAt:     o.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderByID handles GET /api/v1/orders/:id.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	principal := principalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order ID")
	}

	query, err := queries.NewGetOrderByIDQuery(orderID, principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	found, err := s.qrys.OrderByID.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(found))
}

// GetUserOrders handles GET /api/v1/orders.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	principal := principalFrom(ctx)

	query, err := queries.NewGetUserOrdersQuery(principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	found, err := s.qrys.UserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]orderSummaryResponse, 0, len(found))
	for _, o := range found {
		response = append(response, orderSummaryResponse{
			ID:            o.ID.String(),
			PickupAddress: o.PickupAddress,
			Status:        o.Status,
			DeliveryCost:  o.DeliveryCost.Float64(),
			CreatedAt:     o.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	principal := principalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order ID")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.AcceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/:id/status.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	principal := principalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order ID")
	}

	var req advanceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, principal.ID, next)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. The caller's role
// selects the cancellation path; sellers and couriers follow different money
// and reputation rules.
func (s *Server) CancelOrder(ctx echo.Context) error {
	principal := principalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order ID")
	}

	if principal.Role.IsCourier() {
		cmd, err := commands.NewCancelOrderByCourierCommand(orderID, principal.ID)
		if err != nil {
			return writeError(ctx, err)
		}
		if err := s.cmds.CancelByCourier.Handle(ctx.Request().Context(), cmd); err != nil {
			return writeError(ctx, err)
		}
		return ctx.NoContent(http.StatusNoContent)
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderBySellerCommand(orderID, principal.ID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.CancelBySeller.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	principal := principalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order ID")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.ConfirmDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Deposit handles POST /api/v1/wallet/deposit.
func (s *Server) Deposit(ctx echo.Context) error {
	principal := principalFrom(ctx)

	var req amountRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewDepositCommand(principal.ID, moneyFromAPI(req.Amount))
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.Deposit.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Withdraw handles POST /api/v1/wallet/withdraw.
func (s *Server) Withdraw(ctx echo.Context) error {
	principal := principalFrom(ctx)

	var req amountRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewWithdrawCommand(principal.ID, moneyFromAPI(req.Amount))
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.Withdraw.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetBalance handles GET /api/v1/wallet.
func (s *Server) GetBalance(ctx echo.Context) error {
	principal := principalFrom(ctx)

	query, err := queries.NewGetBalanceQuery(principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	balance, err := s.qrys.Balance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, balanceResponse{
		Balance:   balance.Balance.Float64(),
		Frozen:    balance.Frozen.Float64(),
		Available: balance.Available.Float64(),
	})
}

// GetLedgerHistory handles GET /api/v1/wallet/history.
func (s *Server) GetLedgerHistory(ctx echo.Context) error {
	principal := principalFrom(ctx)

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return writeBadRequest(ctx, "invalid limit")
		}
		limit = parsed
	}

	query, err := queries.NewGetLedgerHistoryQuery(principal.ID, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.qrys.LedgerHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ledgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		item := ledgerEntryResponse{
			ID:        entry.ID.String(),
			EntryType: entry.EntryType,
			Amount:    entry.Amount.Float64(),
			Comment:   entry.Comment,
			CreatedAt: entry.CreatedAt,
		}
		if entry.OrderID != nil {
			orderID := entry.OrderID.String()
			item.OrderID = &orderID
		}
		response = append(response, item)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateReview handles POST /api/v1/reviews.
func (s *Server) CreateReview(ctx echo.Context) error {
	principal := principalFrom(ctx)

	var req createReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeBadRequest(ctx, "invalid order ID")
	}

	cmd, err := commands.NewCreateReviewCommand(orderID, principal.ID, req.Stars, req.Comment)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.CreateReview.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// UpdateLocation handles POST /api/v1/couriers/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	principal := principalFrom(ctx)

	var req locationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	point, err := kernel.NewGeoPoint(req.Lat, req.Long)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(principal.ID, point)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.UpdateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveLocation handles DELETE /api/v1/couriers/location.
func (s *Server) RemoveLocation(ctx echo.Context) error {
	principal := principalFrom(ctx)

	if err := s.cmds.UpdateLocation.HandleRemove(ctx.Request().Context(), principal.ID); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetUserStatus handles POST /api/v1/admin/users/:id/status. The admin
// surface sits behind the network boundary; there is no admin role in the
// marketplace itself.
func (s *Server) SetUserStatus(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "invalid user ID")
	}

	var req setUserStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	status, err := user.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetUserStatusCommand(userID, status)
	if err != nil {
		return writeError(ctx, err)
	}
	if err := s.cmds.SetUserStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
