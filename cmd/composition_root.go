package cmd

import (
	"time"

	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/geo"
	"lastmile/internal/adapters/out/notify"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/adapters/out/postgres/courierrepo"
	"lastmile/internal/adapters/out/postgres/ledgerrepo"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/adapters/out/postgres/reviewrepo"
	"lastmile/internal/adapters/out/postgres/timerrepo"
	"lastmile/internal/adapters/out/postgres/userrepo"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers
// together. Everything downstream receives its dependencies from here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	geoIndex   *geo.Index
	notifier   *notify.ZapNotifier
	logger     *zap.Logger

	ledger     services.Ledger
	reputation services.ReputationPolicy
	rating     services.RatingCalculator
	matcher    services.CourierMatcher
}

// NewCompositionRoot builds the object graph over the given database and logger.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) *CompositionRoot {
	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		geoIndex:   geo.NewIndex(time.Duration(cfg.GeoTTLSeconds) * time.Second),
		notifier:   notify.NewZapNotifier(logger),
		logger:     logger,
		ledger:     services.NewLedger(),
		reputation: services.NewReputationPolicy(),
		rating:     services.NewRatingCalculator(),
		matcher:    services.NewCourierMatcher(),
	}
}

// MigrateDatabase creates or updates every table the adapters persist to.
func (c *CompositionRoot) MigrateDatabase() error {
	return c.gormDB.AutoMigrate(
		&userrepo.UserDTO{},
		&courierrepo.ProfileDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&ledgerrepo.EntryDTO{},
		&reviewrepo.ReviewDTO{},
		&timerrepo.TimerJobDTO{},
	)
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) walletUoWFactory() commands.WalletUoWFactory {
	return FuncWalletUoWFactory(func() commands.WalletUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) reviewUoWFactory() commands.ReviewUoWFactory {
	return FuncReviewUoWFactory(func() commands.ReviewUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateSetUserStatusCommandHandler() commands.SetUserStatusCommandHandler {
	return commands.NewSetUserStatusCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateDepositCommandHandler() commands.DepositCommandHandler {
	return commands.NewDepositCommandHandler(c.walletUoWFactory(), c.ledger)
}

func (c *CompositionRoot) CreateWithdrawCommandHandler() commands.WithdrawCommandHandler {
	return commands.NewWithdrawCommandHandler(c.walletUoWFactory(), c.ledger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.ledger, c.reputation, c.geoIndex, c.notifier,
	)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.reputation, c.notifier)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderBySellerCommandHandler() commands.CancelOrderBySellerCommandHandler {
	return commands.NewCancelOrderBySellerCommandHandler(c.orderUoWFactory(), c.ledger, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderByCourierCommandHandler() commands.CancelOrderByCourierCommandHandler {
	return commands.NewCancelOrderByCourierCommandHandler(c.orderUoWFactory(), c.reputation, c.notifier)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(
		c.orderUoWFactory(), c.ledger, c.reputation, c.notifier,
	)
}

func (c *CompositionRoot) CreateAutoConfirmDeliveryCommandHandler() commands.AutoConfirmDeliveryCommandHandler {
	return commands.NewAutoConfirmDeliveryCommandHandler(
		c.orderUoWFactory(), c.ledger, c.reputation, c.notifier,
	)
}

func (c *CompositionRoot) CreateExpireDeliveryCommandHandler() commands.ExpireDeliveryCommandHandler {
	return commands.NewExpireDeliveryCommandHandler(
		c.orderUoWFactory(), c.ledger, c.reputation, c.notifier,
	)
}

func (c *CompositionRoot) CreateCreateReviewCommandHandler() commands.CreateReviewCommandHandler {
	return commands.NewCreateReviewCommandHandler(c.reviewUoWFactory(), c.rating, c.notifier)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.geoIndex)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB),
		courierrepo.NewGormCourierProfileRepository(c.gormDB),
		c.geoIndex,
		c.matcher,
	)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBalanceQueryHandler() queries.GetBalanceQueryHandler {
	return queries.NewGetBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLedgerHistoryQueryHandler() queries.GetLedgerHistoryQueryHandler {
	return queries.NewGetLedgerHistoryQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the inbound REST adapter over every handler.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		httpin.NewGormPrincipalResolver(c.gormDB),
		httpin.CommandHandlers{
			RegisterUser:    c.CreateRegisterUserCommandHandler(),
			CreateOrder:     c.CreateCreateOrderCommandHandler(),
			AcceptOrder:     c.CreateAcceptOrderCommandHandler(),
			AdvanceOrder:    c.CreateAdvanceOrderCommandHandler(),
			CancelBySeller:  c.CreateCancelOrderBySellerCommandHandler(),
			CancelByCourier: c.CreateCancelOrderByCourierCommandHandler(),
			ConfirmDelivery: c.CreateConfirmDeliveryCommandHandler(),
			Deposit:         c.CreateDepositCommandHandler(),
			Withdraw:        c.CreateWithdrawCommandHandler(),
			CreateReview:    c.CreateCreateReviewCommandHandler(),
			UpdateLocation:  c.CreateUpdateCourierLocationCommandHandler(),
			SetUserStatus:   c.CreateSetUserStatusCommandHandler(),
		},
		httpin.QueryHandlers{
			AvailableOrders: c.CreateGetAvailableOrdersQueryHandler(),
			OrderByID:       c.CreateGetOrderByIDQueryHandler(),
			UserOrders:      c.CreateGetUserOrdersQueryHandler(),
			Balance:         c.CreateGetBalanceQueryHandler(),
			LedgerHistory:   c.CreateGetLedgerHistoryQueryHandler(),
		},
	)
}

// CreateJobManager assembles the background schedulers. The timer poller
// claims jobs outside any transaction, so it gets a plain repository over
// the root connection.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	dispatch := jobs.NewTimerDispatchJob(
		timerrepo.NewGormTimerJobRepository(c.gormDB),
		c.CreateExpireDeliveryCommandHandler(),
		c.CreateAutoConfirmDeliveryCommandHandler(),
		c.logger,
	)
	return jobs.NewJobManager(dispatch)
}

// FuncUserUoWFactory adapts a closure to the UserUoWFactory interface.
type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW { return f() }

// FuncWalletUoWFactory adapts a closure to the WalletUoWFactory interface.
type FuncWalletUoWFactory func() commands.WalletUoW

func (f FuncWalletUoWFactory) Create() commands.WalletUoW { return f() }

// FuncOrderUoWFactory adapts a closure to the OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW { return f() }

// FuncReviewUoWFactory adapts a closure to the ReviewUoWFactory interface.
type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW { return f() }
