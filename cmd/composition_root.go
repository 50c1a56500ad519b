package cmd

import (
	"log/slog"
	"time"

	httpadapter "pos/internal/adapters/in/http"
	"pos/internal/adapters/out/postgres"
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/ports"
	"pos/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command and query handlers. Handlers
// are cheap value types; each Create call builds a fresh one.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	identity   ports.IdentityProvider
	stock      ports.StockAdjuster
	verifier   ports.PaymentVerifier
	logger     *slog.Logger
}

// NewCompositionRoot creates the composition root over the shared adapters.
func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	identity ports.IdentityProvider,
	stock ports.StockAdjuster,
	verifier ports.PaymentVerifier,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		identity:   identity,
		stock:      stock,
		verifier:   verifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSyncDraftCommandHandler() commands.SyncDraftCommandHandler {
	return commands.NewSyncDraftCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateDeleteDraftsCommandHandler() commands.DeleteDraftsCommandHandler {
	return commands.NewDeleteDraftsCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(c.orderUoWFactory(), c.stock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateVerifyOrderCommandHandler() commands.VerifyOrderCommandHandler {
	return commands.NewVerifyOrderCommandHandler(c.orderUoWFactory(), c.identity, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory(), c.identity, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateHoldOrderCommandHandler() commands.HoldOrderCommandHandler {
	return commands.NewHoldOrderCommandHandler(c.orderUoWFactory(), c.identity, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateResumeHoldOrderCommandHandler() commands.ResumeHoldOrderCommandHandler {
	return commands.NewResumeHoldOrderCommandHandler(c.orderUoWFactory(), c.identity, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.identity, c.stock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReturnOrderCommandHandler() commands.ReturnOrderCommandHandler {
	return commands.NewReturnOrderCommandHandler(c.orderUoWFactory(), c.identity, c.stock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSplitOrderCommandHandler() commands.SplitOrderCommandHandler {
	return commands.NewSplitOrderCommandHandler(c.orderUoWFactory(), c.identity, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateMergeOrdersCommandHandler() commands.MergeOrdersCommandHandler {
	return commands.NewMergeOrdersCommandHandler(c.orderUoWFactory(), c.identity, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.verifier, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetHoldOrdersQueryHandler() queries.GetHoldOrdersQueryHandler {
	return queries.NewGetHoldOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the Echo server over every handler.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.ServerParams{
		SyncDraft:      c.CreateSyncDraftCommandHandler(),
		DeleteDrafts:   c.CreateDeleteDraftsCommandHandler(),
		FinalizeOrder:  c.CreateFinalizeOrderCommandHandler(),
		VerifyOrder:    c.CreateVerifyOrderCommandHandler(),
		RejectOrder:    c.CreateRejectOrderCommandHandler(),
		UpdateStatus:   c.CreateUpdateOrderStatusCommandHandler(),
		HoldOrder:      c.CreateHoldOrderCommandHandler(),
		ResumeHold:     c.CreateResumeHoldOrderCommandHandler(),
		CancelOrder:    c.CreateCancelOrderCommandHandler(),
		ReturnOrder:    c.CreateReturnOrderCommandHandler(),
		SplitOrder:     c.CreateSplitOrderCommandHandler(),
		MergeOrders:    c.CreateMergeOrdersCommandHandler(),
		ConfirmPayment: c.CreateConfirmPaymentCommandHandler(),

		GetHoldOrders:   c.CreateGetHoldOrdersQueryHandler(),
		GetActiveOrders: c.CreateGetActiveOrdersQueryHandler(),
	})
}

// CreateJobManager builds the scheduled jobs over the draft deletion
// handler.
func (c *CompositionRoot) CreateJobManager(schedule string, draftTTL time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDeleteDraftsCommandHandler(), schedule, draftTTL, c.logger)
}

// FuncOrderUoWFactory adapts a closure to the commands.OrderUoWFactory
// interface, bridging the ports-level factory to the narrower view command
// handlers depend on.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
