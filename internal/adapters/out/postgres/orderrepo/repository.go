package orderrepo

import (
	"context"
	"errors"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order back conditioned on the status it was loaded
// with. A concurrent writer that moved the order since our load makes the
// WHERE clause miss, and the caller gets a StaleStateError instead of a
// silent lost update. Item rows are replaced wholesale; line-level diffing
// is not worth the complexity at order sizes.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedStatus := aggregate.LoadedStatus().String()

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, loadedStatus).
		Select("*").Omit("id", "Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewStaleStateError("order", aggregate.ID().String(), loadedStatus)
	}

	if err := r.replaceItems(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) replaceItems(ctx context.Context, dto OrderDTO) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&dto.Items).Error
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDraftBySessionKey retrieves the session's draft order, if any. Each
// session owns at most one draft.
func (r *GormOrderRepository) GetDraftBySessionKey(ctx context.Context, sessionKey string) (*order.Order, error) {
	if sessionKey == "" {
		return nil, errs.NewValueIsRequiredError("session key")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "session_key = ? AND status = ?", sessionKey, order.Creating.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("draft", sessionKey)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDraftsOlderThan retrieves all drafts not touched since the cutoff.
func (r *GormOrderRepository) GetDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Find(&dtos, "status = ? AND updated_at < ?", order.Creating.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	return dtosToDomain(dtos)
}

// GetAllInStatus retrieves all orders currently in the given status.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Find(&dtos, "status = ?", status.String()).Error
	if err != nil {
		return nil, err
	}

	return dtosToDomain(dtos)
}

// DeleteByIDs removes the given orders and their items. Only drafts are
// deleted; finalized orders are immutable history and silently skipped.
func (r *GormOrderRepository) DeleteByIDs(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		raw[i] = id.Bytes()
	}

	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", raw).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("id IN ? AND status = ?", raw, order.Creating.String()).
		Delete(&OrderDTO{}).Error
}

// AddReturn saves an accepted return record and its lines.
func (r *GormOrderRepository) AddReturn(ctx context.Context, record *order.ReturnRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := returnFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetReturnsForOrder retrieves all returns recorded against the order,
// oldest first.
func (r *GormOrderRepository) GetReturnsForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.ReturnRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		Order("processed_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*order.ReturnRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := returnToDomain(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}

func dtosToDomain(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
