package database

import (
	"context"
	"fmt"
	"time"

	"quickbite/internal/apperr"
	"quickbite/internal/models"
	"quickbite/internal/ordering"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderRecord is the journal row of one placed order.
type OrderRecord struct {
	OrderID          string          `gorm:"primary_key;size:16" json:"order_id"`
	StudentID        string          `gorm:"index;size:64" json:"student_id"`
	StudentName      string          `gorm:"size:128" json:"student_name"`
	PickupTime       string          `gorm:"index;size:32" json:"pickup_time"`
	PickupLocation   string          `gorm:"size:64" json:"pickup_location"`
	ItemCount        int             `json:"item_count"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`
	PrepStatus       string          `gorm:"size:16" json:"preparation_status"`
	CreatedAt        time.Time       `json:"order_time"`
	EstimatedReadyAt *time.Time      `json:"estimated_ready_time,omitempty"`
	ActualReadyAt    *time.Time      `json:"actual_ready_time,omitempty"`
	DeliveredAt      *time.Time      `json:"delivered_time,omitempty"`
}

// StatusChange is the journal row of one preparation status update.
type StatusChange struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	OrderID   string    `gorm:"index;size:16" json:"order_id"`
	From      string    `gorm:"column:from_status;size:16" json:"from"`
	To        string    `gorm:"column:to_status;size:16" json:"to"`
	ChangedBy string    `gorm:"size:64" json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// Journal writes ordering events to the database.
type Journal struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewJournal returns a journal writing to db.
func NewJournal(db *gorm.DB, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{db: db, logger: logger}
}

// Observe records placements and status changes. Write failures are logged;
// they never affect the ledger.
func (j *Journal) Observe(ctx context.Context, e ordering.Event) {
	var err error
	switch e.Type {
	case ordering.EventOrderPlaced:
		err = j.recordPlacement(e.Order)
	case ordering.EventStatusChanged:
		err = j.recordStatusChange(e)
	default:
		return
	}
	if err != nil {
		j.logger.Error("journal write failed", zap.String("event", string(e.Type)), zap.Error(err))
	}
}

func (j *Journal) recordPlacement(o *models.Order) error {
	rec := OrderRecord{
		OrderID:          o.ID,
		StudentID:        o.StudentID,
		StudentName:      o.StudentName,
		PickupTime:       o.PickupTime,
		PickupLocation:   o.PickupLocation,
		ItemCount:        o.TotalItems(),
		TotalPrice:       o.TotalPrice,
		PrepStatus:       string(o.PrepStatus),
		CreatedAt:        o.CreatedAt,
		EstimatedReadyAt: o.EstimatedReadyAt,
	}
	if err := j.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("inserting order %s: %w", o.ID, err)
	}
	return nil
}

func (j *Journal) recordStatusChange(e ordering.Event) error {
	o := e.Order
	return j.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"prep_status":     string(o.PrepStatus),
			"actual_ready_at": o.ActualReadyAt,
			"delivered_at":    o.DeliveredAt,
		}
		if err := tx.Model(&OrderRecord{}).Where("order_id = ?", o.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating order %s: %w", o.ID, err)
		}
		change := StatusChange{
			OrderID:   o.ID,
			From:      string(e.From),
			To:        string(e.To),
			ChangedBy: e.ChangedBy,
			ChangedAt: e.At,
		}
		if err := tx.Create(&change).Error; err != nil {
			return fmt.Errorf("inserting status change of %s: %w", o.ID, err)
		}
		return nil
	})
}

// Order returns the journal row of an order. A missing row is
// apperr.ErrNotFound.
func (j *Journal) Order(orderID string) (*OrderRecord, error) {
	var rec OrderRecord
	err := j.db.Where("order_id = ?", orderID).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: journal has no order %s", apperr.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading order %s: %w", orderID, err)
	}
	return &rec, nil
}

// History returns the status changes of an order, oldest first.
func (j *Journal) History(orderID string) ([]StatusChange, error) {
	var changes []StatusChange
	if err := j.db.Where("order_id = ?", orderID).Order("id asc").Find(&changes).Error; err != nil {
		return nil, fmt.Errorf("loading history of %s: %w", orderID, err)
	}
	return changes, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}
