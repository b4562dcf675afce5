package catalogrepo

import (
	"context"
	"fmt"
	"sync"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusCatalog names a status lookup table.
type StatusCatalog string

const (
	OrderStatuses  StatusCatalog = "order_statuses"
	BudgetStatuses StatusCatalog = "budget_statuses"
)

// StatusDTO is a row of a status lookup table. Both catalogs share the layout.
type StatusDTO struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"type:varchar(64);not null;uniqueIndex"`
}

type OrderStatusDTO struct{ StatusDTO }

func (OrderStatusDTO) TableName() string { return string(OrderStatuses) }

type BudgetStatusDTO struct{ StatusDTO }

func (BudgetStatusDTO) TableName() string { return string(BudgetStatuses) }

// GormStatusCatalog maps status names to catalog ids and back. Both directions
// are cached after the first read of a catalog; catalogs only change on Seed.
type GormStatusCatalog struct {
	db     *gorm.DB
	mu     sync.RWMutex
	byName map[StatusCatalog]map[string]int
	byID   map[StatusCatalog]map[int]string
}

func NewGormStatusCatalog(db *gorm.DB) *GormStatusCatalog {
	return &GormStatusCatalog{
		db:     db,
		byName: make(map[StatusCatalog]map[string]int),
		byID:   make(map[StatusCatalog]map[int]string),
	}
}

// Seed inserts every domain status, using the enum value as id. Existing rows
// are left untouched.
func (c *GormStatusCatalog) Seed(ctx context.Context) error {
	orderRows := make([]OrderStatusDTO, 0)
	for _, s := range order.Statuses() {
		orderRows = append(orderRows, OrderStatusDTO{StatusDTO{ID: int(s), Name: s.String()}})
	}
	budgetRows := make([]BudgetStatusDTO, 0)
	for _, s := range order.BudgetStatuses() {
		budgetRows = append(budgetRows, BudgetStatusDTO{StatusDTO{ID: int(s), Name: s.String()}})
	}

	db := c.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true})
	if err := db.Create(&orderRows).Error; err != nil {
		return err
	}
	if err := db.Create(&budgetRows).Error; err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName = make(map[StatusCatalog]map[string]int)
	c.byID = make(map[StatusCatalog]map[int]string)
	return nil
}

// FindStatusByName returns the catalog id of name, or ObjectNotFoundError.
func (c *GormStatusCatalog) FindStatusByName(ctx context.Context, catalog StatusCatalog, name string) (int, error) {
	if err := c.load(ctx, catalog); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byName[catalog][name]
	if !ok {
		return 0, errs.NewObjectNotFoundError(string(catalog), name)
	}
	return id, nil
}

// FindStatusName is the reverse of FindStatusByName.
func (c *GormStatusCatalog) FindStatusName(ctx context.Context, catalog StatusCatalog, id int) (string, error) {
	if err := c.load(ctx, catalog); err != nil {
		return "", err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.byID[catalog][id]
	if !ok {
		return "", errs.NewObjectNotFoundError(string(catalog), id)
	}
	return name, nil
}

func (c *GormStatusCatalog) load(ctx context.Context, catalog StatusCatalog) error {
	c.mu.RLock()
	_, cached := c.byName[catalog]
	c.mu.RUnlock()
	if cached {
		return nil
	}

	var rows []StatusDTO
	if err := c.db.WithContext(ctx).Table(string(catalog)).Find(&rows).Error; err != nil {
		return fmt.Errorf("load %s: %w", catalog, err)
	}

	byName := make(map[string]int, len(rows))
	byID := make(map[int]string, len(rows))
	for _, r := range rows {
		byName[r.Name] = r.ID
		byID[r.ID] = r.Name
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName[catalog] = byName
	c.byID[catalog] = byID
	return nil
}

// OrderStatusID and the helpers below translate domain statuses through the catalog.
func (c *GormStatusCatalog) OrderStatusID(ctx context.Context, s order.Status) (int, error) {
	return c.FindStatusByName(ctx, OrderStatuses, s.String())
}

func (c *GormStatusCatalog) OrderStatus(ctx context.Context, id int) (order.Status, error) {
	name, err := c.FindStatusName(ctx, OrderStatuses, id)
	if err != nil {
		return order.Unknown, err
	}
	return order.ParseStatus(name)
}

func (c *GormStatusCatalog) BudgetStatusID(ctx context.Context, s order.BudgetStatus) (int, error) {
	return c.FindStatusByName(ctx, BudgetStatuses, s.String())
}

func (c *GormStatusCatalog) BudgetStatus(ctx context.Context, id int) (order.BudgetStatus, error) {
	name, err := c.FindStatusName(ctx, BudgetStatuses, id)
	if err != nil {
		return order.BudgetUnknown, err
	}
	return order.ParseBudgetStatus(name)
}
