package repository

import (
	"errors"

	"gorm.io/gorm"

	"order_manager/internal/models"
)

// ErrNotFound is returned when no order exists for the given id.
var ErrNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetAll() ([]models.Order, error)
	Update(order *models.Order) error
	Delete(id uint) (*models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	// Find leaves the slice nil on zero rows; the list endpoint promises an
	// array, so start from an empty one.
	orders := []models.Order{}
	err := r.db.Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// Delete removes the order and returns the removed record so callers can echo
// it back.
func (r *orderRepository) Delete(id uint) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&models.Order{}, id).Error; err != nil {
		return nil, err
	}
	return order, nil
}
