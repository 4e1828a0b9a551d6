package services

import (
	"errors"
	"log"
	"time"

	"order_manager/internal/cache"
	"order_manager/internal/models"
	"order_manager/internal/repository"
)

type OrderService interface {
	CreateOrder(req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
	UpdateOrder(id uint, req *models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(id uint) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	listCache cache.OrderCache
	cacheTTL  time.Duration
}

func NewOrderService(orderRepo repository.OrderRepository, listCache cache.OrderCache, cacheTTL time.Duration) OrderService {
	return &orderService{orderRepo: orderRepo, listCache: listCache, cacheTTL: cacheTTL}
}

func (s *orderService) CreateOrder(req *models.CreateOrderRequest) (*models.Order, error) {
	order, err := req.ToOrder()
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.invalidateList()
	return order, nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetAllOrders serves the list from the cache when warm. Cache failures fall
// through to the database. The result is never nil, so an empty store still
// serializes as a JSON array.
func (s *orderService) GetAllOrders() ([]models.Order, error) {
	cached, err := s.listCache.GetOrderList()
	if err == nil {
		if cached == nil {
			cached = []models.Order{}
		}
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Warning: order list cache read failed: %v", err)
	}

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}

	if err := s.listCache.SetOrderList(orders, s.cacheTTL); err != nil {
		log.Printf("Warning: order list cache write failed: %v", err)
	}
	return orders, nil
}

// UpdateOrder merges only the supplied fields onto the stored record and
// revalidates the merged result before saving.
func (s *orderService) UpdateOrder(id uint, req *models.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(order)
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.invalidateList()
	return order, nil
}

func (s *orderService) DeleteOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.Delete(id)
	if err != nil {
		return nil, err
	}

	s.invalidateList()
	return order, nil
}

func (s *orderService) invalidateList() {
	if err := s.listCache.InvalidateOrderList(); err != nil {
		log.Printf("Warning: order list cache invalidation failed: %v", err)
	}
}
