package service

import (
	"context"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	"parkspot/internal/repository"
)

// CustomerService covers the customer side: account registration and the
// vehicles a customer keeps on file.
type CustomerService struct {
	customers *repository.CustomerRepository
	vehicles  *repository.VehicleRepository
}

func NewCustomerService(customers *repository.CustomerRepository, vehicles *repository.VehicleRepository) *CustomerService {
	return &CustomerService{customers: customers, vehicles: vehicles}
}

func (s *CustomerService) RegisterCustomer(ctx context.Context, req entities.CustomerRequest) (*db.Customer, error) {
	c := &db.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.customers.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*db.Customer, error) {
	return s.customers.FindCustomer(ctx, id)
}

func (s *CustomerService) RegisterVehicle(ctx context.Context, customerID int, req entities.VehicleRequest) (*db.Vehicle, error) {
	if _, err := s.customers.FindCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	v := &db.Vehicle{
		CustomerID: customerID,
		Plate:      req.Plate,
		Model:      req.Model,
		Category:   req.Category,
	}
	if err := s.vehicles.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *CustomerService) ListVehicles(ctx context.Context, customerID int) ([]db.Vehicle, error) {
	return s.vehicles.ListVehiclesByCustomer(ctx, customerID)
}

func (s *CustomerService) DeleteVehicle(ctx context.Context, id, customerID int) error {
	return s.vehicles.DeleteVehicle(ctx, id, customerID)
}
