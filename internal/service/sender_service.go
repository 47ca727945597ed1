package service

import (
	"context"
	"fmt"
	"log"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	"parkspot/internal/repository"
)

// SenderService sends the customer a receipt when a reservation completes or
// is cancelled. Delivery runs in a goroutine and failures only log; a lost
// receipt must never fail the reservation operation that triggered it.
type SenderService struct {
	customers *repository.CustomerRepository
	vehicles  *repository.VehicleRepository
}

func NewSenderService(customers *repository.CustomerRepository, vehicles *repository.VehicleRepository) *SenderService {
	return &SenderService{customers: customers, vehicles: vehicles}
}

func (s *SenderService) SendReceipt(res *db.Reservation, spot *db.ParkingSpot) {
	ctx := context.Background()

	customer, err := s.customers.FindCustomer(ctx, res.CustomerID)
	if err != nil {
		log.Printf("Receipt for reservation %d skipped, customer %d not resolvable: %v", res.ID, res.CustomerID, err)
		return
	}

	plate := ""
	if vehicle, err := s.vehicles.FindVehicle(ctx, res.VehicleID); err == nil {
		plate = vehicle.Plate
	}

	spotNumber := "-"
	if spot != nil {
		spotNumber = spot.Number
	}

	data := entities.ReceiptData{
		CustomerName:       customer.Name,
		CustomerEmail:      customer.Email,
		CustomerPhone:      customer.Phone,
		SpotNumber:         spotNumber,
		VehiclePlate:       plate,
		EntryTimeFormatted: res.EntryTime.Format("02 Jan 2006 15:04 MST"),
		Status:             res.Status,
	}
	if res.ExitTime != nil {
		data.ExitTimeFormatted = res.ExitTime.Format("02 Jan 2006 15:04 MST")
	}
	if res.TotalAmount != nil {
		data.TotalAmount = fmt.Sprintf("%.2f", *res.TotalAmount)
	}

	subject := fmt.Sprintf("Your ParkSpot stay is %s - Reservation #%d", data.Status, res.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation at ParkSpot is %s.\n\n"+
			"Reservation Details:\n"+
			"Reservation: #%d\n"+
			"Spot: %s\n"+
			"Vehicle plate: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n",
		data.CustomerName, data.Status, res.ID, data.SpotNumber, data.VehiclePlate,
		data.EntryTimeFormatted, data.ExitTimeFormatted,
	)
	if data.TotalAmount != "" {
		body += fmt.Sprintf("Total amount: %s EUR\n", data.TotalAmount)
	}
	body += "\nThank you for choosing ParkSpot.\n"

	smsMessage := fmt.Sprintf("ParkSpot: reservation #%d is %s.\nSpot %s, check-in %s.\nMore details in your email.",
		res.ID, data.Status, data.SpotNumber,
		res.EntryTime.Format("02/01 15:04"),
	)

	go func() {
		if err := SendEmailWithSendGrid(data.CustomerEmail, data.CustomerName, subject, body, ""); err != nil {
			log.Printf("Receipt email for reservation %d failed: %v", res.ID, err)
		}
		if data.CustomerPhone != "" {
			if err := SendSMS(data.CustomerPhone, smsMessage); err != nil {
				log.Printf("Receipt SMS for reservation %d failed: %v", res.ID, err)
			}
		}
	}()
}
