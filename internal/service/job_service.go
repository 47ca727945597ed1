package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkspot/internal/repository"
)

// overdueGrace is how long past the expected exit an active reservation may
// run before the sweep closes it.
const overdueGrace = 30 * time.Minute

// stalePaymentAge is how old a pending online payment may get before its
// abandoned checkout session is written off.
const stalePaymentAge = 24 * time.Hour

type JobService struct {
	repo         *repository.JobRepository
	reservations *ReservationService
}

func NewJobService(repo *repository.JobRepository, reservations *ReservationService) *JobService {
	return &JobService{repo: repo, reservations: reservations}
}

// CompleteOverdueReservations closes active reservations whose expected exit
// passed more than the grace period ago. Each one goes through the normal
// Complete path so the fare is billed and the spot released exactly as if an
// operator had finalized the stay.
func (s *JobService) CompleteOverdueReservations() error {
	ctx := context.Background()
	log.Println("Cron Job: Checking for overdue active reservations...")

	cutoff := time.Now().UTC().Add(-overdueGrace)
	ids, err := s.repo.GetOverdueActiveReservationIDs(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to get overdue reservations: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No overdue reservations found.")
		return nil
	}

	log.Printf("Cron Job: Found %d overdue reservations. IDs: %v", len(ids), ids)

	exitTime := time.Now().UTC()
	var failed int
	for _, id := range ids {
		if _, err := s.reservations.Complete(ctx, id, exitTime); err != nil {
			// Another caller may have completed or cancelled it since the
			// query ran; log and move on.
			log.Printf("Cron Job: could not complete reservation %d: %v", id, err)
			failed++
		}
	}

	log.Printf("Cron Job: Completed %d of %d overdue reservations.", len(ids)-failed, len(ids))
	return nil
}

// ExpireStalePayments writes off pending online payments whose checkout
// session was abandoned.
func (s *JobService) ExpireStalePayments() error {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-stalePaymentAge)
	ids, err := s.repo.GetStalePendingPaymentIDs(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending payments: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	return s.repo.ExpirePendingPayments(ctx, ids)
}
