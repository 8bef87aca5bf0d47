package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Admission and lifecycle errors. Controllers map these to HTTP codes with
// errors.Is, so they must stay distinguishable.
var (
	ErrTableNotFound       = errors.New("table not found")
	ErrTableUnavailable    = errors.New("table is not available")
	ErrCapacityExceeded    = errors.New("party size exceeds table capacity")
	ErrPastTime            = errors.New("reservation time must be in the future")
	ErrSlotConflict        = errors.New("table is already reserved for this time window")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotOwner            = errors.New("reservation belongs to another user")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")
)

// ReservationChanges carries the mutable fields of an update request;
// nil means "leave as is".
type ReservationChanges struct {
	TableID         *uint      `json:"table_id"`
	ReservationTime *time.Time `json:"reservation_time"`
	PartySize       *int       `json:"party_size"`
	Note            *string    `json:"note"`
}

// ReservationService owns the reservation ledger: it runs the admission
// check and performs every status transition.
//
// Concurrent creates for the same table are serialized two ways: a keyed
// in-process mutex held across check+insert, and a row-level lock on the
// Table row inside the transaction (MySQL only; SQLite has no FOR UPDATE,
// there the mutex alone carries the guarantee). The loser of a race re-runs
// the overlap scan under the lock and receives ErrSlotConflict.
type ReservationService struct {
	db         *gorm.DB
	mailer     *Mailer
	tableLocks sync.Map // table ID -> *sync.Mutex
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

// WithMailer enables confirmation mail; keeps the zero-config default quiet.
func (s *ReservationService) WithMailer(m *Mailer) *ReservationService {
	s.mailer = m
	return s
}

func (s *ReservationService) lockTable(tableID uint) *sync.Mutex {
	v, _ := s.tableLocks.LoadOrStore(tableID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// CheckAvailability is the read-only admission check: table exists and is
// available, party size fits, time is in the future, and the candidate
// window does not overlap any pending/confirmed reservation on the table.
func (s *ReservationService) CheckAvailability(tableID uint, at time.Time, partySize int) error {
	return s.admit(s.db, tableID, at, partySize, 0, false)
}

func (s *ReservationService) admit(tx *gorm.DB, tableID uint, at time.Time, partySize int, excludeID uint, lockRow bool) error {
	q := tx
	if lockRow && tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var table models.Table
	if err := q.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTableNotFound
		}
		return err
	}

	if !table.Available {
		return ErrTableUnavailable
	}
	if partySize < 1 || partySize > table.Capacity {
		return ErrCapacityExceeded
	}
	if partySize > models.MaxPartySize {
		return ErrCapacityExceeded
	}
	if !at.After(time.Now()) {
		return ErrPastTime
	}

	// Half-open overlap test: existing_start < cand_end AND
	// cand_start < existing_end. With every window fixed at 2h this is
	// equivalent to existing_start in (cand_start-2h, cand_end), which
	// keeps the query portable across MySQL and SQLite.
	windowEnd := at.Add(models.ReservationDuration)
	conflictScan := tx.Model(&models.Reservation{}).
		Where("table_id = ? AND status <> ?", tableID, models.ReservationStatusCancelled).
		Where("reservation_time > ? AND reservation_time < ?",
			at.Add(-models.ReservationDuration), windowEnd)
	if excludeID != 0 {
		conflictScan = conflictScan.Where("id <> ?", excludeID)
	}

	var conflicts int64
	if err := conflictScan.Count(&conflicts).Error; err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrSlotConflict
	}

	return nil
}

// Create admits and persists a new pending reservation.
func (s *ReservationService) Create(userID, tableID uint, at time.Time, partySize int, note string) (*models.Reservation, error) {
	mu := s.lockTable(tableID)
	defer mu.Unlock()

	reservation := &models.Reservation{
		UserID:          userID,
		TableID:         tableID,
		ReservationTime: at,
		PartySize:       partySize,
		Status:          models.ReservationStatusPending,
		Note:            note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.admit(tx, tableID, at, partySize, 0, true); err != nil {
			return err
		}
		return tx.Create(reservation).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d created for table %d at %s (party of %d)",
		reservation.ID, tableID, at.Format(time.RFC3339), partySize)

	return s.reload(reservation.ID)
}

// Update applies owner-requested changes. Any change to table, time or
// party size re-runs the admission check with the reservation itself
// excluded from the conflict set.
func (s *ReservationService) Update(id, requesterID uint, changes ReservationChanges) (*models.Reservation, error) {
	var current models.Reservation
	if err := s.db.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if current.UserID != requesterID {
		return nil, ErrNotOwner
	}

	targetTable := current.TableID
	if changes.TableID != nil {
		targetTable = *changes.TableID
	}

	mu := s.lockTable(targetTable)
	defer mu.Unlock()

	var updated models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}
		if updated.Status == models.ReservationStatusCancelled {
			return ErrInvalidTransition
		}

		newTime := updated.ReservationTime
		if changes.ReservationTime != nil {
			newTime = *changes.ReservationTime
		}
		newSize := updated.PartySize
		if changes.PartySize != nil {
			newSize = *changes.PartySize
		}

		needsCheck := targetTable != updated.TableID ||
			!newTime.Equal(updated.ReservationTime) ||
			newSize != updated.PartySize
		if needsCheck {
			if err := s.admit(tx, targetTable, newTime, newSize, updated.ID, true); err != nil {
				return err
			}
		}

		updated.TableID = targetTable
		updated.ReservationTime = newTime
		updated.PartySize = newSize
		if changes.Note != nil {
			updated.Note = *changes.Note
		}

		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	return s.reload(updated.ID)
}

// Cancel moves a reservation to cancelled. The owner or staff may cancel;
// cancelling an already cancelled reservation is a no-op, not an error.
func (s *ReservationService) Cancel(id, requesterID uint, requesterRole string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	staff := requesterRole == models.RoleStaff || requesterRole == models.RoleAdmin
	if reservation.UserID != requesterID && !staff {
		return nil, ErrNotOwner
	}

	if reservation.Status == models.ReservationStatusCancelled {
		return s.reload(reservation.ID)
	}

	reservation.Status = models.ReservationStatusCancelled
	if err := s.db.Save(&reservation).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d cancelled", reservation.ID)
	return s.reload(reservation.ID)
}

// Confirm is staff-only (enforced at the router) and valid from pending
// only. It records a notification for the owner and mails them when SMTP
// is configured.
func (s *ReservationService) Confirm(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Table").First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.Status != models.ReservationStatusPending {
			return ErrInvalidTransition
		}

		reservation.Status = models.ReservationStatusConfirmed
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}

		notification := models.Notification{
			UserID:  reservation.UserID,
			Title:   "Reservation confirmed",
			Message: fmt.Sprintf("Your reservation for table %s on %s has been confirmed.",
				reservation.Table.TableNumber,
				reservation.ReservationTime.Format("2006-01-02 15:04")),
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		var owner models.User
		if err := s.db.First(&owner, reservation.UserID).Error; err == nil {
			go func() {
				if err := s.mailer.SendReservationConfirmed(owner.Email, reservation); err != nil {
					utils.ErrorLogger.Printf("Failed to send confirmation mail for reservation %d: %v", reservation.ID, err)
				}
			}()
		}
	}

	utils.InfoLogger.Printf("Reservation %d confirmed", reservation.ID)
	return s.reload(reservation.ID)
}

func (s *ReservationService) reload(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.Preload("Table").First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}
