package model

import (
	"slices"
	"time"

	"tablebook/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID           = "reservation_id"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldMobileNumber = "mobile_number"
	FieldDate         = "reservation_date"
	FieldTime         = "reservation_time"
	FieldPeople       = "people"
	FieldStatus       = "status"
)

const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Statuses in lifecycle order.
var Statuses = []string{StatusBooked, StatusSeated, StatusFinished, StatusCancelled}

// transitions is the reservation lifecycle. Finished and cancelled have no way out.
var transitions = map[string][]string{
	StatusBooked: {StatusSeated, StatusCancelled},
	StatusSeated: {StatusFinished},
}

type Reservation struct {
	ReservationID   int64     `db:"reservation_id" insert:"false"`
	FirstName       string    `db:"first_name"`
	LastName        string    `db:"last_name"`
	MobileNumber    string    `db:"mobile_number"`
	ReservationDate time.Time `db:"reservation_date"`
	ReservationTime string    `db:"reservation_time"`
	People          int       `db:"people"`
	Status          string    `db:"status"`
	model.Metadata
}

func IsStatus(status string) bool {
	return slices.Contains(Statuses, status)
}

// CanTransition reports whether a reservation may move from one status to another.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// IsSetByTable reports whether a status is only reached by seating at or finishing a table.
func IsSetByTable(status string) bool {
	return status == StatusSeated || status == StatusFinished
}
