package dto

import (
	"encoding/json"
	"strings"
	"time"

	"tablebook/internal/domains/reservation/model"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	gModel "tablebook/shared/model"
)

// Payload is the raw `data` object of a reservation request. It is kept undecoded so the
// validator can tell a missing field from an empty one and a number from a string.
type Payload map[string]json.RawMessage

// ReservationRequest is a payload that passed validation.
type ReservationRequest struct {
	FirstName       string `db:"first_name"       json:"first_name"`
	LastName        string `db:"last_name"        json:"last_name"`
	MobileNumber    string `db:"mobile_number"    json:"mobile_number"`
	ReservationDate string `db:"reservation_date" json:"reservation_date"`
	ReservationTime string `db:"reservation_time" json:"reservation_time"`
	People          int    `db:"people"           json:"people"`
	Status          string `json:"status"`
}

// ToModel builds a new booked reservation stamped with now.
func (r ReservationRequest) ToModel(now time.Time) model.Reservation {
	date, _ := time.Parse(constant.DateFormat, r.ReservationDate)

	return model.Reservation{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		MobileNumber:    r.MobileNumber,
		ReservationDate: date,
		ReservationTime: r.ReservationTime,
		People:          r.People,
		Status:          model.StatusBooked,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type ReservationResponse struct {
	ReservationID   int64  `json:"reservation_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ReservationID = model.ReservationID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.MobileNumber = model.MobileNumber
	// DATE columns come back as UTC midnight; converting zones would shift the day.
	r.ReservationDate = model.ReservationDate.Format(constant.DateFormat)
	r.ReservationTime = clock(model.ReservationTime)
	r.People = model.People
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// clock trims a TIME column value to HH:MM. lib/pq scans TIME as a time.Time, which
// database/sql renders into a string as RFC 3339 ("0000-01-01T18:00:00Z").
func clock(value string) string {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.Format(constant.TimeFormat)
	}

	parts := strings.SplitN(value, ":", 3)
	if len(parts) < 2 {
		return value
	}

	return parts[0] + ":" + parts[1]
}

// StatusUpdate is the column set written by a status change.
type StatusUpdate struct {
	Status string `db:"status" json:"status"`
}
