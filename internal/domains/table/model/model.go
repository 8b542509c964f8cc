package model

import "tablebook/shared/model"

const (
	TableName  = "tables"
	EntityName = "table"

	FieldID            = "table_id"
	FieldName          = "table_name"
	FieldCapacity      = "capacity"
	FieldReservationID = "reservation_id"
)

// Table is a physical table. ReservationID is set exactly while a reservation is seated at it.
type Table struct {
	TableID       int64  `db:"table_id"       insert:"false"`
	TableName     string `db:"table_name"`
	Capacity      int    `db:"capacity"`
	ReservationID *int64 `db:"reservation_id"`
	model.Metadata
}

func (t Table) IsOccupied() bool {
	return t.ReservationID != nil
}

func (t Table) Fits(people int) bool {
	return t.Capacity >= people
}
