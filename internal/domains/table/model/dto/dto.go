package dto

import (
	"time"

	"tablebook/internal/domains/table/model"
	gDto "tablebook/shared/dto"
	gModel "tablebook/shared/model"
)

type CreateTableRequest struct {
	TableName string `json:"table_name" validate:"required,min=2"`
	Capacity  *int   `json:"capacity"   validate:"required,gt=0"`
}

func (c CreateTableRequest) ToModel(now time.Time) model.Table {
	capacity := 0
	if c.Capacity != nil {
		capacity = *c.Capacity
	}

	return model.Table{
		TableName: c.TableName,
		Capacity:  capacity,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type SeatRequest struct {
	ReservationID *int64 `json:"reservation_id" validate:"required"`
}

type TableResponse struct {
	TableID       int64  `json:"table_id"`
	TableName     string `json:"table_name"`
	Capacity      int    `json:"capacity"`
	ReservationID *int64 `json:"reservation_id"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.TableID = model.TableID
	r.TableName = model.TableName
	r.Capacity = model.Capacity
	r.ReservationID = model.ReservationID
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Table) []TableResponse {
	res := make([]TableResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
