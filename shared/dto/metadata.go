package dto

import (
	"tablebook/shared/constant"
	"tablebook/shared/model"
	"tablebook/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateTimeFormat)
	m.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateTimeFormat)
}

// Envelope is the `{"data": ...}` wrapper every request and response body travels in.
// Data is nil when the body carried no data property.
type Envelope[T any] struct {
	Data *T `json:"data"`
}
