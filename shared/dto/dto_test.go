package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"tablebook/shared/constant"
	"tablebook/shared/dto"
	"tablebook/shared/model"
	"tablebook/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt})

	assert.Equal(t, timezone.Format(createdAt, constant.DateTimeFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(updatedAt, constant.DateTimeFormat), metadata.UpdatedAt)
}

func TestEnvelope(t *testing.T) {
	type payload struct {
		Status string `json:"status"`
	}

	tests := []struct {
		name    string
		body    string
		wantNil bool
	}{
		{name: "with data", body: `{"data":{"status":"seated"}}`},
		{name: "without data", body: `{}`, wantNil: true},
		{name: "null data", body: `{"data":null}`, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := dto.Envelope[payload]{}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &env))

			if tt.wantNil {
				assert.Nil(t, env.Data)

				return
			}

			require.NotNil(t, env.Data)
			assert.Equal(t, "seated", env.Data.Status)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "reservation_date", Operator: dto.FilterOperatorEq, Value: "2024-03-15", Table: "reservations"},
			wantWhere: "reservations.reservation_date = :reservation_date",
			wantArgs:  map[string]any{"reservation_date": "2024-03-15"},
		},
		{
			name:      "eq with arg name",
			filter:    dto.Filter{ArgName: "filter_table_id", Field: "table_id", Operator: dto.FilterOperatorEq, Value: int64(7)},
			wantWhere: "table_id = :filter_table_id",
			wantArgs:  map[string]any{"filter_table_id": int64(7)},
		},
		{
			name:      "digits like",
			filter:    dto.Filter{Field: "mobile_number", Operator: dto.FilterOperatorDigitsLike, Value: "5551234"},
			wantWhere: "regexp_replace(mobile_number, '[^0-9]', '', 'g') LIKE :mobile_number",
			wantArgs:  map[string]any{"mobile_number": "%5551234%"},
		},
		{
			name:      "not in slice",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorNotIn, Value: []string{"finished", "cancelled"}},
			wantWhere: "status NOT IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "finished", "status_1": "cancelled"},
		},
		{
			name:      "not in scalar",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorNotIn, Value: "booked"},
			wantWhere: "status NOT IN (:status)",
			wantArgs:  map[string]any{"status": "booked"},
		},
		{
			name:      "not eq",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorNotEq, Value: "finished"},
			wantWhere: "status != :status",
			wantArgs:  map[string]any{"status": "finished"},
		},
		{
			name:      "table qualified",
			filter:    dto.Filter{Field: "reservation_id", Operator: dto.FilterOperatorEq, Value: 4, Table: "tables"},
			wantWhere: "tables.reservation_id = :reservation_id",
			wantArgs:  map[string]any{"reservation_id": 4},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "status", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "reservation_date", Operator: dto.FilterOperatorEq, Value: "2024-03-15"},
			dto.Filter{Field: "status", Operator: dto.FilterOperatorNotEq, Value: "finished"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "a", Field: "people", Operator: dto.FilterOperatorEq, Value: 2},
					dto.Filter{ArgName: "b", Field: "people", Operator: dto.FilterOperatorEq, Value: 8},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(reservation_date = :reservation_date AND status != :status AND (people = :a OR people = :b))", where)
	assert.Equal(t, map[string]any{"reservation_date": "2024-03-15", "status": "finished", "a": 2, "b": 8}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestOrderBy(t *testing.T) {
	params := dto.OrderBy("reservation_date, reservation_time")

	assert.Equal(t, "reservation_date, reservation_time", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
	assert.Zero(t, params.Page)
	assert.Zero(t, params.Limit)
}
