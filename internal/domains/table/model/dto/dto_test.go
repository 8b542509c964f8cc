package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"tablebook/internal/domains/table/model"
	"tablebook/internal/domains/table/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableRequestToModel(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	capacity := 6

	table := dto.CreateTableRequest{TableName: "Patio", Capacity: &capacity}.ToModel(now)

	assert.Equal(t, "Patio", table.TableName)
	assert.Equal(t, 6, table.Capacity)
	assert.Nil(t, table.ReservationID)
	assert.Equal(t, now, table.CreatedAt)
}

func TestTableResponseJSON(t *testing.T) {
	reservationID := int64(9)

	free := dto.FromModels([]model.Table{{TableID: 1, TableName: "#1", Capacity: 6}})
	seated := dto.FromModels([]model.Table{{TableID: 2, TableName: "#2", Capacity: 2, ReservationID: &reservationID}})

	body, err := json.Marshal(free[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"reservation_id":null`)

	body, err = json.Marshal(seated[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"reservation_id":9`)
	assert.Contains(t, string(body), `"table_name":"#2"`)
}
