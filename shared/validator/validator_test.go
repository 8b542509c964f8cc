package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"tablebook/shared/failure"
	"tablebook/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableRequest struct {
	TableName string `json:"table_name" validate:"required,min=2"`
	Capacity  int    `json:"capacity"   validate:"required,gt=0"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    tableRequest
		wantMsg string
	}{
		{name: "valid", data: tableRequest{TableName: "Bar #1", Capacity: 2}},
		{name: "missing name", data: tableRequest{Capacity: 2}, wantMsg: "table_name is missing."},
		{name: "short name", data: tableRequest{TableName: "x", Capacity: 2}, wantMsg: "table_name must be at least 2 characters long"},
		{name: "missing capacity", data: tableRequest{TableName: "Bar"}, wantMsg: "capacity is missing."},
		{name: "negative capacity", data: tableRequest{TableName: "Bar", Capacity: -1}, wantMsg: "capacity must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestDecodeThenValidate(t *testing.T) {
	var req tableRequest

	require.NoError(t, validator.Decode(strings.NewReader(`{"table_name":"Patio","capacity":6}`), &req))
	require.NoError(t, validator.ValidateStruct(&req))
	assert.Equal(t, "Patio", req.TableName)
	assert.Equal(t, 6, req.Capacity)
}

func TestDecode(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		var req tableRequest

		err := validator.Decode(strings.NewReader(""), &req)

		assert.Equal(t, failure.MissingBody, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		var req tableRequest

		err := validator.Decode(strings.NewReader(`{"table_name":`), &req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("wrong type", func(t *testing.T) {
		var req tableRequest

		err := validator.Decode(strings.NewReader(`{"capacity":"six"}`), &req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
