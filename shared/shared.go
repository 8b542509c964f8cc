package shared

import (
	"reflect"
	"strconv"
	"strings"

	"tablebook/shared/constant"
	"tablebook/shared/dto"
	"tablebook/shared/timezone"
)

const cacheKeySeparator = ":"

// TransformFields converts the non-zero, db-tagged fields of a struct into an update map
// and stamps updated_at.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldUpdatedAt] = timezone.Now()

	return updatedFields
}

// FilterByID matches a single row by primary key. The bind name is prefixed so that
// an update may set the same column it filters on.
func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				ArgName:  "filter_" + fieldID,
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// ParseID parses a positive integer path parameter.
func ParseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// DigitsOnly strips everything but ASCII digits, so "(555) 123-4567" and "555.123.4567" compare equal.
func DigitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if '0' <= r && r <= '9' {
			return r
		}

		return -1
	}, value)
}
