package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams controls ordering and paging of GetAll queries.
// SortBy may name several columns ("reservation_date, reservation_time"); SortDir applies to the last one.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// OrderBy returns params sorted ascending by the given columns, without paging.
func OrderBy(columns string) QueryParams {
	return QueryParams{
		SortBy:  columns,
		SortDir: SortDirAsc,
	}
}
