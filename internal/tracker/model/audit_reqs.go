package model

import "strings"

// ListAuditLogsReq carries search/sort/pagination for the audit log read side.
type ListAuditLogsReq struct {
	Search    string `query:"search" validate:"omitempty,max=200"`
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=timestamp action resource_type"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (r *ListAuditLogsReq) Validate() error {
	r.Search = strings.TrimSpace(r.Search)

	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = 10
	}
	if r.Limit > 100 {
		r.Limit = 100
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
