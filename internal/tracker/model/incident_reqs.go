package model

import "strings"

type CreateIncidentReq struct {
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description" validate:"required"`
	Category    string       `json:"category" validate:"required"`
	Priority    string       `json:"priority" validate:"omitempty,oneof=low medium high"`
	Evidence    []Attachment `json:"evidence" validate:"omitempty,dive"`
}

func (r *CreateIncidentReq) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))

	if r.Priority == "" {
		r.Priority = PriorityMedium
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	if !AllowedCategories[r.Category] {
		return &ErrorDetail{Code: "bad_request", Message: "invalid category"}
	}
	return nil
}

// UpdateIncidentReq is the generic field merge. Status and assignment have
// their own operations and are deliberately absent here.
type UpdateIncidentReq struct {
	Title       *string      `json:"title" validate:"omitempty,max=200"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	Priority    *string      `json:"priority" validate:"omitempty,oneof=low medium high"`
	Evidence    []Attachment `json:"evidence" validate:"omitempty,dive"`
}

func (r *UpdateIncidentReq) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if *r.Title == "" {
			return &ErrorDetail{Code: "bad_request", Message: "title must not be empty"}
		}
	}
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
		if *r.Description == "" {
			return &ErrorDetail{Code: "bad_request", Message: "description must not be empty"}
		}
	}
	if r.Category != nil {
		*r.Category = strings.TrimSpace(*r.Category)
		if !AllowedCategories[*r.Category] {
			return &ErrorDetail{Code: "bad_request", Message: "invalid category"}
		}
	}
	if r.Priority != nil {
		*r.Priority = strings.ToLower(strings.TrimSpace(*r.Priority))
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type UpdateStatusReq struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment"`
}

func (r *UpdateStatusReq) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Comment = strings.TrimSpace(r.Comment)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	if !AllowedStatuses[r.Status] {
		return &ErrorDetail{Code: "bad_request", Message: "invalid status"}
	}
	return nil
}

type AssignIncidentReq struct {
	AssignedTo string `json:"assignedTo" validate:"required"`
}

func (r *AssignIncidentReq) Validate() error {
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type BulkUpdateReq struct {
	IDs    []string `json:"ids" validate:"required,min=1,dive,required"`
	Status string   `json:"status" validate:"required"`
}

func (r *BulkUpdateReq) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	if !AllowedStatuses[r.Status] {
		return &ErrorDetail{Code: "bad_request", Message: "invalid status"}
	}
	return nil
}

type BulkDeleteReq struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

func (r *BulkDeleteReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// ListIncidentsReq carries list filters, free-text search, sort and pagination.
type ListIncidentsReq struct {
	Status    string `query:"status" validate:"omitempty,oneof=open in-progress resolved"`
	Category  string `query:"category"`
	Priority  string `query:"priority" validate:"omitempty,oneof=low medium high"`
	Search    string `query:"search" validate:"omitempty,max=200"`
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=created_at updated_at title priority status category"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (r *ListIncidentsReq) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Category = strings.TrimSpace(r.Category)
	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))
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

	if r.Category != "" && !AllowedCategories[r.Category] {
		return &ErrorDetail{Code: "bad_request", Message: "invalid category"}
	}
	return nil
}
