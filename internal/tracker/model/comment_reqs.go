package model

import "strings"

type AddCommentReq struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (r *AddCommentReq) Validate() error {
	r.Content = strings.TrimSpace(r.Content)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
