package validation

import (
	"strings"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// ListInput is the raw text a user supplies for a new list.
type ListInput struct {
	Name        string
	Description string
	Color       string
}

// ListChanges is the raw text of a list edit. Nil fields are left unchanged.
type ListChanges struct {
	Name        *string
	Description *string
	Color       *string
}

// ListValidator turns user input into list drafts and patches
type ListValidator struct {
	validator *Validator
}

// NewListValidator creates a list validator with default limits
func NewListValidator() *ListValidator {
	return NewListValidatorWithConfig(nil)
}

// NewListValidatorWithConfig creates a list validator using cfg limits
func NewListValidatorWithConfig(cfg *config.Config) *ListValidator {
	return &ListValidator{validator: NewValidatorWithConfig(cfg)}
}

func (lv *ListValidator) checkName(ve *ValidationError, name string) {
	if !lv.validator.IsNonEmptyString(name) {
		ve.AddRequiredError("name")
		return
	}
	if max := lv.validator.listNameMaxLength(); !lv.validator.IsWithinLength(name, max) {
		ve.AddMaxLengthError("name", name, max)
	}
}

func (lv *ListValidator) checkColor(ve *ValidationError, color string) {
	if !lv.validator.IsValidColor(color) {
		ve.AddInvalidFormatError("color", color, "#rgb or #rrggbb")
	}
}

// ValidateForCreation checks input and builds a draft from it
func (lv *ListValidator) ValidateForCreation(input ListInput) (domain.ListDraft, error) {
	ve := NewValidationError()
	draft := domain.ListDraft{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Color:       strings.TrimSpace(input.Color),
	}
	lv.checkName(ve, draft.Name)
	lv.checkColor(ve, draft.Color)

	if ve.HasErrors() {
		return domain.ListDraft{}, ve
	}
	return draft, nil
}

// ValidateForUpdate checks changes and builds a patch from them
func (lv *ListValidator) ValidateForUpdate(changes ListChanges) (domain.ListPatch, error) {
	ve := NewValidationError()
	var patch domain.ListPatch

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		lv.checkName(ve, name)
		patch.Name = &name
	}
	if changes.Description != nil {
		description := strings.TrimSpace(*changes.Description)
		patch.Description = &description
	}
	if changes.Color != nil {
		color := strings.TrimSpace(*changes.Color)
		lv.checkColor(ve, color)
		patch.Color = &color
	}

	if ve.HasErrors() {
		return domain.ListPatch{}, ve
	}
	return patch, nil
}
