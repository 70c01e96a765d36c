package docsystem

import (
	"context"
	"errors"
	"strings"

	"notebook/internal/config"
	"notebook/internal/domain"
	docsysRepo "notebook/internal/domain/repositories/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validationErr converts ozzo validation errors into domain validation errors.
// Anything else (an internal rule failure) passes through.
func validationErr(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	var single validation.Error
	if errors.As(err, &errs) || errors.As(err, &single) {
		return domain.NewValidation(err.Error())
	}
	return err
}

// nameRules validates a trimmed folder name or document title
func nameRules(maxLength int) []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.RuneLength(1, maxLength),
	}
}

// validateFolderName trims and validates a folder name in place
func validateFolderName(name *string) error {
	*name = strings.TrimSpace(*name)
	return validationErr(validation.Errors{
		"name": validation.Validate(*name, nameRules(config.MaxFolderNameLength)...),
	}.Filter())
}

// validateDocumentTitle trims and validates a document title in place
func validateDocumentTitle(title *string) error {
	*title = strings.TrimSpace(*title)
	return validationErr(validation.Errors{
		"title": validation.Validate(*title, nameRules(config.MaxDocumentTitleLength)...),
	}.Filter())
}

// FolderResolver checks folder references supplied by a requester.
// A reference is valid when the folder exists and the requester owns it;
// both failures report ReferenceInvalid so a foreign id is
// indistinguishable from a missing one.
type FolderResolver struct {
	folderRepo docsysRepo.FolderRepository
}

// NewFolderResolver creates a new folder reference resolver
func NewFolderResolver(folderRepo docsysRepo.FolderRepository) *FolderResolver {
	return &FolderResolver{folderRepo: folderRepo}
}

// Resolve validates folderID for userID. A nil reference means root and is always valid.
func (v *FolderResolver) Resolve(ctx context.Context, field string, userID int64, folderID *int64) error {
	if folderID == nil {
		return nil
	}

	folder, err := v.folderRepo.GetByID(ctx, *folderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewReferenceInvalid(field, *folderID)
		}
		return err
	}

	if folder.OwnerID != userID {
		return domain.NewReferenceInvalid(field, *folderID)
	}
	return nil
}
