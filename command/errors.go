package command

import (
	"errors"

	"github.com/goliatone/go-accountctl/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrAccountIDRequired indicates an account identifier was omitted.
	ErrAccountIDRequired = types.ErrAccountIDRequired
	// ErrAccountNotFound indicates the requested account was not found.
	ErrAccountNotFound = types.ErrAccountNotFound
	// ErrActivityVerbRequired indicates an activity record was missing its verb.
	ErrActivityVerbRequired = errors.New("accountctl: activity verb required")
	// ErrDeleteNotConfirmed indicates the operator did not confirm the deletion.
	ErrDeleteNotConfirmed = errors.New("accountctl: delete not confirmed")
)

const (
	textCodeAccountCreateFailed = "ACCOUNT_CREATE_FAILED"
	textCodeProfileCreateFailed = "PROFILE_CREATE_FAILED"
	textCodeAccountLookupFailed = "ACCOUNT_LOOKUP_FAILED"
	textCodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	textCodeAccountDeleteFailed = "ACCOUNT_DELETE_FAILED"
	textCodeEmailExists         = "EMAIL_EXISTS"
)

// TextCodeOf returns the go-errors text code attached to err, if any.
func TextCodeOf(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return ""
}

func createError(err error, metadata map[string]any) error {
	if errors.Is(err, types.ErrEmailExists) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "accountctl: account create failed").
			WithCode(goerrors.CodeBadRequest).
			WithTextCode(textCodeEmailExists).
			WithMetadata(metadata)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "accountctl: account create failed").
		WithCode(goerrors.CodeInternal).
		WithTextCode(textCodeAccountCreateFailed).
		WithMetadata(metadata)
}

func profileCreateError(err error, metadata map[string]any) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "accountctl: profile document create failed").
		WithCode(goerrors.CodeInternal).
		WithTextCode(textCodeProfileCreateFailed).
		WithMetadata(metadata)
}

func lookupError(err error, metadata map[string]any) error {
	if errors.Is(err, types.ErrAccountNotFound) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "accountctl: account lookup failed").
			WithCode(goerrors.CodeNotFound).
			WithTextCode(textCodeAccountNotFound).
			WithMetadata(metadata)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "accountctl: account lookup failed").
		WithCode(goerrors.CodeInternal).
		WithTextCode(textCodeAccountLookupFailed).
		WithMetadata(metadata)
}

func deleteError(err error, metadata map[string]any) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "accountctl: account delete failed").
		WithCode(goerrors.CodeInternal).
		WithTextCode(textCodeAccountDeleteFailed).
		WithMetadata(metadata)
}
