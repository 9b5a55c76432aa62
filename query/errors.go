package query

import (
	"errors"

	"github.com/goliatone/go-accountctl/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

// ErrAccountEmailRequired indicates a lookup omitted the email address.
var ErrAccountEmailRequired = errors.New("accountctl: account email required")

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func listError(err error, limit int) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "accountctl: account list failed").
		WithCode(goerrors.CodeInternal).
		WithTextCode("ACCOUNT_LIST_FAILED").
		WithMetadata(map[string]any{"limit": limit})
}

func lookupError(err error, email string) error {
	metadata := map[string]any{"email": email}
	if errors.Is(err, types.ErrAccountNotFound) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "accountctl: account lookup failed").
			WithCode(goerrors.CodeNotFound).
			WithTextCode("ACCOUNT_NOT_FOUND").
			WithMetadata(metadata)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "accountctl: account lookup failed").
		WithCode(goerrors.CodeInternal).
		WithTextCode("ACCOUNT_LOOKUP_FAILED").
		WithMetadata(metadata)
}
