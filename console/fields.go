package console

import (
	"fmt"
	"strings"
)

// Field keys used by the default workflows.
const (
	KeyEmail          = "email"
	KeyPassword       = "password"
	KeyDisplayName    = "displayName"
	KeyEducationLevel = "educationLevel"
	KeyIndustrialArea = "industrialArea"
	KeyConfirm        = "confirm"
)

// Field describes one prompt of a workflow. Blank answers take Default. When
// Validate rejects an answer the prompt is repeated.
type Field struct {
	Key      string
	Prompt   string
	Default  string
	Secret   bool
	Validate func(string) error
}

// CreateAccountFields lists the create workflow prompts in order. No field is
// validated here; the Identity Service owns format rules.
func CreateAccountFields() []Field {
	return []Field{
		{Key: KeyEmail, Prompt: "Email"},
		{Key: KeyPassword, Prompt: "Password", Secret: true},
		{Key: KeyDisplayName, Prompt: "Display name (optional)"},
		{Key: KeyEducationLevel, Prompt: "Education level (e.g., Undergraduate)"},
		{Key: KeyIndustrialArea, Prompt: "Industrial area (optional)"},
	}
}

// DeleteLookupFields lists the prompts that locate the account to delete.
func DeleteLookupFields() []Field {
	return []Field{
		{Key: KeyEmail, Prompt: "Enter user email to delete"},
	}
}

// ConfirmDeleteField asks the operator to confirm deleting email.
func ConfirmDeleteField(email string) Field {
	return Field{
		Key:     KeyConfirm,
		Prompt:  fmt.Sprintf("Are you sure you want to delete user %s? (yes/no)", email),
		Default: "no",
	}
}

// Confirmed reports whether answer is a case-insensitive "yes".
func Confirmed(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
