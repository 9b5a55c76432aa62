package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the user_profiles row.
type Record struct {
	bun.BaseModel `bun:"table:user_profiles"`

	ID             uuid.UUID        `bun:",pk,type:uuid"`
	AccountID      string           `bun:"account_id"`
	Name           string           `bun:"name"`
	Email          string           `bun:"email"`
	EducationLevel string           `bun:"education_level"`
	IndustrialArea string           `bun:"industrial_area"`
	Results        []map[string]any `bun:"results,type:jsonb"`
	Images         []string         `bun:"images,type:jsonb"`
	CreatedAt      time.Time        `bun:"created_at"`
}
