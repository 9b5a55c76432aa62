package console

import (
	"github.com/goliatone/go-accountctl/command"
	"github.com/goliatone/go-accountctl/pkg/types"
	"github.com/goliatone/go-accountctl/query"
	"github.com/goliatone/go-accountctl/service"
	gocommand "github.com/goliatone/go-command"
)

// Workflows groups the handlers a session drives. Activity is optional.
type Workflows struct {
	Create   gocommand.Commander[command.AccountCreateInput]
	Delete   gocommand.Commander[command.AccountDeleteInput]
	List     gocommand.Querier[query.AccountListFilter, []types.Account]
	Lookup   gocommand.Querier[query.AccountLookupInput, *types.Account]
	Activity gocommand.Commander[command.ActivityLogInput]
}

// WorkflowsFromService adapts the service facades.
func WorkflowsFromService(svc *service.Service) Workflows {
	if svc == nil {
		return Workflows{}
	}
	commands := svc.Commands()
	queries := svc.Queries()
	flows := Workflows{
		Create: commands.AccountCreate,
		Delete: commands.AccountDelete,
		List:   queries.AccountList,
		Lookup: queries.AccountLookup,
	}
	if svc.ActivitySink() != nil {
		flows.Activity = commands.LogActivity
	}
	return flows
}

func (w Workflows) ready() error {
	if w.Create == nil || w.Delete == nil || w.List == nil || w.Lookup == nil {
		return types.ErrServiceNotReady
	}
	return nil
}
