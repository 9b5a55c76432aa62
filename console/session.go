package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-accountctl/activity"
	"github.com/goliatone/go-accountctl/command"
	"github.com/goliatone/go-accountctl/pkg/types"
	"github.com/goliatone/go-accountctl/query"
	goerrors "github.com/goliatone/go-errors"
)

const (
	menuHeader   = "--- Firebase User Management ---"
	selectPrompt = "Select an option (1-4): "
)

// Session is one operator session. It owns its input and output handles.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
	flows  Workflows
	logger types.Logger
	secret SecretReader
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger routes diagnostics to logger. Operator output never goes there.
func WithLogger(logger types.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorOutput sends workflow failure lines to w instead of the main output.
func WithErrorOutput(w io.Writer) Option {
	return func(s *Session) {
		if w != nil {
			s.errOut = w
		}
	}
}

// WithSecretReader reads Secret fields through reader.
func WithSecretReader(reader SecretReader) Option {
	return func(s *Session) {
		s.secret = reader
	}
}

// NewSession binds a session to its handles.
func NewSession(flows Workflows, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		errOut: out,
		flows:  flows,
		logger: types.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run shows the menu until the operator exits, input ends, or ctx is
// cancelled. Workflow failures are reported and never end the session.
func (s *Session) Run(ctx context.Context) error {
	if err := s.flows.ready(); err != nil {
		return err
	}
	s.logSession(ctx, "console.session.started")
	defer s.logSession(context.WithoutCancel(ctx), "console.session.ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.showMenu()
		choice, err := s.readLine("\n" + selectPrompt)
		if err != nil {
			return s.endOfInput(ctx, err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.createAccount(ctx)
		case "2":
			s.listAccounts(ctx)
		case "3":
			err = s.deleteAccount(ctx)
		case "4":
			s.println("Exiting...")
			return nil
		default:
			s.println("Invalid option, please try again")
		}
		if err != nil {
			return s.endOfInput(ctx, err)
		}
	}
}

// Collect asks every field in order and returns the answers keyed by
// Field.Key.
func (s *Session) Collect(fields []Field) (map[string]string, error) {
	answers := make(map[string]string, len(fields))
	for _, field := range fields {
		for {
			answer, err := s.ask(field)
			if err != nil {
				return answers, err
			}
			if answer == "" {
				answer = field.Default
			}
			if field.Validate != nil {
				if verr := field.Validate(answer); verr != nil {
					s.println(fmt.Sprintf("Invalid %s: %v", strings.ToLower(field.Prompt), verr))
					continue
				}
			}
			answers[field.Key] = answer
			break
		}
	}
	return answers, nil
}

func (s *Session) createAccount(ctx context.Context) error {
	answers, err := s.Collect(CreateAccountFields())
	if err != nil {
		return err
	}

	result := &command.AccountCreateResult{}
	err = s.flows.Create.Execute(ctx, command.AccountCreateInput{
		Account: types.AccountInput{
			Email:       answers[KeyEmail],
			Password:    answers[KeyPassword],
			DisplayName: answers[KeyDisplayName],
		},
		Profile: types.ProfileFields{
			EducationLevel: answers[KeyEducationLevel],
			IndustrialArea: answers[KeyIndustrialArea],
		},
		Result: result,
	})
	if result.Account != nil && !result.RolledBack {
		s.println("User created successfully: " + result.Account.ID)
	}
	if err != nil {
		s.reportError("Error creating user", err)
		if result.RolledBack {
			s.println("User " + result.Account.ID + " was rolled back; no account was kept")
		}
		return nil
	}
	s.println("User data added to Firestore")
	return nil
}

func (s *Session) listAccounts(ctx context.Context) {
	accounts, err := s.flows.List.Query(ctx, query.AccountListFilter{Limit: types.MaxAccountListLimit})
	if err != nil {
		s.reportError("Error listing users", err)
		return
	}
	s.println("\n--- User List ---")
	for _, account := range accounts {
		name := account.DisplayName
		if name == "" {
			name = "N/A"
		}
		s.println(fmt.Sprintf("UID: %s, Email: %s, Name: %s", account.ID, account.Email, name))
	}
}

func (s *Session) deleteAccount(ctx context.Context) error {
	answers, err := s.Collect(DeleteLookupFields())
	if err != nil {
		return err
	}
	email := answers[KeyEmail]

	account, err := s.flows.Lookup.Query(ctx, query.AccountLookupInput{Email: email})
	if err != nil {
		s.reportError("Error finding or deleting user", err)
		return nil
	}

	confirm, err := s.Collect([]Field{ConfirmDeleteField(email)})
	if err != nil {
		return err
	}
	if !Confirmed(confirm[KeyConfirm]) {
		s.println("Delete operation cancelled")
		return nil
	}

	result := &command.AccountDeleteResult{}
	err = s.flows.Delete.Execute(ctx, command.AccountDeleteInput{
		AccountID: account.ID,
		Email:     account.Email,
		Confirmed: true,
		Result:    result,
	})
	if err != nil {
		s.reportError("Error finding or deleting user", err)
		return nil
	}
	if result.ProfileDeleted {
		s.println("User data deleted from Firestore")
	} else {
		s.println("Note: No Firestore data found for this user or error deleting it")
	}
	s.println(fmt.Sprintf("User %s deleted successfully", email))
	return nil
}

func (s *Session) showMenu() {
	s.println("\n" + menuHeader)
	s.println("1. Create new user")
	s.println("2. List all users (10 most recent)")
	s.println("3. Delete user")
	s.println("4. Exit")
}

func (s *Session) ask(field Field) (string, error) {
	prompt := field.Prompt + ": "
	if field.Secret && s.secret != nil {
		fmt.Fprint(s.out, prompt)
		answer, err := s.secret()
		fmt.Fprintln(s.out)
		return answer, err
	}
	return s.readLine(prompt)
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

func (s *Session) endOfInput(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, io.EOF) {
		s.logger.Debug("accountctl: console input closed")
		return nil
	}
	return err
}

func (s *Session) reportError(label string, err error) {
	s.logger.Debug("accountctl: "+strings.ToLower(label), "text_code", command.TextCodeOf(err), "err", err.Error())
	fmt.Fprintf(s.errOut, "%s: %v\n", label, causeOf(err))
}

func (s *Session) logSession(ctx context.Context, verb string) {
	if s.flows.Activity == nil {
		return
	}
	record := activity.BuildRecord("", verb, "console", "", nil, activity.WithChannel("console"))
	if err := s.flows.Activity.Execute(ctx, command.ActivityLogInput{Record: record}); err != nil {
		s.logger.Debug("accountctl: session activity not recorded", "verb", verb, "err", err.Error())
	}
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}

// causeOf strips go-errors wrappers so the operator sees the collaborator's
// own message.
func causeOf(err error) error {
	for {
		if _, ok := err.(*goerrors.Error); !ok {
			return err
		}
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
