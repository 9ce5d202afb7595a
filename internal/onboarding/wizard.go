package onboarding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/errors"
	"github.com/skillsphere/skillsphere/internal/log"
	"github.com/skillsphere/skillsphere/internal/session"
)

// Backend is the slice of the API client the wizard needs
type Backend interface {
	CurrentSession(ctx context.Context) (api.SessionPayload, error)
	CreateOrganisation(ctx context.Context, name string) error
	JoinByInvite(ctx context.Context, code string) error
	OnboardingQuestions(ctx context.Context) ([]api.Question, error)
	SubmitOnboardingResponses(ctx context.Context, optionIDs []int) error
	CompleteOnboarding(ctx context.Context) error
}

// Wizard drives a new account from "no organisation" to "active
// member". It is a bounded state machine: every submission is
// validated against the current step, and a failed mutation leaves the
// machine exactly where it was with the error captured for inline
// display. Nothing advances silently and nothing retries on its own.
type Wizard struct {
	// ID tags this wizard instance. The hosting screen stamps it on
	// every asynchronous result so answers arriving after the screen
	// was torn down are discarded instead of applied to a machine that
	// no longer exists.
	ID uuid.UUID

	mu        sync.Mutex
	state     State
	questions []api.Question

	backend Backend
	logger  *log.Logger
}

// NewWizard creates a wizard in the initializing state with the
// employee role preselected
func NewWizard(backend Backend, logger *log.Logger) *Wizard {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Wizard{
		ID: uuid.New(),
		state: State{
			Step:       StepInitializing,
			RoleChoice: session.RoleEmployee,
		},
		backend: backend,
		logger:  logger,
	}
}

// State returns a copy of the wizard's observable state
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Questions returns the loaded questionnaire, which may be empty
func (w *Wizard) Questions() []api.Question {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.questions
}

// SetRoleChoice records the admin/employee choice on the organization step
func (w *Wizard) SetRoleChoice(role session.Role) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.RoleChoice = role
}

// beginMutation marks the wizard busy for one mutation on the expected
// step. It fails without side effects when the step doesn't match or a
// mutation is already outstanding.
func (w *Wizard) beginMutation(expected Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Step != expected {
		return errors.NewOnboardWrongStepError(w.state.Step.String(), expected.String())
	}
	if w.state.Busy {
		return errors.New(errors.ErrCodeOnboardWrongStep, "a submission is already in progress")
	}
	w.state.Busy = true
	w.state.Err = nil
	return nil
}

// endMutation clears busy and either advances to next or records err,
// leaving the step unchanged.
func (w *Wizard) endMutation(next Step, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state.Busy = false
	if err != nil {
		w.state.Err = err
		return
	}
	w.state.Err = nil
	w.state.Step = next
}

// Begin resolves the initializing step. The backend is asked whether
// the account already has an organisation:
//
//   - admin with an organisation: nothing left to do, go to complete
//   - employee with an organisation: only the assessment remains, go
//     to questionnaire
//   - no organisation: go to organization
func (w *Wizard) Begin(ctx context.Context) error {
	if err := w.beginMutation(StepInitializing); err != nil {
		return err
	}

	payload, err := w.backend.CurrentSession(ctx)
	if err != nil {
		w.endMutation(StepInitializing, err)
		return err
	}

	next := StepOrganization
	if payload.Organisation != nil {
		if payload.Organisation.Role == api.RoleAdmin {
			next = StepComplete
		} else {
			next = StepQuestionnaire
		}
		w.mu.Lock()
		w.state.RoleChoice = session.Role(payload.Organisation.Role)
		w.mu.Unlock()
	}

	w.endMutation(next, nil)
	return nil
}

// SubmitOrganization resolves the organization step for the admin
// branch: it creates the organisation and, on success, advances
// straight to complete without visiting the questionnaire.
func (w *Wizard) SubmitOrganization(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return errors.New(errors.ErrCodeOnboardInvalidInput, "organisation name must be at least 2 characters")
	}

	if err := w.beginMutation(StepOrganization); err != nil {
		return err
	}

	w.mu.Lock()
	w.state.RoleChoice = session.RoleAdmin
	w.state.OrganizationName = name
	w.mu.Unlock()

	if err := w.backend.CreateOrganisation(ctx, name); err != nil {
		w.endMutation(StepOrganization, err)
		return errors.Wrap(errors.ErrCodeOnboardCreateOrg, "create organisation", err)
	}

	w.endMutation(StepComplete, nil)
	return nil
}

// SubmitInvite resolves the organization step for the employee branch:
// it joins by invite code and, on success, advances to the
// questionnaire.
func (w *Wizard) SubmitInvite(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New(errors.ErrCodeOnboardInvalidInput, "invite code is required")
	}

	if err := w.beginMutation(StepOrganization); err != nil {
		return err
	}

	w.mu.Lock()
	w.state.RoleChoice = session.RoleEmployee
	w.state.InviteCode = code
	w.mu.Unlock()

	if err := w.backend.JoinByInvite(ctx, code); err != nil {
		w.endMutation(StepOrganization, err)
		return errors.Wrap(errors.ErrCodeOnboardJoinOrg, "join organisation", err)
	}

	w.endMutation(StepQuestionnaire, nil)
	return nil
}

// LoadQuestions fetches the questionnaire for the questionnaire step.
// A failure is captured for inline display and may be retried; an
// empty questionnaire is valid.
func (w *Wizard) LoadQuestions(ctx context.Context) error {
	w.mu.Lock()
	if w.state.Step != StepQuestionnaire {
		step := w.state.Step
		w.mu.Unlock()
		return errors.NewOnboardWrongStepError(step.String(), StepQuestionnaire.String())
	}
	w.mu.Unlock()

	questions, err := w.backend.OnboardingQuestions(ctx)
	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state.Err = err
		return err
	}
	w.questions = questions
	w.state.Err = nil
	return nil
}

// SubmitQuestionnaire resolves the questionnaire step. The selection
// may be empty: an organisation with no questions still completes.
func (w *Wizard) SubmitQuestionnaire(ctx context.Context, optionIDs []int) error {
	if err := w.beginMutation(StepQuestionnaire); err != nil {
		return err
	}

	if err := w.backend.SubmitOnboardingResponses(ctx, optionIDs); err != nil {
		w.endMutation(StepQuestionnaire, err)
		return errors.Wrap(errors.ErrCodeOnboardResponses, "submit questionnaire responses", err)
	}

	w.endMutation(StepComplete, nil)
	return nil
}

// Finish runs the completion mutation and re-fetches the session. The
// returned session carries the fresh organisation and onboarding
// state; the caller replaces the global session with it and navigates
// to the dashboard. On failure the wizard stays on complete so the
// user can retry.
func (w *Wizard) Finish(ctx context.Context) (session.Session, error) {
	if err := w.beginMutation(StepComplete); err != nil {
		return session.Session{}, err
	}

	if err := w.backend.CompleteOnboarding(ctx); err != nil {
		w.endMutation(StepComplete, err)
		return session.Session{}, errors.Wrap(errors.ErrCodeOnboardCompleteFailed, "complete onboarding", err)
	}

	payload, err := w.backend.CurrentSession(ctx)
	if err != nil {
		w.endMutation(StepComplete, err)
		return session.Session{}, errors.Wrap(errors.ErrCodeOnboardCompleteFailed, "refresh session after onboarding", err)
	}

	fresh, err := session.FromPayload(payload)
	if err != nil {
		err = fmt.Errorf("refreshed session rejected: %w", err)
		w.endMutation(StepComplete, err)
		return session.Session{}, err
	}

	w.endMutation(StepComplete, nil)
	w.logger.Info("onboarding complete", "role", string(w.State().RoleChoice))
	return fresh, nil
}
