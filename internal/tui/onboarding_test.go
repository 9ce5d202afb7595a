package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/onboarding"
	"github.com/skillsphere/skillsphere/internal/session"
)

type fakeWizardBackend struct {
	payload    api.SessionPayload
	sessionErr error
	questions  []api.Question

	createErr   error
	joinErr     error
	responseErr error
	completeErr error
}

func (f *fakeWizardBackend) CurrentSession(ctx context.Context) (api.SessionPayload, error) {
	return f.payload, f.sessionErr
}

func (f *fakeWizardBackend) CreateOrganisation(ctx context.Context, name string) error {
	return f.createErr
}

func (f *fakeWizardBackend) JoinByInvite(ctx context.Context, code string) error {
	return f.joinErr
}

func (f *fakeWizardBackend) OnboardingQuestions(ctx context.Context) ([]api.Question, error) {
	return f.questions, nil
}

func (f *fakeWizardBackend) SubmitOnboardingResponses(ctx context.Context, optionIDs []int) error {
	return f.responseErr
}

func (f *fakeWizardBackend) CompleteOnboarding(ctx context.Context) error {
	return f.completeErr
}

// runCmds executes a command tree and returns the produced messages,
// flattening batches and dropping nils.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmds(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds every non-spinner message back into the screen, following
// command chains until the screen goes quiet.
func pump(t *testing.T, s Screen, cmd tea.Cmd) Screen {
	t.Helper()
	queue := runCmds(cmd)
	for i := 0; i < 20 && len(queue) > 0; i++ {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case wizardStepMsg, wizardDoneMsg:
			next, cmd := s.Update(msg)
			s = next
			queue = append(queue, runCmds(cmd)...)
		}
	}
	return s
}

func newWizardScreen(backend onboarding.Backend) *onboardingScreen {
	wizard := onboarding.NewWizard(backend, nil)
	return newOnboardingScreen(wizard, DefaultStyles())
}

func TestOnboardingScreenShowsOrganizationChoice(t *testing.T) {
	backend := &fakeWizardBackend{payload: api.SessionPayload{IsLoggedIn: true}}
	s := newWizardScreen(backend)

	screen := pump(t, s, s.Init())
	s = screen.(*onboardingScreen)

	assert.Equal(t, onboarding.StepOrganization, s.wizard.State().Step)
	require.NotNil(t, s.form)
	assert.Contains(t, s.View(80), "How are you joining?")
}

func TestOnboardingScreenAdminBranchSkipsQuestionnaire(t *testing.T) {
	backend := &fakeWizardBackend{payload: api.SessionPayload{IsLoggedIn: true}}
	s := newWizardScreen(backend)

	screen := pump(t, s, s.Init())
	s = screen.(*onboardingScreen)

	assert.Equal(t, onboarding.StepOrganization, s.wizard.State().Step)

	// Resolve the form the way a completed submission would.
	s.formStep = onboarding.StepOrganization
	s.roleChoice = string(session.RoleAdmin)
	s.orgName = "Acme"

	screen = pump(t, s, s.submitForm())
	s = screen.(*onboardingScreen)

	// Create succeeded straight into complete, then finish produced
	// the fresh session; the questionnaire was never visited.
	assert.Equal(t, onboarding.StepComplete, s.wizard.State().Step)
	assert.False(t, s.questionsLoaded)
}

func TestOnboardingScreenAdminBranchProducesOrganizationArrival(t *testing.T) {
	backend := &fakeWizardBackend{payload: api.SessionPayload{IsLoggedIn: true}}
	s := newWizardScreen(backend)
	screen := pump(t, s, s.Init())
	s = screen.(*onboardingScreen)

	s.formStep = onboarding.StepOrganization
	s.roleChoice = string(session.RoleAdmin)
	s.orgName = "x" // too short, rejected before the backend

	msgs := runCmds(s.submitForm())
	require.Len(t, msgs, 1)
	step, ok := msgs[0].(wizardStepMsg)
	require.True(t, ok)
	assert.Error(t, step.err)

	next, _ := s.Update(step)
	s = next.(*onboardingScreen)
	assert.Equal(t, onboarding.StepOrganization, s.wizard.State().Step)
	assert.Contains(t, s.View(80), "at least 2 characters")
}

func TestOnboardingScreenEmployeePathThroughQuestionnaire(t *testing.T) {
	backend := &fakeWizardBackend{
		payload: api.SessionPayload{IsLoggedIn: true},
		questions: []api.Question{{
			ID:           1,
			QuestionText: "Which tools do you use?",
			Options:      []api.QuestionOption{{ID: 10, OptionText: "Spreadsheets"}},
		}},
	}
	s := newWizardScreen(backend)
	screen := pump(t, s, s.Init())
	s = screen.(*onboardingScreen)

	s.formStep = onboarding.StepOrganization
	s.roleChoice = string(session.RoleEmployee)
	s.inviteCode = "TEAM-123"

	screen = pump(t, s, s.submitForm())
	s = screen.(*onboardingScreen)

	assert.Equal(t, onboarding.StepQuestionnaire, s.wizard.State().Step)
	assert.True(t, s.questionsLoaded)
	require.NotNil(t, s.form)
	assert.Contains(t, s.View(80), "Which tools do you use?")
}

func TestOnboardingScreenEmptyQuestionnaireAutoCompletes(t *testing.T) {
	backend := &fakeWizardBackend{
		payload: api.SessionPayload{
			IsLoggedIn:             true,
			Email:                  "ada@example.com",
			HasCompletedOnboarding: true,
			Organisation:           &api.Organisation{ID: 1, Name: "Acme", Role: api.RoleEmployee},
		},
	}
	s := newWizardScreen(backend)

	// Begin resolves to questionnaire (employee with organisation);
	// zero questions then complete without ever showing a form.
	screen := pump(t, s, s.Init())
	s = screen.(*onboardingScreen)

	assert.Equal(t, onboarding.StepComplete, s.wizard.State().Step)
	assert.Nil(t, s.form)
}

func TestOnboardingScreenBeginFailureRetriesOnEnter(t *testing.T) {
	backend := &fakeWizardBackend{sessionErr: assert.AnError}
	s := newWizardScreen(backend)

	screen := pump(t, s, s.Init())
	s = screen.(*onboardingScreen)

	assert.Equal(t, onboarding.StepInitializing, s.wizard.State().Step)
	assert.Contains(t, s.View(80), "press enter to try again")

	backend.sessionErr = nil
	backend.payload = api.SessionPayload{IsLoggedIn: true}

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	screen = pump(t, next, cmd)
	s = screen.(*onboardingScreen)

	assert.Equal(t, onboarding.StepOrganization, s.wizard.State().Step)
}

func TestOnboardingScreenIgnoresForeignWizardResults(t *testing.T) {
	backend := &fakeWizardBackend{payload: api.SessionPayload{IsLoggedIn: true}}
	s := newWizardScreen(backend)

	next, _ := s.Update(wizardStepMsg{wizardID: uuid.New()})
	s = next.(*onboardingScreen)

	assert.Equal(t, onboarding.StepInitializing, s.wizard.State().Step)
	assert.Nil(t, s.form)
}
