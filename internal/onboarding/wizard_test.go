package onboarding

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/session"
)

type fakeBackend struct {
	sessionPayload api.SessionPayload
	sessionErr     error

	createErr    error
	joinErr      error
	questions    []api.Question
	questionsErr error
	responsesErr error
	completeErr  error

	created   []string
	joined    []string
	responses [][]int
	completed int
	refetches int
	afterDone func()
}

func (f *fakeBackend) CurrentSession(ctx context.Context) (api.SessionPayload, error) {
	f.refetches++
	return f.sessionPayload, f.sessionErr
}

func (f *fakeBackend) CreateOrganisation(ctx context.Context, name string) error {
	f.created = append(f.created, name)
	return f.createErr
}

func (f *fakeBackend) JoinByInvite(ctx context.Context, code string) error {
	f.joined = append(f.joined, code)
	return f.joinErr
}

func (f *fakeBackend) OnboardingQuestions(ctx context.Context) ([]api.Question, error) {
	return f.questions, f.questionsErr
}

func (f *fakeBackend) SubmitOnboardingResponses(ctx context.Context, optionIDs []int) error {
	f.responses = append(f.responses, optionIDs)
	return f.responsesErr
}

func (f *fakeBackend) CompleteOnboarding(ctx context.Context) error {
	f.completed++
	if f.afterDone != nil {
		f.afterDone()
	}
	return f.completeErr
}

func freshAccountPayload() api.SessionPayload {
	return api.SessionPayload{IsLoggedIn: true, Email: "new@example.com"}
}

func TestNewWizardDefaults(t *testing.T) {
	w := NewWizard(&fakeBackend{}, nil)

	st := w.State()
	assert.Equal(t, StepInitializing, st.Step)
	assert.Equal(t, session.RoleEmployee, st.RoleChoice)
	assert.False(t, st.Busy)
	assert.NoError(t, st.Err)
	assert.NotEqual(t, w.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestBeginNoOrganisation(t *testing.T) {
	backend := &fakeBackend{sessionPayload: freshAccountPayload()}
	w := NewWizard(backend, nil)

	require.NoError(t, w.Begin(context.Background()))
	assert.Equal(t, StepOrganization, w.State().Step)
}

func TestBeginAdminWithOrganisationSkipsToComplete(t *testing.T) {
	backend := &fakeBackend{sessionPayload: api.SessionPayload{
		IsLoggedIn:   true,
		Organisation: &api.Organisation{ID: 1, Role: api.RoleAdmin},
	}}
	w := NewWizard(backend, nil)

	require.NoError(t, w.Begin(context.Background()))

	st := w.State()
	assert.Equal(t, StepComplete, st.Step)
	assert.Equal(t, session.RoleAdmin, st.RoleChoice)
}

func TestBeginEmployeeWithOrganisationGoesToQuestionnaire(t *testing.T) {
	backend := &fakeBackend{sessionPayload: api.SessionPayload{
		IsLoggedIn:   true,
		Organisation: &api.Organisation{ID: 1, Role: api.RoleEmployee},
	}}
	w := NewWizard(backend, nil)

	require.NoError(t, w.Begin(context.Background()))
	assert.Equal(t, StepQuestionnaire, w.State().Step)
}

func TestBeginFailureStaysInitializing(t *testing.T) {
	backend := &fakeBackend{sessionErr: fmt.Errorf("backend down")}
	w := NewWizard(backend, nil)

	require.Error(t, w.Begin(context.Background()))

	st := w.State()
	assert.Equal(t, StepInitializing, st.Step)
	assert.Error(t, st.Err)
	assert.False(t, st.Busy)
}

func TestAdminBranchOrganizationToComplete(t *testing.T) {
	backend := &fakeBackend{sessionPayload: freshAccountPayload()}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))

	require.NoError(t, w.SubmitOrganization(context.Background(), "Acme Learning"))

	st := w.State()
	assert.Equal(t, StepComplete, st.Step, "admin branch must not visit the questionnaire")
	assert.Equal(t, session.RoleAdmin, st.RoleChoice)
	assert.Equal(t, []string{"Acme Learning"}, backend.created)
}

func TestEmployeeBranchOrganizationToQuestionnaire(t *testing.T) {
	backend := &fakeBackend{sessionPayload: freshAccountPayload()}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))

	require.NoError(t, w.SubmitInvite(context.Background(), "INV-42"))

	assert.Equal(t, StepQuestionnaire, w.State().Step)
	assert.Equal(t, []string{"INV-42"}, backend.joined)
}

func TestFailedCreateStaysOnOrganizationWithError(t *testing.T) {
	backend := &fakeBackend{
		sessionPayload: freshAccountPayload(),
		createErr:      fmt.Errorf("name already taken"),
	}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))

	err := w.SubmitOrganization(context.Background(), "Acme")
	require.Error(t, err)

	st := w.State()
	assert.Equal(t, StepOrganization, st.Step)
	assert.Error(t, st.Err)
	assert.False(t, st.Busy)
}

func TestFailedJoinStaysOnOrganization(t *testing.T) {
	backend := &fakeBackend{
		sessionPayload: freshAccountPayload(),
		joinErr:        fmt.Errorf("invite code not recognised"),
	}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))

	require.Error(t, w.SubmitInvite(context.Background(), "BAD"))
	assert.Equal(t, StepOrganization, w.State().Step)
}

func TestEmptyQuestionnaireStillCompletes(t *testing.T) {
	backend := &fakeBackend{sessionPayload: freshAccountPayload()}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))
	require.NoError(t, w.SubmitInvite(context.Background(), "INV-42"))

	require.NoError(t, w.LoadQuestions(context.Background()))
	assert.Empty(t, w.Questions())

	require.NoError(t, w.SubmitQuestionnaire(context.Background(), nil))
	assert.Equal(t, StepComplete, w.State().Step)
	require.Len(t, backend.responses, 1)
}

func TestQuestionnaireSubmissionRejectedOnWrongStep(t *testing.T) {
	backend := &fakeBackend{sessionPayload: freshAccountPayload()}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))

	// Still on organization; a questionnaire submission must be refused
	// without touching the backend.
	err := w.SubmitQuestionnaire(context.Background(), []int{1, 2})
	require.Error(t, err)
	assert.Empty(t, backend.responses)
	assert.Equal(t, StepOrganization, w.State().Step)
}

func TestOrganizationInputValidation(t *testing.T) {
	backend := &fakeBackend{sessionPayload: freshAccountPayload()}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))

	require.Error(t, w.SubmitOrganization(context.Background(), " a "))
	assert.Empty(t, backend.created, "invalid input must not reach the backend")

	require.Error(t, w.SubmitInvite(context.Background(), "   "))
	assert.Empty(t, backend.joined)
}

func TestFinishReplacesSessionWithFreshData(t *testing.T) {
	backend := &fakeBackend{sessionPayload: freshAccountPayload()}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))
	require.NoError(t, w.SubmitOrganization(context.Background(), "Acme Learning"))

	// After the completion mutation the backend reports the onboarded state.
	backend.afterDone = func() {
		backend.sessionPayload = api.SessionPayload{
			IsLoggedIn:             true,
			Email:                  "new@example.com",
			Organisation:           &api.Organisation{ID: 9, Name: "Acme Learning", Role: api.RoleAdmin},
			HasCompletedOnboarding: true,
		}
	}

	fresh, err := w.Finish(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, backend.completed)
	assert.True(t, fresh.HasCompletedOnboarding)
	require.NotNil(t, fresh.Organisation)
	assert.Equal(t, "Acme Learning", fresh.Organisation.Name)
}

func TestFinishFailureStaysOnComplete(t *testing.T) {
	backend := &fakeBackend{
		sessionPayload: freshAccountPayload(),
		completeErr:    fmt.Errorf("backend hiccup"),
	}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))
	require.NoError(t, w.SubmitOrganization(context.Background(), "Acme"))

	_, err := w.Finish(context.Background())
	require.Error(t, err)

	st := w.State()
	assert.Equal(t, StepComplete, st.Step, "failed completion must allow retry")
	assert.Error(t, st.Err)
	assert.False(t, st.Busy)
}

func TestQuestionnaireWithQuestions(t *testing.T) {
	backend := &fakeBackend{
		sessionPayload: freshAccountPayload(),
		questions: []api.Question{
			{ID: 1, QuestionText: "Preferred stack?", Position: 1, Options: []api.QuestionOption{
				{ID: 10, OptionText: "Go"},
			}},
		},
	}
	w := NewWizard(backend, nil)
	require.NoError(t, w.Begin(context.Background()))
	require.NoError(t, w.SubmitInvite(context.Background(), "INV-42"))
	require.NoError(t, w.LoadQuestions(context.Background()))

	require.Len(t, w.Questions(), 1)
	require.NoError(t, w.SubmitQuestionnaire(context.Background(), []int{10}))

	require.Len(t, backend.responses, 1)
	assert.Equal(t, []int{10}, backend.responses[0])
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "initializing", StepInitializing.String())
	assert.Equal(t, "organization", StepOrganization.String())
	assert.Equal(t, "questionnaire", StepQuestionnaire.String())
	assert.Equal(t, "complete", StepComplete.String())
}
