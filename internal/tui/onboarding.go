package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/skillsphere/skillsphere/internal/onboarding"
	"github.com/skillsphere/skillsphere/internal/route"
	"github.com/skillsphere/skillsphere/internal/session"
)

// onboardingScreen hosts the wizard while the visitor is resident on
// /onboarding. All wizard state is scoped to this screen; navigating
// away discards it, and any still-outstanding mutation result is
// dropped by the wizard-ID check rather than applied to a machine that
// no longer exists.
type onboardingScreen struct {
	styles Styles
	wizard *onboarding.Wizard

	spinner spinner.Model

	form      *huh.Form
	collected bool
	formStep  onboarding.Step

	roleChoice string
	orgName    string
	inviteCode string

	loadingQuestions bool
	questionsLoaded  bool
	answers          [][]int

	// inlineErr holds validation rejections that never reached the
	// backend and so were never captured in wizard state
	inlineErr error
}

func newOnboardingScreen(wizard *onboarding.Wizard, styles Styles) *onboardingScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &onboardingScreen{
		styles:     styles,
		wizard:     wizard,
		spinner:    sp,
		roleChoice: string(session.RoleEmployee),
	}
}

func (s *onboardingScreen) Path() route.Path { return route.PathOnboarding }

func (s *onboardingScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.begin())
}

func (s *onboardingScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wizardStepMsg:
		if msg.wizardID != s.wizard.ID {
			// Stale result from a torn-down wizard instance.
			return s, nil
		}
		if s.loadingQuestions {
			s.loadingQuestions = false
			s.questionsLoaded = msg.err == nil
		}
		s.inlineErr = msg.err
		return s, s.advance()

	case wizardDoneMsg:
		// A successful finish is handled by the app model; only the
		// failure lands back here, rendered inline with enter to retry.
		if msg.wizardID != s.wizard.ID {
			return s, nil
		}
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	if s.wizard.State().Busy || s.loadingQuestions {
		return s, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && s.form == nil {
		if cmd := s.retry(); cmd != nil {
			return s, cmd
		}
	}

	if s.form != nil {
		form, cmd := s.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			s.form = f
		}
		if s.form.State == huh.StateCompleted && !s.collected {
			s.collected = true
			return s, s.submitForm()
		}
		return s, cmd
	}

	return s, nil
}

// advance mounts the form or follow-up mutation the wizard's current
// step calls for after a transition resolved.
func (s *onboardingScreen) advance() tea.Cmd {
	st := s.wizard.State()

	if st.Err != nil || s.inlineErr != nil {
		// Failed transitions stay on their step; the error renders
		// inline and a form step keeps its form armed for another try.
		if s.form != nil {
			s.collected = false
			s.form.State = huh.StateNormal
		}
		return nil
	}

	switch st.Step {
	case onboarding.StepOrganization:
		s.buildOrganizationForm()
		return s.form.Init()

	case onboarding.StepQuestionnaire:
		if !s.questionsLoaded {
			return s.loadQuestions()
		}
		if len(s.wizard.Questions()) == 0 {
			// Zero-question questionnaire: complete with an empty
			// selection, no form to show.
			s.form = nil
			return s.submitAnswers(nil)
		}
		s.buildQuestionnaireForm()
		return s.form.Init()

	case onboarding.StepComplete:
		s.form = nil
		return s.finish()
	}

	return nil
}

// retry re-runs the step's pending work after a failure, on the steps
// that have no form of their own
func (s *onboardingScreen) retry() tea.Cmd {
	st := s.wizard.State()
	if st.Err == nil {
		return nil
	}
	switch st.Step {
	case onboarding.StepInitializing:
		return s.begin()
	case onboarding.StepQuestionnaire:
		if !s.questionsLoaded {
			return s.loadQuestions()
		}
	case onboarding.StepComplete:
		return s.finish()
	}
	return nil
}

func (s *onboardingScreen) begin() tea.Cmd {
	wizard := s.wizard
	return func() tea.Msg {
		err := wizard.Begin(context.Background())
		return wizardStepMsg{wizardID: wizard.ID, err: err}
	}
}

func (s *onboardingScreen) loadQuestions() tea.Cmd {
	wizard := s.wizard
	s.loadingQuestions = true
	return func() tea.Msg {
		err := wizard.LoadQuestions(context.Background())
		return wizardStepMsg{wizardID: wizard.ID, err: err}
	}
}

func (s *onboardingScreen) submitAnswers(optionIDs []int) tea.Cmd {
	wizard := s.wizard
	return func() tea.Msg {
		err := wizard.SubmitQuestionnaire(context.Background(), optionIDs)
		return wizardStepMsg{wizardID: wizard.ID, err: err}
	}
}

func (s *onboardingScreen) finish() tea.Cmd {
	wizard := s.wizard
	return func() tea.Msg {
		fresh, err := wizard.Finish(context.Background())
		return wizardDoneMsg{wizardID: wizard.ID, session: fresh, err: err}
	}
}

func (s *onboardingScreen) buildOrganizationForm() {
	s.collected = false
	s.formStep = onboarding.StepOrganization
	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Key("role").
			Title("How are you joining?").
			Options(
				huh.NewOption("Join my team with an invite code", string(session.RoleEmployee)),
				huh.NewOption("Create a new organisation", string(session.RoleAdmin)),
			).
			Value(&s.roleChoice),
		huh.NewInput().
			Key("orgname").
			Title("Organisation name (when creating)").
			Value(&s.orgName),
		huh.NewInput().
			Key("invite").
			Title("Invite code (when joining)").
			Value(&s.inviteCode),
	))
}

func (s *onboardingScreen) buildQuestionnaireForm() {
	s.collected = false
	s.formStep = onboarding.StepQuestionnaire

	questions := s.wizard.Questions()
	s.answers = make([][]int, len(questions))

	fields := make([]huh.Field, 0, len(questions))
	for i, q := range questions {
		options := make([]huh.Option[int], 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, huh.NewOption(opt.OptionText, opt.ID))
		}
		fields = append(fields, huh.NewMultiSelect[int]().
			Title(q.QuestionText).
			Options(options...).
			Value(&s.answers[i]))
	}

	s.form = huh.NewForm(huh.NewGroup(fields...).
		Title("Skills questionnaire").
		Description("Pick whatever applies — this seeds your learning roadmap."))
}

func (s *onboardingScreen) submitForm() tea.Cmd {
	wizard := s.wizard

	switch s.formStep {
	case onboarding.StepOrganization:
		if s.roleChoice == string(session.RoleAdmin) {
			name := s.orgName
			return func() tea.Msg {
				err := wizard.SubmitOrganization(context.Background(), name)
				return wizardStepMsg{wizardID: wizard.ID, err: err}
			}
		}
		code := s.inviteCode
		return func() tea.Msg {
			err := wizard.SubmitInvite(context.Background(), code)
			return wizardStepMsg{wizardID: wizard.ID, err: err}
		}

	case onboarding.StepQuestionnaire:
		var optionIDs []int
		for _, selection := range s.answers {
			optionIDs = append(optionIDs, selection...)
		}
		return s.submitAnswers(optionIDs)
	}

	return nil
}

func (s *onboardingScreen) View(width int) string {
	st := s.wizard.State()

	out := s.styles.Title.Render("Set up your account") + "\n"

	if err := st.Err; err != nil || s.inlineErr != nil {
		if err == nil {
			err = s.inlineErr
		}
		out += s.styles.Error.Render(err.Error()) + "\n" +
			s.styles.Muted.Render("press enter to try again") + "\n\n"
	}

	switch {
	case st.Busy || s.loadingQuestions:
		out += s.styles.Muted.Render(s.spinner.View() + " Working…")
	case st.Step == onboarding.StepInitializing:
		out += s.styles.Muted.Render(s.spinner.View() + " Checking your organisation…")
	case st.Step == onboarding.StepComplete:
		out += s.styles.Success.Render("All set — wrapping up.")
	case s.form != nil:
		out += s.form.View()
	default:
		out += s.styles.Muted.Render(s.spinner.View() + " Loading…")
	}

	return out
}
