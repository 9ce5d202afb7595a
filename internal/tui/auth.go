package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/go-playground/validator/v10"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/route"
	"github.com/skillsphere/skillsphere/internal/session"
)

var validate = validator.New()

const (
	authModeLogin  = "login"
	authModeSignup = "signup"
)

// authScreen drives the login/signup forms. A successful mutation
// replaces the global session wholesale; the guard then routes the
// visitor onward (dashboard, or onboarding for a brand-new account).
type authScreen struct {
	styles  Styles
	backend *api.Client

	form      *huh.Form
	collected bool

	mode      string
	email     string
	password  string
	firstName string
	lastName  string

	busy   bool
	errMsg string
}

func newAuthScreen(backend *api.Client, styles Styles) *authScreen {
	s := &authScreen{
		styles:  styles,
		backend: backend,
		mode:    authModeLogin,
	}
	s.form = s.buildForm()
	return s
}

func (s *authScreen) Path() route.Path { return route.PathAuth }

func (s *authScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *authScreen) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewSelect[string]().
			Key("mode").
			Title("Welcome to Skillsphere").
			Options(
				huh.NewOption("Sign in", authModeLogin),
				huh.NewOption("Create an account", authModeSignup),
			).
			Value(&s.mode),
		huh.NewInput().
			Key("email").
			Title("Email").
			Value(&s.email),
		huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&s.password),
		huh.NewInput().
			Key("firstname").
			Title("First name (signup only)").
			Value(&s.firstName),
		huh.NewInput().
			Key("lastname").
			Title("Last name (signup only)").
			Value(&s.lastName),
	}

	return huh.NewForm(huh.NewGroup(fields...))
}

func (s *authScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if s.busy {
		// One outstanding mutation at a time; results come back as
		// authResultMsg handled by the app model.
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted && !s.collected {
		s.collected = true
		if err := s.validateInput(); err != nil {
			s.errMsg = err.Error()
			s.resetForm()
			return s, s.form.Init()
		}

		s.busy = true
		s.errMsg = ""
		return s, s.submit()
	}

	return s, cmd
}

func (s *authScreen) validateInput() error {
	if s.mode == authModeSignup {
		return validate.Struct(api.SignupRequest{
			Email:     s.email,
			Password:  s.password,
			Firstname: s.firstName,
			Lastname:  s.lastName,
		})
	}
	return validate.Struct(api.Credentials{
		Email:    s.email,
		Password: s.password,
	})
}

// submit performs the auth mutation off the update loop
func (s *authScreen) submit() tea.Cmd {
	mode, email, password := s.mode, s.email, s.password
	firstName, lastName := s.firstName, s.lastName
	backend := s.backend

	return func() tea.Msg {
		ctx := context.Background()

		var payload api.SessionPayload
		var err error
		if mode == authModeSignup {
			payload, err = backend.Signup(ctx, api.SignupRequest{
				Email:     email,
				Password:  password,
				Firstname: firstName,
				Lastname:  lastName,
			})
		} else {
			payload, err = backend.Login(ctx, api.Credentials{
				Email:    email,
				Password: password,
			})
		}
		if err != nil {
			return authResultMsg{err: err}
		}

		sess, err := session.FromPayload(payload)
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{session: sess}
	}
}

// fail records a mutation failure inline and re-arms the form
func (s *authScreen) fail(err error) tea.Cmd {
	s.busy = false
	s.errMsg = err.Error()
	s.resetForm()
	return s.form.Init()
}

func (s *authScreen) resetForm() {
	s.collected = false
	s.form = s.buildForm()
}

func (s *authScreen) View(width int) string {
	out := ""
	if s.errMsg != "" {
		out += s.styles.Error.Render(s.errMsg) + "\n\n"
	}
	if s.busy {
		return out + s.styles.Muted.Render("Signing you in…")
	}
	return out + s.form.View()
}
