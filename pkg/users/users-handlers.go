package users

import (
	"errors"
	"net/http"

	"github.com/bwgoh/birding/pkg/auth"
	"github.com/bwgoh/birding/pkg/notes"
	"github.com/bwgoh/birding/pkg/rest"
	"github.com/bwgoh/birding/pkg/views"
)

func RegisterHandlers(engine rest.Engine, ur UserRepository, nr notes.NoteRepository, sessions *auth.Sessions) {
	engine.Get("/signup", getSignup())
	engine.Post("/signup", signup(ur))
	engine.Get("/login", getLogin())
	engine.Post("/login", login(ur, sessions))
	engine.Get("/logout", logout(sessions))
	engine.Get("/profile", profile(nr, sessions))
}

// signupView and loginView share the same payload shape; the forms never greet
// a signed-in user, hence the absent username.
type formData struct {
	Feedback FormFeedback
	Username string
}

func getSignup() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		views.Render(writer, "signup", formData{Feedback: defaultFeedback()})
	}
}

func signup(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var data = SignupData{
			Email:    request.PostFormValue("email"),
			Password: request.PostFormValue("password"),
		}
		if err := data.Validate(); err != nil {
			views.Render(writer, "signup", formData{Feedback: validationFeedback(err)})
			return
		}

		// the pre-check exists for friendly inline feedback; the database's
		// uniqueness constraint remains the authoritative arbiter
		if _, err := ur.FindByEmail(data.Email); err == nil {
			views.Render(writer, "signup", formData{Feedback: emailTakenFeedback()})
			return
		} else if !errors.Is(err, ErrNotFound) {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		if _, err := ur.Register(data.Email, auth.HashSecret(data.Password)); err != nil {
			if errors.Is(err, ErrEmailTaken) {
				views.Render(writer, "signup", formData{Feedback: emailTakenFeedback()})
				return
			}
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		http.Redirect(writer, request, "/login", http.StatusFound)
	}
}

func getLogin() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		views.Render(writer, "login", formData{Feedback: defaultFeedback()})
	}
}

func login(ur UserRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var data = LoginData{
			Email:    request.PostFormValue("email"),
			Password: request.PostFormValue("password"),
		}
		if err := data.Validate(); err != nil {
			views.Render(writer, "login", formData{Feedback: validationFeedback(err)})
			return
		}

		user, err := ur.FindByEmail(data.Email)
		if errors.Is(err, ErrNotFound) {
			var feedback = defaultFeedback()
			feedback.EmailClass = "is-invalid"
			feedback.EmailFeedback = "Email was not registered, please sign up!"
			views.Render(writer, "login", formData{Feedback: feedback})
			return
		} else if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		// digest equality decides authentication
		if auth.HashSecret(data.Password) != user.Password {
			views.Render(writer, "login", formData{Feedback: FormFeedback{
				EmailClass:       "is-valid",
				PasswordClass:    "is-invalid",
				PasswordFeedback: "Wrong Password!",
			}})
			return
		}

		if err = sessions.Issue(writer, auth.Session{UserId: user.Id, Username: user.Email}); err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		http.Redirect(writer, request, "/note/all", http.StatusFound)
	}
}

func logout(sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		sessions.Clear(writer)
		http.Redirect(writer, request, "/note/all", http.StatusFound)
	}
}

// profile lists the requester's attributed notes. Anonymous visitors are sent
// to the login form rather than left without a response.
func profile(nr notes.NoteRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, authenticated = sessions.Resolve(request)
		if !authenticated {
			http.Redirect(writer, request, "/login", http.StatusFound)
			return
		}

		observations, err := nr.ListForUser(session.UserId)
		if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}
		if len(observations) == 0 {
			views.Error(writer, "User has no notes!", session.Username)
			return
		}

		views.Render(writer, "profile", struct {
			Notes    []notes.Note
			Username string
		}{observations, session.Username})
	}
}

func emailTakenFeedback() FormFeedback {
	var feedback = defaultFeedback()
	feedback.EmailClass = "is-invalid"
	feedback.EmailFeedback = "Email has already been signed up! Please use another email!"
	return feedback
}
