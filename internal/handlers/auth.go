package handlers

import (
	"errors"
	"net/http"

	"dronedata/internal/models"
	"dronedata/internal/service"

	"github.com/gin-gonic/gin"
)

const loginTitle = "Drone | login"

// Browser login form. JSON bodies bind to the same fields.
type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Location string `form:"location" json:"location"`
}

// AndroidCredentials is the mobile login payload.
type AndroidCredentials struct {
	Username string `form:"username" json:"username" binding:"required" example:"ram"`
	Password string `form:"password" json:"password" binding:"required" example:"secret"`
}

// SignUpRequest is the registration payload. Location is optional.
type SignUpRequest struct {
	Username string `form:"username" json:"username" example:"ram"`
	Password string `form:"password" json:"password" example:"secret"`
	Location string `form:"location" json:"location,omitempty" example:"nangi"`
}

// SignUpResponse is returned after a successful registration.
type SignUpResponse struct {
	Success bool   `json:"success" example:"true"`
	Status  string `json:"status" example:"Registration Successful"`
}

// SignUpError names the reason a registration was refused.
type SignUpError struct {
	Name    string `json:"name" example:"UserExistsError"`
	Message string `json:"message" example:"A user with the given username is already registered"`
}

// SignUpErrorResponse wraps SignUpError as {"err": {...}}.
type SignUpErrorResponse struct {
	Err SignUpError `json:"err"`
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"title":     loginTitle,
		"locations": models.Locations,
	})
}

// login checks the form credentials and that the submitted location is the
// user's own. Every failure lands back on the login page.
func (h *Handler) login(c *gin.Context) {
	var input loginForm
	if err := c.ShouldBind(&input); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	ctx := c.Request.Context()
	user, err := h.services.Authentication.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		h.loginFailed(c, input.Username, input.Location, "", err)
		c.Redirect(http.StatusFound, "/")
		return
	}
	if !user.ValidLocation(input.Location) {
		h.loginFailed(c, input.Username, input.Location, user.Location, service.ErrLocationMismatch)
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.startSession(c, user); err != nil {
		if h.log != nil {
			h.log.Errorw("session_issue_failed", "username", user.Username, "err", err)
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	h.audit(c, models.AccessEvent{
		Type:        models.EventLogin,
		Username:    user.Username,
		Location:    user.Location,
		Description: "login",
	})
	c.Redirect(http.StatusFound, "/"+input.Location)
}

// @Summary      Mobile login
// @Description  Authenticates and sets the session cookie. Answers plain text.
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body      AndroidCredentials  true  "Credentials"
// @Success      200   {string}  string  "OK"
// @Failure      400   {string}  string  "Bad Request"
// @Failure      401   {string}  string  "Unauthorized"
// @Failure      500   {string}  string  "Internal Server Error"
// @Router       /android [post]
func (h *Handler) androidLogin(c *gin.Context) {
	var input AndroidCredentials
	if err := c.ShouldBind(&input); err != nil {
		c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	}

	user, err := h.services.Authentication.Authenticate(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	case err != nil:
		h.loginFailed(c, input.Username, "", "", err)
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.String(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		} else {
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	if err := h.startSession(c, user); err != nil {
		if h.log != nil {
			h.log.Errorw("session_issue_failed", "username", user.Username, "err", err)
		}
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.audit(c, models.AccessEvent{
		Type:        models.EventLogin,
		Username:    user.Username,
		Location:    user.Location,
		Description: "android login",
		Metadata:    gin.H{"client": "android"},
	})
	c.String(http.StatusOK, "OK")
}

// @Summary      Register
// @Description  Creates the account and logs it in. Errors are answered with status 500.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignUpRequest  true  "Account"
// @Success      200   {object}  SignUpResponse
// @Failure      500   {object}  SignUpErrorResponse
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input SignUpRequest
	if err := c.ShouldBind(&input); err != nil {
		h.signUpFailed(c, input.Username, SignUpError{Name: "ValidationError", Message: err.Error()}, err)
		return
	}

	user, err := h.services.Authentication.Register(c.Request.Context(), input.Username, input.Password, input.Location)
	if err != nil {
		h.signUpFailed(c, input.Username, signUpErrorFor(err), err)
		return
	}

	if err := h.startSession(c, user); err != nil {
		h.signUpFailed(c, input.Username, signUpErrorFor(err), err)
		return
	}

	h.audit(c, models.AccessEvent{
		Type:        models.EventSignUp,
		Username:    user.Username,
		Location:    user.Location,
		Description: "registered",
	})
	c.JSON(http.StatusOK, SignUpResponse{Success: true, Status: "Registration Successful"})
}

// logout ends the session if there is one and always clears the cookie.
func (h *Handler) logout(c *gin.Context) {
	ctx := c.Request.Context()
	if token, err := c.Cookie(h.opts.CookieName); err == nil && token != "" {
		if sess, err := h.services.Sessions.Resolve(ctx, token); err == nil {
			if user, err := h.services.Authentication.UserByID(ctx, sess.UserID); err == nil {
				h.audit(c, models.AccessEvent{
					Type:        models.EventLogout,
					Username:    user.Username,
					Location:    user.Location,
					Description: "logout",
				})
			}
		}
		if err := h.services.Sessions.Revoke(ctx, token); err != nil && h.log != nil {
			h.log.Infow("session_revoke_failed", "err", err)
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// loginFailed logs a rejected sign-in. The audit event is filed under
// ownLocation, the location of the matched account, never the one the client
// submitted; unknown users and bad passwords are filed under no location.
func (h *Handler) loginFailed(c *gin.Context, username, submitted, ownLocation string, err error) {
	if h.log != nil {
		h.log.Infow("auth_sign_in_failed", "username", username, "location", submitted, "err", err)
	}
	if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrLocationMismatch) {
		h.audit(c, models.AccessEvent{
			Type:        models.EventLoginFailed,
			Username:    username,
			Location:    ownLocation,
			Description: err.Error(),
		})
	}
}

func (h *Handler) signUpFailed(c *gin.Context, username string, out SignUpError, err error) {
	if h.log != nil {
		h.log.Infow("auth_sign_up_failed", "username", username, "reason", out.Name, "err", err)
	}
	c.JSON(http.StatusInternalServerError, SignUpErrorResponse{Err: out})
}

// signUpErrorFor maps registration failures to the error names the mobile
// client already understands.
func signUpErrorFor(err error) SignUpError {
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		return SignUpError{Name: "UserExistsError", Message: "A user with the given username is already registered"}
	case errors.Is(err, service.ErrMissingUsername):
		return SignUpError{Name: "MissingUsernameError", Message: "No username was given"}
	case errors.Is(err, service.ErrMissingPassword):
		return SignUpError{Name: "MissingPasswordError", Message: "No password was given"}
	case errors.Is(err, service.ErrInvalidLocation):
		return SignUpError{Name: "ValidationError", Message: err.Error()}
	default:
		return SignUpError{Name: "InternalServerError", Message: "registration failed"}
	}
}
