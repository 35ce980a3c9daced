package web

import (
	"errors"
	"time"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/dukex/projecthub/pkg/session"
	"github.com/gofiber/fiber/v3"
)

// CookieName carries the session token.
const CookieName = "hub_session"

type sessionKey struct{}

// loadSession resolves the cookie to a session, starting a fresh one when the cookie is
// missing, unknown or expired.
func (s *Server) loadSession(c fiber.Ctx) error {
	ctx := c.Context()

	if token := c.Cookies(CookieName); token != "" {
		sess, err := s.Store.Get(ctx, token)
		switch {
		case err == nil:
			c.Locals(sessionKey{}, sess)

			return c.Next()
		case !errors.Is(err, session.ErrNotFound):
			return err
		}
	}

	sess, err := s.Store.Create(ctx)
	if err != nil {
		return err
	}

	s.setCookie(c, sess.ID)
	c.Locals(sessionKey{}, sess)

	return c.Next()
}

func (s *Server) requirePage(c fiber.Ctx) error {
	if services.RequireAuthenticated(currentSession(c)) != nil {
		return redirect(c, "/login")
	}

	return c.Next()
}

func (s *Server) requireAPI(c fiber.Ctx) error {
	if services.RequireAuthenticated(currentSession(c)) != nil {
		return unauthorized(c)
	}

	return c.Next()
}

func currentSession(c fiber.Ctx) *models.Session {
	sess, _ := c.Locals(sessionKey{}).(*models.Session)

	return sess
}

// update reloads the request's session, applies fn and saves the result whole. Reloading
// keeps a long simulated run from overwriting what other requests of the same browser
// changed in the meantime.
func (s *Server) update(c fiber.Ctx, fn func(sess *models.Session) error) (*models.Session, error) {
	ctx := c.Context()

	sess, err := s.Store.Get(ctx, currentSession(c).ID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, services.ErrUnauthenticated
		}

		return nil, err
	}

	if err := fn(sess); err != nil {
		return sess, err
	}

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}

	c.Locals(sessionKey{}, sess)

	return sess, nil
}

// endSession logs the session out, forgets it and expires the cookie.
func (s *Server) endSession(c fiber.Ctx) error {
	sess := currentSession(c)
	s.Gate.Logout(c.Context(), sess)

	if err := s.Store.Delete(c.Context(), sess.ID); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return nil
}

func (s *Server) setCookie(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func redirect(c fiber.Ctx, location string) error {
	return c.Redirect().Status(fiber.StatusSeeOther).To(location)
}
