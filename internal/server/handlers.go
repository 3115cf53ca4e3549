package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-blog/internal/auth"
	"github.com/goliatone/go-blog/internal/posts"
)

func (s *Server) handleIndex(c *fiber.Ctx) error {
	list, err := s.store.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.Render("index", fiber.Map{
		"Title": s.cfg.Title,
		"Posts": list,
	})
}

func (s *Server) handlePost(c *fiber.Ctx) error {
	slug := c.Params("slug")

	post, err := s.store.Get(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) || errors.Is(err, posts.ErrSlugInvalid) {
			return fiber.NewError(fiber.StatusNotFound, "Post not found.")
		}
		return err
	}

	return c.Render("post", fiber.Map{
		"Title": s.cfg.Title,
		"Post":  post,
	})
}

func (s *Server) handleLoginPage(c *fiber.Ctx) error {
	if s.gate.IsAuthenticated(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	return c.Render("login", fiber.Map{
		"Title": s.cfg.Title,
	})
}

func (s *Server) handleLoginSubmit(c *fiber.Ctx) error {
	password := c.FormValue("password")

	if !s.gate.CheckPassword(password) {
		s.requestLogger(c).Warn("server.login_rejected", "ip", c.IP())
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Title": s.cfg.Title,
			"Error": "Invalid password",
		})
	}

	if err := s.gate.IssueCookie(c); err != nil {
		return err
	}

	s.requestLogger(c).Info("server.login_accepted", "ip", c.IP())
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	s.gate.ClearCookie(c)
	return c.Redirect(auth.LoginPath, fiber.StatusSeeOther)
}
