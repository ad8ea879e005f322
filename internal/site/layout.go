// Package site renders the server-side HTML pages: the studio landing page
// with its contact form, and the admin login page.
package site

import (
	"io"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Alijeyrad/interiora_backend/config"
)

type PageConfig struct {
	Title       string
	Description string
}

func Layout(page PageConfig, content ...g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(page.Title)),
				g.If(page.Description != "", Meta(Name("description"), Content(page.Description))),

				Meta(g.Attr("property", "og:title"), Content(page.Title)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				g.Group(content),
			),
		),
	})
}

// Render writes a page as HTML.
func Render(w io.Writer, n g.Node) error {
	return n.Render(w)
}

type navLink struct{ href, label string }

func topbar(s config.SiteConfig) g.Node {
	links := []navLink{
		{"#about", "About"},
		{"#services", "Services"},
		{"#gallery", "Portfolio"},
		{"#contact", "Contact"},
	}

	return Header(
		Class("topbar"),
		A(Href("/"), Class("brand"), g.Text(s.StudioName)),
		Nav(
			Ul(
				g.Group(g.Map(links, func(l navLink) g.Node {
					return Li(A(Href(l.href), g.Text(l.label)))
				})),
			),
		),
	)
}

func footer(s config.SiteConfig) g.Node {
	return Footer(
		Class("footer"),
		P(g.Text(s.StudioName)),
		g.If(s.Address != "", P(g.Text(s.Address))),
		g.If(s.Phone != "", P(A(Href("tel:"+s.Phone), g.Text(s.Phone)))),
		g.If(s.Email != "", P(A(Href("mailto:"+s.Email), g.Text(s.Email)))),
		g.If(s.Instagram != "", P(A(Href(s.Instagram), g.Text("Instagram")))),
	)
}
