package site

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Alijeyrad/interiora_backend/config"
)

// AdminLoginPage renders the sign-in form. The form is submitted by
// /static/js/admin-login.js to the JSON login endpoint.
func AdminLoginPage(s config.SiteConfig) g.Node {
	return Layout(
		PageConfig{Title: s.StudioName + " admin"},
		Main(
			Class("admin-login"),
			H1(g.Text("Sign in")),
			Div(ID("login-error"), Class("banner banner-error"), g.Attr("role", "alert"), g.Attr("hidden")),
			g.El("form",
				ID("admin-login"),
				g.Attr("data-endpoint", "/api/v1/admin/login"),
				Div(
					Class("field"),
					g.El("label", g.Attr("for", "login-email"), g.Text("Email")),
					Input(ID("login-email"), Name("email"), Type("email"), g.Attr("autocomplete", "username"), g.Attr("required")),
				),
				Div(
					Class("field"),
					g.El("label", g.Attr("for", "login-password"), g.Text("Password")),
					Input(ID("login-password"), Name("password"), Type("password"), g.Attr("autocomplete", "current-password"), g.Attr("required")),
				),
				Button(Type("submit"), Class("btn"), g.Text("Sign in")),
			),
			Script(Type("module"), Src("/static/js/admin-login.js")),
		),
	)
}
