package site

import (
	"fmt"
	"slices"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Alijeyrad/interiora_backend/config"
	"github.com/Alijeyrad/interiora_backend/internal/service/content"
	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
)

// Landing is everything the landing page shows.
type Landing struct {
	Site         config.SiteConfig
	Gallery      []content.GalleryItem
	Testimonials []content.Testimonial
	Form         ContactForm
}

// ContactForm is the state of the contact form after a post.
type ContactForm struct {
	Values enquiry.Enquiry

	// Error is shown in a banner above the form. Invalid marks the
	// offending inputs.
	Error   string
	Invalid []enquiry.Field

	// Reference is set after a successful submission.
	Reference string
}

func LandingPage(l Landing) g.Node {
	s := l.Site
	return Layout(
		PageConfig{Title: s.StudioName, Description: s.Tagline},
		topbar(s),
		Main(
			hero(s),
			textSection("about", "About", s.About),
			textSection("philosophy", "Our philosophy", s.Philosophy),
			listSection("services", "Services", s.Services),
			listSection("process", "How we work", s.Process),
			gallery(l.Gallery),
			testimonials(l.Testimonials),
			contact(s, l.Form),
		),
		footer(s),
	)
}

func hero(s config.SiteConfig) g.Node {
	return Section(
		ID("hero"), Class("hero"),
		H1(g.Text(s.StudioName)),
		g.If(s.Tagline != "", P(Class("tagline"), g.Text(s.Tagline))),
		A(Href("#contact"), Class("btn"), g.Text("Book a consultation")),
	)
}

func textSection(id, title, body string) g.Node {
	if body == "" {
		return nil
	}
	return Section(
		ID(id),
		H2(g.Text(title)),
		P(g.Text(body)),
	)
}

func listSection(id, title string, items []string) g.Node {
	if len(items) == 0 {
		return nil
	}
	return Section(
		ID(id),
		H2(g.Text(title)),
		Ul(g.Group(g.Map(items, func(item string) g.Node {
			return Li(g.Text(item))
		}))),
	)
}

func gallery(items []content.GalleryItem) g.Node {
	if len(items) == 0 {
		return nil
	}
	return Section(
		ID("gallery"),
		H2(g.Text("Portfolio")),
		Div(
			Class("gallery-grid"),
			g.Group(g.Map(items, func(it content.GalleryItem) g.Node {
				src := it.ThumbnailURL
				if src == "" {
					src = it.ImageURL
				}
				return g.El("figure",
					A(Href(it.ImageURL), Img(Src(src), Alt(it.Title), g.Attr("loading", "lazy"))),
					g.El("figcaption",
						g.Text(it.Title),
						g.If(it.Description != "", P(g.Text(it.Description))),
					),
				)
			})),
		),
	)
}

func testimonials(items []content.Testimonial) g.Node {
	if len(items) == 0 {
		return nil
	}
	return Section(
		ID("testimonials"),
		H2(g.Text("What our clients say")),
		g.Group(g.Map(items, func(t content.Testimonial) g.Node {
			return g.El("blockquote",
				Class("testimonial"),
				g.If(t.Rating > 0, Span(
					Class("rating"),
					g.Attr("aria-label", fmt.Sprintf("%d out of %d", t.Rating, content.MaxRating)),
					g.Text(stars(t.Rating)),
				)),
				P(g.Text(t.ReviewText)),
				g.El("cite",
					g.Text(t.ClientName),
					g.If(t.ProjectType != "", g.Text(", "+t.ProjectType)),
					g.If(t.Location != "", g.Text(", "+t.Location)),
				),
			)
		})),
	)
}

func stars(n int) string {
	n = content.ClampRating(n)
	out := make([]rune, 0, content.MaxRating)
	for i := range content.MaxRating {
		if i < n {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}

var fieldLabels = map[enquiry.Field]string{
	enquiry.FieldName:     "Name",
	enquiry.FieldEmail:    "Email",
	enquiry.FieldPhone:    "Phone",
	enquiry.FieldLocation: "Project location",
	enquiry.FieldMessage:  "Tell us about your project",
}

func contact(s config.SiteConfig, f ContactForm) g.Node {
	return Section(
		ID("contact"),
		H2(g.Text("Contact us")),
		banner(f),
		g.El("form",
			g.Attr("method", "post"),
			g.Attr("action", "/enquiry#contact"),
			g.Attr("novalidate"),
			g.Group(g.Map(enquiry.Fields, func(field enquiry.Field) g.Node {
				return formField(field, f.Values.Get(field), slices.Contains(f.Invalid, field))
			})),
			Button(Type("submit"), Class("btn"), g.Text("Send enquiry")),
		),
		g.If(s.Phone != "", P(Class("contact-phone"), g.Text("Prefer to talk? Call us on "), A(Href("tel:"+s.Phone), g.Text(s.Phone)))),
	)
}

func banner(f ContactForm) g.Node {
	switch {
	case f.Error != "":
		return Div(Class("banner banner-error"), g.Attr("role", "alert"), g.Text(f.Error))
	case f.Reference != "":
		return Div(
			Class("banner banner-success"), g.Attr("role", "status"),
			g.Text("Thank you, we have received your enquiry. Your reference is "),
			Strong(g.Text(f.Reference)),
			g.Text("."),
		)
	}
	return nil
}

func formField(field enquiry.Field, value string, invalid bool) g.Node {
	name := string(field)
	id := "enquiry-" + name

	attrs := []g.Node{ID(id), Name(name), g.Attr("required")}
	if invalid {
		attrs = append(attrs, g.Attr("aria-invalid", "true"))
	}

	var input g.Node
	switch field {
	case enquiry.FieldMessage:
		input = g.El("textarea", append(attrs, g.Attr("rows", "5"), g.Text(value))...)
	case enquiry.FieldEmail:
		input = Input(append(attrs, Type("email"), Value(value))...)
	case enquiry.FieldPhone:
		input = Input(append(attrs, Type("tel"), Value(value))...)
	default:
		input = Input(append(attrs, Type("text"), Value(value))...)
	}

	return Div(
		Class("field"),
		g.El("label", g.Attr("for", id), g.Text(fieldLabels[field])),
		input,
	)
}
