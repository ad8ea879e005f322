package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/interiora_backend/config"
	"github.com/Alijeyrad/interiora_backend/internal/service/content"
	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
)

func render(t *testing.T, l Landing) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, Render(&b, LandingPage(l)))
	return b.String()
}

func studio() config.SiteConfig {
	return config.SiteConfig{
		StudioName: "Interiora",
		Tagline:    "Rooms that feel like you",
		About:      "A small studio in Austin.",
		Services:   []string{"Full renovation", "Styling"},
		Phone:      "+1 512 555 0100",
	}
}

func TestLandingPage_OmitsEmptySections(t *testing.T) {
	html := render(t, Landing{Site: studio()})

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `id="about"`)
	assert.Contains(t, html, `id="services"`)
	assert.Contains(t, html, `id="contact"`)
	assert.NotContains(t, html, `id="philosophy"`)
	assert.NotContains(t, html, `id="gallery"`)
	assert.NotContains(t, html, `id="testimonials"`)
}

func TestLandingPage_Content(t *testing.T) {
	html := render(t, Landing{
		Site: studio(),
		Gallery: []content.GalleryItem{
			{Title: "Loft kitchen", ImageURL: "https://cdn.example.com/loft.jpg"},
		},
		Testimonials: []content.Testimonial{
			{ClientName: "Sam", Rating: 4, ReviewText: "Lovely work", Location: "Austin"},
		},
	})

	assert.Contains(t, html, `id="gallery"`)
	assert.Contains(t, html, `src="https://cdn.example.com/loft.jpg"`)
	assert.Contains(t, html, "Lovely work")
	assert.Contains(t, html, "★★★★☆")
	assert.Contains(t, html, "Sam, Austin")
}

func TestLandingPage_FormRetainsValuesOnError(t *testing.T) {
	html := render(t, Landing{
		Site: studio(),
		Form: ContactForm{
			Values:  enquiry.Enquiry{Name: "Jane <b>Doe</b>", Email: "bob@", Message: "Kitchen remodel"},
			Error:   enquiry.ErrInvalidEmail.Error(),
			Invalid: []enquiry.Field{enquiry.FieldEmail},
		},
	})

	assert.Contains(t, html, "please enter a valid email address")
	assert.Contains(t, html, `value="bob@"`)
	assert.Contains(t, html, "Jane &lt;b&gt;Doe&lt;/b&gt;")
	assert.Contains(t, html, "Kitchen remodel</textarea>")
	assert.Equal(t, 1, strings.Count(html, `aria-invalid="true"`))
	assert.NotContains(t, html, "banner-success")
}

func TestLandingPage_SuccessBanner(t *testing.T) {
	html := render(t, Landing{Site: studio(), Form: ContactForm{Reference: "K7Q2MX9P"}})

	assert.Contains(t, html, "banner-success")
	assert.Contains(t, html, "<strong>K7Q2MX9P</strong>")
	assert.NotContains(t, html, "banner-error")
}

func TestAdminLoginPage(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Render(&b, AdminLoginPage(studio())))

	assert.Contains(t, b.String(), "<title>Interiora admin</title>")
	assert.Contains(t, b.String(), `data-endpoint="/api/v1/admin/login"`)
}
