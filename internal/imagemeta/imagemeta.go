package imagemeta

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"
	"path/filepath"

	"github.com/AdnanSameer1724/careers-page-builder/internal/company"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

const (
	metaImageWidth  = 1200
	metaImageHeight = 628
)

// GenerateImageForCompany renders the social preview card for a careers page:
// brand colour background, company name and tagline, and the open role count.
func GenerateImageForCompany(c *company.Company, openRoles int) (io.ReadWriter, error) {
	w := bytes.NewBuffer([]byte{})
	dc := gg.NewContext(metaImageWidth, metaImageHeight)

	bg, err := parseHexColor(c.BrandPrimaryColor)
	if err != nil {
		bg = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	}
	dc.SetColor(bg)
	dc.Clear()

	title := fmt.Sprintf("Careers at %s", c.Name)
	if c.Tagline != nil && *c.Tagline != "" {
		title = fmt.Sprintf("%s\n\n%s", title, *c.Tagline)
	}
	if openRoles > 0 {
		title = fmt.Sprintf("%s\n\n%d open roles", title, openRoles)
	}
	// the deploy may ship a nicer face; gg's built-in face covers its absence
	fontPath := filepath.Join("static", "assets", "fonts", "verdana", "verdana.ttf")
	if err := dc.LoadFontFace(fontPath, 60); err != nil {
		log.Printf("unable to load %s, using built-in font face: %v", fontPath, err)
	}
	textMargin := 80.0
	maxWidth := float64(dc.Width()) - textMargin - textMargin
	dc.SetColor(color.White)
	dc.DrawStringWrapped(title, textMargin, 90.0, 0, 0, maxWidth, 1.5, gg.AlignLeft)

	if err := png.Encode(w, dc.Image()); err != nil {
		return w, err
	}

	return w, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	if len(s) != 7 || s[0] != '#' {
		return c, errors.Errorf("invalid hex color %q", s)
	}
	_, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	return c, err
}
