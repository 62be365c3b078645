package imagemeta

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/AdnanSameer1724/careers-page-builder/internal/company"
)

func TestGenerateImageForCompany_RendersWithoutFontAssets(t *testing.T) {
	tagline := "We make rockets"
	c := &company.Company{
		Name:              "Acme",
		Tagline:           &tagline,
		BrandPrimaryColor: "#2563eb",
	}

	media, err := GenerateImageForCompany(c, 3)
	if err != nil {
		t.Fatalf("GenerateImageForCompany: %v", err)
	}
	raw, err := io.ReadAll(media)
	if err != nil {
		t.Fatalf("reading generated image: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("generated bytes are not a PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != metaImageWidth || bounds.Dy() != metaImageHeight {
		t.Fatalf("image size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), metaImageWidth, metaImageHeight)
	}

	// corners stay clear of the text block and carry the brand colour
	got := color.RGBAModel.Convert(img.At(bounds.Max.X-1, bounds.Max.Y-1)).(color.RGBA)
	want := color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	if got != want {
		t.Fatalf("background colour = %+v, want %+v", got, want)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := parseHexColor("#1e40af")
	if err != nil {
		t.Fatalf("parseHexColor: %v", err)
	}
	if c.R != 0x1e || c.G != 0x40 || c.B != 0xaf || c.A != 255 {
		t.Fatalf("parsed colour = %+v", c)
	}
	if _, err := parseHexColor("2563eb"); err == nil {
		t.Fatal("missing # accepted")
	}
	if _, err := parseHexColor("#25f"); err == nil {
		t.Fatal("short form accepted")
	}
}
