package imaging

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	img "github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"foto.png", true},
		{"foto.jpg", true},
		{"foto.JPEG", true},
		{"foto.gif", true},
		{"foto.webp", true},
		{"documento.pdf", false},
		{"script.sh", false},
		{"sem-extensao", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedFile(tt.filename))
		})
	}
}

func TestBaseFilename(t *testing.T) {
	a := BaseFilename("abc-123")
	b := BaseFilename("abc-123")

	assert.True(t, strings.HasPrefix(a, "produto_abc-123_"))
	assert.NotEqual(t, a, b, "nomes devem ser únicos por upload")
}

// writeTestImage grava uma imagem sintética para os testes de redimensionamento
func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			canvas.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	require.NoError(t, img.Save(canvas, path))
}

func TestCreateResolutions(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "original.png")
	writeTestImage(t, srcPath, 1200, 900)

	base := BaseFilename("p1")
	created, err := CreateResolutions(srcPath, base, dir)
	require.NoError(t, err)
	require.Len(t, created, len(Resolutions))

	for name, res := range Resolutions {
		filename, ok := created[name]
		require.True(t, ok, "resolução %s não gerada", name)
		assert.True(t, strings.HasSuffix(filename, "_"+name+".jpg"))

		// a imagem gerada cabe nas dimensões máximas mantendo a proporção
		resized, err := img.Open(filepath.Join(dir, filename))
		require.NoError(t, err)
		bounds := resized.Bounds()
		assert.LessOrEqual(t, bounds.Dx(), res.Width)
		assert.LessOrEqual(t, bounds.Dy(), res.Height)
	}
}

func TestCreateResolutionsInvalidSource(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateResolutions(filepath.Join(dir, "nao-existe.png"), "produto_x", dir)
	assert.Error(t, err)
}

func TestFindAndRemoveProductImages(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "original.png")
	writeTestImage(t, srcPath, 600, 400)

	base := BaseFilename("p1")
	_, err := CreateResolutions(srcPath, base, dir)
	require.NoError(t, err)

	found, err := FindProductImages(dir, "p1", "http://localhost:8080")
	require.NoError(t, err)
	require.Len(t, found, len(Resolutions))
	for resolution, url := range found {
		assert.Contains(t, url, "/images/produtos/")
		assert.Contains(t, url, "_"+resolution+".jpg")
	}

	// imagens de outro produto não aparecem
	other, err := FindProductImages(dir, "p2", "http://localhost:8080")
	require.NoError(t, err)
	assert.Empty(t, other)

	removed, err := RemoveProductImages(dir, "p1")
	require.NoError(t, err)
	assert.Len(t, removed, len(Resolutions))

	found, err = FindProductImages(dir, "p1", "http://localhost:8080")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindProductImagesMissingDir(t *testing.T) {
	found, err := FindProductImages("/caminho/que/nao/existe", "p1", "http://localhost:8080")
	assert.NoError(t, err)
	assert.Empty(t, found)
}
