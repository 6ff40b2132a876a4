package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	img "github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Resolution define as dimensões máximas de uma resolução de imagem
type Resolution struct {
	Width  int
	Height int
}

// Resolutions são as resoluções geradas para cada imagem de produto
var Resolutions = map[string]Resolution{
	"thumbnail": {150, 150}, // listas/miniaturas
	"medium":    {400, 400}, // detalhes/cards
	"large":     {800, 800}, // visualização ampliada
}

// allowedExtensions são as extensões de upload aceitas
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// AllowedFile verifica se o arquivo tem extensão permitida
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// BaseFilename gera o nome base único de imagem de um produto.
// Padrão: produto_<id>_<uuid>
func BaseFilename(productID string) string {
	return fmt.Sprintf("produto_%s_%s", productID, uuid.New().String())
}

// CreateResolutions gera as resoluções da imagem de origem dentro de destDir,
// mantendo a proporção. As cópias redimensionadas são sempre JPEG (qualidade
// 85). Retorna o nome de arquivo gerado por resolução; em caso de erro os
// arquivos já criados são removidos.
func CreateResolutions(srcPath, baseFilename, destDir string) (map[string]string, error) {
	src, err := img.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir imagem: %w", err)
	}

	created := make(map[string]string)
	for name, res := range Resolutions {
		resized := img.Fit(src, res.Width, res.Height, img.Lanczos)

		filename := fmt.Sprintf("%s_%s.jpg", baseFilename, name)
		destPath := filepath.Join(destDir, filename)

		if err := img.Save(resized, destPath, img.JPEGQuality(85)); err != nil {
			cleanupFiles(destDir, created)
			return nil, fmt.Errorf("erro ao salvar resolução %s: %w", name, err)
		}
		created[name] = filename
	}

	return created, nil
}

// FindProductImages procura em dir as imagens de um produto e retorna a URL
// por resolução. As URLs são derivadas dos arquivos existentes, não de estado
// no banco.
func FindProductImages(dir, productID, baseURL string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler diretório de imagens: %w", err)
	}

	prefix := fmt.Sprintf("produto_%s_", productID)
	found := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		// Formato: produto_<id>_<uuid>_<resolucao>.<ext>
		base := strings.TrimSuffix(name, filepath.Ext(name))
		parts := strings.Split(base, "_")
		resolution := parts[len(parts)-1]
		if _, ok := Resolutions[resolution]; ok {
			found[resolution] = fmt.Sprintf("%s/images/produtos/%s", baseURL, name)
		}
	}

	if len(found) == 0 {
		return nil, nil
	}
	return found, nil
}

// RemoveProductImages exclui todos os arquivos de imagem de um produto e
// retorna os nomes removidos
func RemoveProductImages(dir, productID string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler diretório de imagens: %w", err)
	}

	prefix := fmt.Sprintf("produto_%s_", productID)
	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			continue
		}
		removed = append(removed, name)
	}

	return removed, nil
}

func cleanupFiles(dir string, files map[string]string) {
	for _, filename := range files {
		os.Remove(filepath.Join(dir, filename))
	}
}
