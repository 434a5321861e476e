package idphoto

import (
	"strings"

	"golang.org/x/text/language"
)

// The rotating lines clients show while a transformation is in flight. The
// order of statusCatalog mirrors the order of tags given to statusMatcher.
var (
	englishStatusMessages = []string{
		"Warming up the studio lights...",
		"Analyzing your photo...",
		"Pressing the white collared shirt...",
		"Painting the light blue backdrop...",
		"Squaring the shoulders...",
		"Framing head and shoulders...",
		"Finalizing your ID photo...",
	}

	indonesianStatusMessages = []string{
		"Menyiapkan lampu studio...",
		"Menganalisis foto Anda...",
		"Menyetrika kemeja putih berkerah...",
		"Mengecat latar biru muda...",
		"Meluruskan posisi bahu...",
		"Mengatur bingkai kepala dan bahu...",
		"Menyelesaikan pasfoto Anda...",
	}

	statusMatcher = language.NewMatcher([]language.Tag{
		language.English,
		language.Indonesian,
	})

	statusCatalog = [][]string{
		englishStatusMessages,
		indonesianStatusMessages,
	}
)

// StatusMessages returns the catalog for the closest supported language.
// Unknown or malformed locales fall back to English.
func StatusMessages(locale string) []string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return englishStatusMessages
	}
	_, index, _ := statusMatcher.Match(tag)
	return statusCatalog[index]
}
