package catalog

import (
	"strings"

	"github.com/google/uuid"
)

const maxSlugLength = 80

// Slug приводит строку к виду sku: нижний регистр, любые серии
// не-алфавитно-цифровых символов заменяются на "-", по краям "-" срезаются.
// Для пустого результата генерируется случайный sku-xxxxxxxx.
func Slug(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	dash := false
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "sku-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}

// Condense оставляет только латинские буквы и цифры в нижнем регистре
func Condense(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
