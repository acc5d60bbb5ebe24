package session

import (
	"fmt"
	"strings"
)

// Supported locales.
const (
	LocaleEnglish = "en"
	LocaleRussian = "ru"
)

// Catalog holds the user-facing strings for one locale.
type Catalog struct {
	Locale            string
	unsupportedFormat string // %s = filename
	renderFailed      string // %s = filename, %s = reason
	NoFilesSelected   string
	ConversionFailed  string
	FileNotFound      string
	SessionNotFound   string
	Internal          string
	TooLarge          string
	ArchivePrefix     string // zip download name before the timestamp
}

var catalogs = map[string]Catalog{
	LocaleEnglish: {
		Locale:            LocaleEnglish,
		unsupportedFormat: "'%s' - unsupported format",
		renderFailed:      "'%s' - error: %s",
		NoFilesSelected:   "No files selected",
		ConversionFailed:  "Failed to convert files",
		FileNotFound:      "File not found",
		SessionNotFound:   "Session not found",
		Internal:          "Internal server error",
		TooLarge:          "Upload exceeds the size limit",
		ArchivePrefix:     "pdf_files",
	},
	LocaleRussian: {
		Locale:            LocaleRussian,
		unsupportedFormat: "'%s' — неподдерживаемый формат",
		renderFailed:      "'%s' — ошибка: %s",
		NoFilesSelected:   "Файлы не выбраны",
		ConversionFailed:  "Не удалось сконвертировать файлы",
		FileNotFound:      "Файл не найден",
		SessionNotFound:   "Сессия не найдена",
		Internal:          "Внутренняя ошибка сервера",
		TooLarge:          "Превышен допустимый размер загрузки",
		ArchivePrefix:     "pdf_файлы",
	},
}

// CatalogFor returns the catalog for locale, falling back to English.
func CatalogFor(locale string) Catalog {
	if c, ok := catalogs[strings.ToLower(locale)]; ok {
		return c
	}
	return catalogs[LocaleEnglish]
}

// UnsupportedFormat formats the per-file message for a rejected extension.
func (c Catalog) UnsupportedFormat(filename string) string {
	return fmt.Sprintf(c.unsupportedFormat, filename)
}

// RenderFailed formats the per-file message for a conversion error.
func (c Catalog) RenderFailed(filename string, err error) string {
	return fmt.Sprintf(c.renderFailed, filename, err.Error())
}
