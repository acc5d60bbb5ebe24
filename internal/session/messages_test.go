package session

import (
	"errors"
	"testing"
)

func TestCatalogFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale string
		want   string
	}{
		{locale: "en", want: LocaleEnglish},
		{locale: "ru", want: LocaleRussian},
		{locale: "RU", want: LocaleRussian},
		{locale: "fr", want: LocaleEnglish},
		{locale: "", want: LocaleEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			t.Parallel()

			if got := CatalogFor(tt.locale).Locale; got != tt.want {
				t.Errorf("CatalogFor(%q).Locale = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestCatalog_Messages(t *testing.T) {
	t.Parallel()

	en := CatalogFor(LocaleEnglish)
	ru := CatalogFor(LocaleRussian)
	boom := errors.New("boom")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "en unsupported", got: en.UnsupportedFormat("x.txt"), want: "'x.txt' - unsupported format"},
		{name: "en failed", got: en.RenderFailed("x.html", boom), want: "'x.html' - error: boom"},
		{name: "ru unsupported", got: ru.UnsupportedFormat("x.txt"), want: "'x.txt' — неподдерживаемый формат"},
		{name: "ru failed", got: ru.RenderFailed("x.html", boom), want: "'x.html' — ошибка: boom"},
		{name: "en no files", got: en.NoFilesSelected, want: "No files selected"},
		{name: "ru no files", got: ru.NoFilesSelected, want: "Файлы не выбраны"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestConversionFailedError(t *testing.T) {
	t.Parallel()

	err := error(&ConversionFailedError{Errors: []FileError{
		{Filename: "a.txt", Kind: ErrUnsupportedExtension, Message: "m1"},
	}})

	if !errors.Is(err, ErrConversionFailed) {
		t.Error("errors.Is(ErrConversionFailed) = false")
	}
	if errors.Is(err, ErrNoFilesProvided) {
		t.Error("matched an unrelated sentinel")
	}
	if err.Error() == "" {
		t.Error("empty error message")
	}
}
