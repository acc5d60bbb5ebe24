package html2pdf

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPageSettings_Validate - Page settings validation
// ---------------------------------------------------------------------------

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{name: "nil is valid", page: nil},
		{name: "defaults", page: DefaultPageSettings()},
		{name: "letter landscape", page: &PageSettings{Size: "letter", Orientation: "landscape", Margin: 1}},
		{name: "uppercase legal", page: &PageSettings{Size: "LEGAL", Orientation: "Portrait", Margin: 0.5}},
		{name: "unknown size", page: &PageSettings{Size: "a3", Orientation: "portrait", Margin: 1}, wantErr: ErrInvalidPageSize},
		{name: "empty size", page: &PageSettings{Size: "", Orientation: "portrait", Margin: 1}, wantErr: ErrInvalidPageSize},
		{name: "bad orientation", page: &PageSettings{Size: "a4", Orientation: "square", Margin: 1}, wantErr: ErrInvalidOrientation},
		{name: "margin below min", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.1}, wantErr: ErrInvalidMargin},
		{name: "margin above max", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 3.1}, wantErr: ErrInvalidMargin},
		{name: "margin at min", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: MinMargin}},
		{name: "margin at max", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: MaxMargin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPageSettings(t *testing.T) {
	t.Parallel()

	p := DefaultPageSettings()
	if p.Size != PageSizeA4 {
		t.Errorf("Size = %q, want %q", p.Size, PageSizeA4)
	}
	if p.Orientation != OrientationPortrait {
		t.Errorf("Orientation = %q, want %q", p.Orientation, OrientationPortrait)
	}
	if p.Margin != DefaultMargin {
		t.Errorf("Margin = %v, want %v", p.Margin, DefaultMargin)
	}
}

// ---------------------------------------------------------------------------
// TestResolvePageDimensions - Paper size lookup
// ---------------------------------------------------------------------------

func TestResolvePageDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       *PageSettings
		wantW      float64
		wantH      float64
		wantMargin float64
	}{
		{
			name:       "nil uses A4 defaults",
			page:       nil,
			wantW:      a4Width,
			wantH:      a4Height,
			wantMargin: DefaultMargin,
		},
		{
			name:       "letter portrait",
			page:       &PageSettings{Size: "letter", Orientation: "portrait", Margin: 0.5},
			wantW:      letterWidth,
			wantH:      letterHeight,
			wantMargin: 0.5,
		},
		{
			name:       "legal landscape swaps",
			page:       &PageSettings{Size: "legal", Orientation: "landscape", Margin: 1},
			wantW:      legalHeight,
			wantH:      legalWidth,
			wantMargin: 1,
		},
		{
			name:       "case insensitive",
			page:       &PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 0.79},
			wantW:      a4Height,
			wantH:      a4Width,
			wantMargin: 0.79,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, margin := resolvePageDimensions(tt.page)
			if w != tt.wantW {
				t.Errorf("width = %v, want %v", w, tt.wantW)
			}
			if h != tt.wantH {
				t.Errorf("height = %v, want %v", h, tt.wantH)
			}
			if margin != tt.wantMargin {
				t.Errorf("margin = %v, want %v", margin, tt.wantMargin)
			}
		})
	}
}
