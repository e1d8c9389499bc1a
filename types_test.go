package playbook

import (
	"errors"
	"testing"
	"time"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
)

// ---------------------------------------------------------------------------
// TestPageSettings_Validate - Page Settings Validation
// ---------------------------------------------------------------------------

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{"nil is valid", nil, nil},
		{"defaults are valid", DefaultPageSettings(), nil},
		{"a4 landscape", &PageSettings{Size: "a4", Orientation: "landscape", Margin: 1}, nil},
		{"uppercase accepted", &PageSettings{Size: "LEGAL", Orientation: "Portrait", Margin: 0.5}, nil},
		{"minimum margin", &PageSettings{Size: "letter", Orientation: "portrait", Margin: MinMargin}, nil},
		{"maximum margin", &PageSettings{Size: "letter", Orientation: "portrait", Margin: MaxMargin}, nil},
		{"unknown size", &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5}, ErrInvalidPageSize},
		{"empty size", &PageSettings{Orientation: "portrait", Margin: 0.5}, ErrInvalidPageSize},
		{"unknown orientation", &PageSettings{Size: "a4", Orientation: "diagonal", Margin: 0.5}, ErrInvalidOrientation},
		{"margin too small", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.1}, ErrInvalidMargin},
		{"margin too large", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 3.5}, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettingsFromConfig(t *testing.T) {
	t.Parallel()

	got := PageSettingsFromConfig(config.DefaultConfig().Page)
	if *got != *DefaultPageSettings() {
		t.Errorf("PageSettingsFromConfig(default) = %+v, want %+v", got, DefaultPageSettings())
	}
}

// ---------------------------------------------------------------------------
// TestOptions - Functional Options
// ---------------------------------------------------------------------------

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	s := defaultSettings()
	WithTimeout(time.Minute)(&s)
	if s.timeout != time.Minute {
		t.Errorf("timeout = %v, want %v", s.timeout, time.Minute)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithTimeout(%v) did not panic", d)
				}
			}()
			WithTimeout(d)
		}()
	}
}

func TestWithStyleAndTemplateSet_IgnoreEmpty(t *testing.T) {
	t.Parallel()

	s := defaultSettings()
	WithStyle("")(&s)
	WithTemplateSet("")(&s)
	if s.style == "" || s.templateSet == "" {
		t.Errorf("empty names overrode defaults: %+v", s)
	}

	WithStyle("print")(&s)
	WithTemplateSet("minimal")(&s)
	if s.style != "print" || s.templateSet != "minimal" {
		t.Errorf("names not applied: style=%q set=%q", s.style, s.templateSet)
	}
}
