package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Axis   int     `yaml:"axis" validate:"oneof=0 1 2"`
	Cutoff float64 `yaml:"cutoff" validate:"gt=0"`
	Format string  `yaml:"format" validate:"omitempty,oneof=json yaml"`
	Nested struct {
		Fraction float64 `yaml:"fraction" validate:"gt=0,lte=1"`
	} `yaml:"nested"`
}

func validSample() sample {
	s := sample{Axis: 1, Cutoff: 2.5, Format: "json"}
	s.Nested.Fraction = 0.5
	return s
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*sample)
		errorField string
	}{
		{"valid", func(*sample) {}, ""},
		{"axis out of range", func(s *sample) { s.Axis = 3 }, "axis"},
		{"negative axis", func(s *sample) { s.Axis = -1 }, "axis"},
		{"zero cutoff", func(s *sample) { s.Cutoff = 0 }, "cutoff"},
		{"bad format", func(s *sample) { s.Format = "xml" }, "format"},
		{"empty format allowed", func(s *sample) { s.Format = "" }, ""},
		{"nested fraction", func(s *sample) { s.Nested.Fraction = 1.5 }, "nested.fraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSample()
			tt.mutate(&s)
			err := Struct(&s)

			if tt.errorField == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.HasPrefix(err.Error(), tt.errorField+":") {
				t.Errorf("error %q should start with %q", err, tt.errorField)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("expected error for nil")
	}
}

func TestVar(t *testing.T) {
	if err := Var("cutoff", 1.0, "gt=0"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := Var("cutoff", -1.0, "gt=0")
	if err == nil || !strings.Contains(err.Error(), "cutoff: must be greater than 0") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigValidator(t *testing.T) {
	cv := NewConfigValidator("output").
		Required("path", "").
		OneOf("format", "xml", []string{"json", "yaml"}).
		RangeFloat("fraction", 0.5, 0, 1).
		When(true, func(cv *ConfigValidator) {
			cv.Custom("compress", func() error { return errors.New("needs a path") })
		}).
		When(false, func(cv *ConfigValidator) {
			cv.Required("never", "")
		})

	if len(cv.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %v", cv.Errors())
	}
	err := cv.Validate()
	for _, want := range []string{"output.path", "output.format", "output.compress: needs a path"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error %q missing %q", err, want)
		}
	}
}

func TestConfigValidator_NoErrors(t *testing.T) {
	if err := NewConfigValidator("x").Required("a", "b").Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
