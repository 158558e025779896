// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package validation

import (
	"strings"
	"testing"
)

type movieForm struct {
	Title  string  `validate:"required,max=150"`
	Year   int     `validate:"required,min=1878,max=2100"`
	Rating float64 `validate:"min=0,max=10"`
	ImgURL string  `validate:"omitempty,url,max=300"`
}

func TestValidateStructPass(t *testing.T) {
	form := movieForm{
		Title:  "Heat",
		Year:   1995,
		Rating: 8.3,
		ImgURL: "https://image.tmdb.org/t/p/w500/heat.jpg",
	}

	if err := ValidateStruct(&form); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestValidateStructFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		form      movieForm
		wantField string
		wantTag   string
	}{
		{
			name:      "missing title",
			form:      movieForm{Year: 1995, Rating: 8.3},
			wantField: "Title",
			wantTag:   "required",
		},
		{
			name:      "title too long",
			form:      movieForm{Title: strings.Repeat("x", 151), Year: 1995},
			wantField: "Title",
			wantTag:   "max",
		},
		{
			name:      "year before cinema",
			form:      movieForm{Title: "Heat", Year: 1700},
			wantField: "Year",
			wantTag:   "min",
		},
		{
			name:      "rating out of range",
			form:      movieForm{Title: "Heat", Year: 1995, Rating: 11},
			wantField: "Rating",
			wantTag:   "max",
		},
		{
			name:      "bad poster url",
			form:      movieForm{Title: "Heat", Year: 1995, ImgURL: "not a url"},
			wantField: "ImgURL",
			wantTag:   "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.form)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			found := false
			for _, fe := range err.Errors() {
				if fe.Field() == tt.wantField && fe.Tag() == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s/%s, got %v", tt.wantField, tt.wantTag, err)
			}
		})
	}
}

func TestToAPIErrorSingle(t *testing.T) {
	form := movieForm{Year: 1995}
	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "Title is required" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Title is required")
	}
	if apiErr.Details["field"] != "Title" {
		t.Errorf("Details[field] = %v, want Title", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultiple(t *testing.T) {
	form := movieForm{Rating: 11}
	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) < 2 {
		t.Fatalf("expected multiple errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("expected fields detail for multi-error response")
	}
	if !strings.Contains(apiErr.Message, ";") {
		t.Errorf("expected combined message, got %q", apiErr.Message)
	}
}

func TestFieldMessages(t *testing.T) {
	form := movieForm{Rating: 11}
	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected validation error")
	}

	msgs := err.FieldMessages()
	if msgs["Title"] != "Title is required" {
		t.Errorf("FieldMessages()[Title] = %q, want %q", msgs["Title"], "Title is required")
	}
	if _, ok := msgs["Rating"]; !ok {
		t.Error("expected Rating entry in field messages")
	}
}

func TestTranslateMessages(t *testing.T) {
	type req struct {
		Mode  string `validate:"oneof=json console"`
		Count int    `validate:"min=1"`
		Name  string `validate:"min=2"`
	}

	err := ValidateStruct(&req{Mode: "xml", Count: 0, Name: "a"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msgs := err.FieldMessages()
	if msgs["Mode"] != "Mode must be one of: json console" {
		t.Errorf("oneof message = %q", msgs["Mode"])
	}
	if msgs["Count"] != "Count must be at least 1" {
		t.Errorf("numeric min message = %q", msgs["Count"])
	}
	if msgs["Name"] != "Name must be at least 2 characters" {
		t.Errorf("string min message = %q", msgs["Name"])
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("expected the same validator instance on repeated calls")
	}
}
