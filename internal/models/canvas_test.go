// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestFolderRemoteDir(t *testing.T) {
	tests := []struct {
		fullName string
		want     string
		wantOK   bool
	}{
		{"course files", "", true},
		{"course files/Lectures", "Lectures", true},
		{"course files/Lectures/Java Intro", "Lectures/Java Intro", true},
		{"course filesX/Lectures", "", false},
		{"unfiled", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.fullName, func(t *testing.T) {
			f := Folder{FullName: tt.fullName}
			got, ok := f.RemoteDir()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("RemoteDir() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProfileAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    bool
	}{
		{"id and name", Profile{ID: 7, Name: "Alice"}, true},
		{"missing name", Profile{ID: 7}, false},
		{"missing id", Profile{Name: "Alice"}, false},
		{"zero value", Profile{}, false},
	}
	for _, tt := range tests {
		if got := tt.profile.Authenticated(); got != tt.want {
			t.Errorf("%s: Authenticated() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFileDecodesHyphenatedContentType(t *testing.T) {
	var f File
	body := `{"id":5,"filename":"notes.pdf","display_name":"Notes","url":"https://x/dl","size":2048,"content-type":"application/pdf"}`
	if err := json.Unmarshal([]byte(body), &f); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if f.ContentType != "application/pdf" {
		t.Errorf("ContentType = %q, want application/pdf", f.ContentType)
	}
	if f.Size != 2048 {
		t.Errorf("Size = %d, want 2048", f.Size)
	}
}
