package router

import (
	"testing"
)

func TestAppRouterMatch(t *testing.T) {
	router, err := NewAppRouter([]string{
		"/",
		"recurso",
		"recurso/new",
		"recurso/[id]/view",
		"recurso/[id]/edit",
		"recurso/settings/view",
		"404",
	})
	if err != nil {
		t.Fatalf("new app router: %v", err)
	}

	tests := []struct {
		name        string
		path        string
		expectedID  string
		expectedKey string
		expectedVal string
	}{
		{name: "root", path: "/", expectedID: ""},
		{name: "list", path: "/recurso", expectedID: "recurso"},
		{name: "list trailing slash", path: "/recurso/", expectedID: "recurso"},
		{name: "new", path: "/recurso/new", expectedID: "recurso/new"},
		{
			name:        "view wildcard",
			path:        "/recurso/123/view",
			expectedID:  "recurso/[id]/view",
			expectedKey: "id",
			expectedVal: "123",
		},
		{
			name:        "edit wildcard",
			path:        "/recurso/7/edit",
			expectedID:  "recurso/[id]/edit",
			expectedKey: "id",
			expectedVal: "7",
		},
		{name: "static precedence", path: "/recurso/settings/view", expectedID: "recurso/settings/view"},
		{name: "not found page", path: "/404", expectedID: "404"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			match, ok := router.Match(tc.path)
			if !ok {
				t.Fatalf("expected a match for %q", tc.path)
			}
			if match.ID != tc.expectedID {
				t.Fatalf("expected route id %q, got %q", tc.expectedID, match.ID)
			}
			if tc.expectedKey == "" {
				if len(match.Params) != 0 {
					t.Fatalf("expected no params, got %v", match.Params)
				}
				return
			}

			value, ok := match.Param(tc.expectedKey)
			if !ok {
				t.Fatalf("expected param %q", tc.expectedKey)
			}
			if value != tc.expectedVal {
				t.Fatalf("expected param %q=%q, got %q", tc.expectedKey, tc.expectedVal, value)
			}
		})
	}
}

func TestAppRouterNoMatch(t *testing.T) {
	router, err := NewAppRouter([]string{"recurso/[id]/view"})
	if err != nil {
		t.Fatalf("new app router: %v", err)
	}

	for _, path := range []string{"/recurso", "/recurso/1", "/recurso/1/view/extra", "/other/1/view"} {
		if _, ok := router.Match(path); ok {
			t.Fatalf("did not expect %q to match", path)
		}
	}
}

func TestAppRouterConflict(t *testing.T) {
	_, err := NewAppRouter([]string{"recurso/[id]/view", "recurso/[slug]/view"})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
}

func TestAppRouterRejectsInvalidSegments(t *testing.T) {
	for _, pattern := range []string{"recurso/[1d]", "recurso/[id", "recurso/a]b", "recurso/x[y]z"} {
		if _, err := NewAppRouter([]string{pattern}); err == nil {
			t.Fatalf("expected %q to be rejected", pattern)
		}
	}
}

func TestNormalizePattern(t *testing.T) {
	id, err := NormalizePattern("/recurso/[ id ]/view/")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if id != "recurso/[id]/view" {
		t.Fatalf("expected normalized id, got %q", id)
	}
}
