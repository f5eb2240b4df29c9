package framework

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterNavigateRecordsFirstRequest(t *testing.T) {
	ctx, navigation := WithNavigation(context.Background())
	router := NewRouter()

	ok, err := router.Navigate(ctx, []string{"404"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = router.Navigate(ctx, []string{"recurso"})
	require.NoError(t, err)
	assert.False(t, ok, "second navigation must not replace the first")

	target, pending := navigation.Target()
	require.True(t, pending)
	assert.Equal(t, "/404", target)
	assert.Equal(t, []string{"404"}, navigation.Commands())
}

func TestRouterNavigateWithoutScope(t *testing.T) {
	ok, err := NewRouter().Navigate(context.Background(), []string{"404"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRouterNavigateRejectsEmptyCommands(t *testing.T) {
	ctx, navigation := WithNavigation(context.Background())

	_, err := NewRouter().Navigate(ctx, nil)
	require.ErrorIs(t, err, ErrEmptyNavigation)

	_, pending := navigation.Target()
	assert.False(t, pending)
}

func TestCommandsPath(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		expected string
	}{
		{name: "single", commands: []string{"404"}, expected: "/404"},
		{name: "multiple", commands: []string{"recurso", "12", "view"}, expected: "/recurso/12/view"},
		{name: "embedded slash", commands: []string{"/recurso/12/", "edit"}, expected: "/recurso/12/edit"},
		{name: "escaped", commands: []string{"a b"}, expected: "/a%20b"},
		{name: "blank", commands: []string{" "}, expected: "/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CommandsPath(tc.commands))
		})
	}
}

func TestRouteParamsGet(t *testing.T) {
	var empty RouteParams
	_, ok := empty.Get("id")
	assert.False(t, ok)

	value, ok := RouteParams{"id": "123"}.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "123", value)
}
