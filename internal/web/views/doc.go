// Package views holds the page components. They are plain templ.Components
// so the route handlers can compose layouts around them.
package views

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.1001 generate -path .
