// Package ui holds the terminal presentation components: the static
// table renderer, the interactive selection and confirmation prompts,
// and the live build progress line.
//
// Interactive components render on stderr so stdout stays clean for
// piping, and they are only offered when stderr is a terminal.
package ui
