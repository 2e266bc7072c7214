// Package ui renders command lifecycle events as concise console lines for
// operators who selected the console log format.
package ui
