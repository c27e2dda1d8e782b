// Package windowwin lists and focuses top-level windows through user32.
package windowwin
