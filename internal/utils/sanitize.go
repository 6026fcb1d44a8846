package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize nettoie le HTML des contenus utilisateur (feedbacks) contre le XSS
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
