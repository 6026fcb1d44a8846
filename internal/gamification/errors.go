package gamification

import "errors"

// Taxonomie d'erreurs du moteur. Les appelants testent avec errors.Is :
// l'attribution de points est un effet secondaire, un ErrStorage ne doit
// jamais faire échouer la complétion de séance elle-même.
var (
	ErrNotFound     = errors.New("gamification: record not found")
	ErrStorage      = errors.New("gamification: storage failure")
	ErrInvalidInput = errors.New("gamification: invalid input")
)
