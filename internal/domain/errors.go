package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound           = errors.New("ressource introuvable")
	ErrUserNotFound       = errors.New("utilisateur introuvable")
	ErrEmailAlreadyExists = errors.New("l'email est déjà enregistré")
	ErrInvalidInput       = errors.New("entrée invalide")
	ErrDuplicate          = errors.New("ressource dupliquée")
	ErrUnauthorized       = errors.New("non autorisé")
	ErrForbidden          = errors.New("accès refusé")
	ErrConflict           = errors.New("conflit avec l'état actuel")
	ErrCallbackRequired   = errors.New("date de rappel obligatoire pour ce statut")
	ErrPastDate           = errors.New("la date doit être dans le futur")
)
