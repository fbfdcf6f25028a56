package db

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// AuthProvider defines the identity-provider operations the services need. The returned
// UID is the stable identifier used as the Firestore document key for the user profile.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	// GetUserByEmail returns the UID for an email, or ErrNotFound when no account exists.
	GetUserByEmail(ctx context.Context, email string) (string, error)
}

// firebaseAuthProvider implements AuthProvider over the Firebase Auth client.
type firebaseAuthProvider struct {
	client *auth.Client
}

// NewFirebaseAuthProvider creates an AuthProvider backed by Firebase Auth.
func NewFirebaseAuthProvider(client *auth.Client) AuthProvider {
	return &firebaseAuthProvider{client: client}
}

func (p *firebaseAuthProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create auth account for '%s': %w", email, err)
	}
	return record.UID, nil
}

func (p *firebaseAuthProvider) GetUserByEmail(ctx context.Context, email string) (string, error) {
	record, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", fmt.Errorf("auth account for '%s' not found: %w", email, ErrNotFound)
		}
		return "", fmt.Errorf("failed to look up auth account for '%s': %w", email, err)
	}
	return record.UID, nil
}
