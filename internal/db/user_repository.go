package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"commdesk-backend-go/internal/models"
)

const (
	usersCollection    = "users"
	paymentsCollection = "payments"
)

// ErrNotFound is returned when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// ErrAlreadyExists is returned when a document with the same ID already exists.
var ErrAlreadyExists = errors.New("document already exists")

// firestoreUserRepository implements UserRepository using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new Firestore-backed UserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document. The user.ID (Firebase Auth UID) is the document ID.
// CreatedAt/UpdatedAt are populated server-side via the serverTimestamp tags.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with ID '%s': %w", user.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user with ID '%s': %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a user document by its ID (Firebase Auth UID).
func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.ID = docSnap.Ref.ID
	return &user, nil
}

// FindByEmail returns all users whose email field matches exactly.
func (r *firestoreUserRepository) FindByEmail(ctx context.Context, email string) ([]*models.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for FindByEmail operation")
	}
	iter := r.client.Collection(usersCollection).Where("email", "==", email).Documents(ctx)
	return collectUsers(iter)
}

// ListAll returns every user document. Callers use this as a fallback scan only;
// the collection is small enough in practice that no pagination is applied.
func (r *firestoreUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	return collectUsers(iter)
}

// ListByTenant returns users whose tenantIds array contains the given tenant ID.
func (r *firestoreUserRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.User, error) {
	if tenantID == "" {
		return nil, errors.New("tenantID cannot be empty for ListByTenant operation")
	}
	iter := r.client.Collection(usersCollection).
		Where("tenantIds", "array-contains", tenantID).
		Documents(ctx)
	return collectUsers(iter)
}

// SetSubscription merge-writes the subscription record under
// users/{userID}/payments/subscriptions. MergeAll preserves unrelated fields already
// present in the record.
func (r *firestoreUserRepository) SetSubscription(ctx context.Context, userID string, fields map[string]interface{}) error {
	if userID == "" {
		return errors.New("userID cannot be empty for SetSubscription operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).
		Collection(paymentsCollection).Doc(models.SubscriptionDocID).
		Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to set subscription for user '%s': %w", userID, err)
	}
	return nil
}

func collectUsers(iter *firestore.DocumentIterator) ([]*models.User, error) {
	defer iter.Stop()
	var users []*models.User
	for {
		docSnap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
		var user models.User
		if err := docSnap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user document '%s': %w", docSnap.Ref.ID, err)
		}
		user.ID = docSnap.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}
