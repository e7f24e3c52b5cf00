package users

import (
	"path/filepath"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateHashesPassword(t *testing.T) {
	svc := NewService(newTestDB(t))

	user, err := svc.Create(CreateUserInput{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)
	assert.Equal(t, "user", user.Role)

	assert.True(t, svc.CheckPassword(user, "secret123"))
	assert.False(t, svc.CheckPassword(user, "wrong"))
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Create(CreateUserInput{Name: "Maria", Email: "maria@example.com", Password: "secret123"})
	assert.NoError(t, err)

	_, err = svc.Create(CreateUserInput{Name: "Other", Email: "maria@example.com", Password: "secret456"})
	assert.Error(t, err)
	assert.True(t, apperr.IsInvalidOperation(err))
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc := NewService(newTestDB(t))

	user, err := svc.Create(CreateUserInput{Name: "Maria", Email: "maria@example.com", Password: "secret123"})
	assert.NoError(t, err)

	newPassword := "changed456"
	updated, err := svc.Update(user.ID, UpdateUserInput{Password: &newPassword})
	assert.NoError(t, err)

	assert.True(t, svc.CheckPassword(updated, "changed456"))
	assert.False(t, svc.CheckPassword(updated, "secret123"))
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.GetByID("missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	svc := NewService(newTestDB(t))

	user, err := svc.Create(CreateUserInput{Name: "Maria", Email: "maria@example.com", Password: "secret123"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(user.ID))

	_, err = svc.GetByID(user.ID)
	assert.True(t, apperr.IsNotFound(err))
}
