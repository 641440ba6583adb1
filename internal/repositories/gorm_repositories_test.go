package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"kontak/internal/models"
	"kontak/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory SQLite database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Contact{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestGORMUserRepository_CreateAndLookups(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}
	assert.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)

	byUsername, err := repo.GetByUsername("testuser")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.GetByEmail("test@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", byID.Username)

	_, err = repo.GetByUsername("ghost")
	assert.ErrorContains(t, err, "not found")
}

func TestGORMUserRepository_ConfirmEmailAndAvatar(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	user := &models.User{Username: "testuser", Email: "test@example.com", Password: "hashed"}
	assert.NoError(t, repo.Create(user))
	assert.False(t, user.Confirmed)

	assert.NoError(t, repo.ConfirmEmail("test@example.com"))
	confirmed, err := repo.GetByEmail("test@example.com")
	assert.NoError(t, err)
	assert.True(t, confirmed.Confirmed)

	assert.ErrorContains(t, repo.ConfirmEmail("ghost@example.com"), "not found")

	assert.NoError(t, repo.UpdateAvatar(user.ID, "https://img.example.com/a.png"))
	updated, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a.png", updated.Avatar)

	assert.ErrorContains(t, repo.UpdateAvatar("missing-id", "x"), "not found")
}

func TestGORMContactRepository_CRUDAndFilter(t *testing.T) {
	repo := repositories.NewGORMContactRepository(newTestDB(t))

	seed := []models.Contact{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "1", UserID: "user-1"},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", PhoneNumber: "2", UserID: "user-1"},
		{FirstName: "Ada", LastName: "Byron", Email: "byron@example.com", PhoneNumber: "3", UserID: "user-2"},
	}
	for i := range seed {
		assert.NoError(t, repo.Create(&seed[i]))
	}

	// Listing is scoped to the owner.
	contacts, err := repo.GetAll("user-1", repositories.ContactFilter{})
	assert.NoError(t, err)
	assert.Len(t, contacts, 2)

	contacts, err = repo.GetAll("user-1", repositories.ContactFilter{FirstName: "Ada"})
	assert.NoError(t, err)
	assert.Len(t, contacts, 1)
	assert.Equal(t, "ada@example.com", contacts[0].Email)

	// Skip and limit page through results.
	contacts, err = repo.GetAll("user-1", repositories.ContactFilter{Skip: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, contacts, 1)

	// Lookups of another user's contact miss.
	_, err = repo.GetByID(seed[2].ID, "user-1")
	assert.ErrorContains(t, err, "not found")

	// Update and delete are owner-scoped as well.
	seed[0].PhoneNumber = "9999"
	assert.NoError(t, repo.Update(&seed[0]))
	updated, err := repo.GetByID(seed[0].ID, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "9999", updated.PhoneNumber)

	stolen := seed[0]
	stolen.UserID = "user-2"
	assert.ErrorContains(t, repo.Update(&stolen), "not found")

	assert.ErrorContains(t, repo.Delete(seed[0].ID, "user-2"), "not found")
	assert.NoError(t, repo.Delete(seed[0].ID, "user-1"))
	_, err = repo.GetByID(seed[0].ID, "user-1")
	assert.ErrorContains(t, err, "not found")
}

func TestGORMContactRepository_UpcomingBirthdays(t *testing.T) {
	repo := repositories.NewGORMContactRepository(newTestDB(t))

	today := time.Now()
	soon := today.AddDate(0, 0, 2)
	far := today.AddDate(0, 0, 60)

	contacts := []models.Contact{
		{FirstName: "Soon", LastName: "B", Email: "soon@example.com", PhoneNumber: "1", UserID: "user-1",
			Birthday: time.Date(1990, soon.Month(), soon.Day(), 0, 0, 0, 0, time.UTC)},
		{FirstName: "Far", LastName: "B", Email: "far@example.com", PhoneNumber: "2", UserID: "user-1",
			Birthday: time.Date(1990, far.Month(), far.Day(), 0, 0, 0, 0, time.UTC)},
		{FirstName: "Other", LastName: "User", Email: "other@example.com", PhoneNumber: "3", UserID: "user-2",
			Birthday: time.Date(1990, soon.Month(), soon.Day(), 0, 0, 0, 0, time.UTC)},
	}
	for i := range contacts {
		assert.NoError(t, repo.Create(&contacts[i]))
	}

	upcoming, err := repo.GetUpcomingBirthdays("user-1", 7)
	assert.NoError(t, err)
	assert.Len(t, upcoming, 1)
	assert.Equal(t, "soon@example.com", upcoming[0].Email)
}
