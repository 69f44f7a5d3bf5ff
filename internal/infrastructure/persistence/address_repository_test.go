package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockAddressRepository creates a GormAddressRepository with a mocked SQL connection
func newMockAddressRepository(t *testing.T) (*GormAddressRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAddressRepository(gormDB), mock, mockDB
}

func TestGormAddressRepository_FindByIDForUser(t *testing.T) {
	t.Run("finds address owned by user", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		addressID := uuid.New()
		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "recipient_name", "phone", "address_line1", "city", "postal_code", "country", "is_default", "address_type"}).
			AddRow(addressID, userID, "Priya Sharma", "+91-9876543210", "14 MG Road", "Bengaluru", "560001", "India", false, "home")

		mock.ExpectQuery(`SELECT \* FROM "delivery_addresses" WHERE user_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(userID, addressID, 1).
			WillReturnRows(rows)

		address, err := repo.FindByIDForUser(context.Background(), userID, addressID)

		assert.NoError(t, err)
		assert.NotNil(t, address)
		assert.Equal(t, addressID, address.ID)
		assert.Equal(t, "Priya Sharma", address.RecipientName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for another user's address", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		addressID := uuid.New()
		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "delivery_addresses" WHERE user_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(userID, addressID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		address, err := repo.FindByIDForUser(context.Background(), userID, addressID)

		assert.Error(t, err)
		assert.Nil(t, address)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_FindAllForUser(t *testing.T) {
	t.Run("orders default address first", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "recipient_name", "is_default"}).
			AddRow(uuid.New(), userID, "Priya Sharma", true).
			AddRow(uuid.New(), userID, "Priya Sharma", false)

		mock.ExpectQuery(`SELECT \* FROM "delivery_addresses" WHERE user_id = \$1 ORDER BY is_default DESC, created_at ASC`).
			WithArgs(userID).
			WillReturnRows(rows)

		addresses, err := repo.FindAllForUser(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, addresses, 2)
		assert.True(t, addresses[0].IsDefault)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_FindDefaultForUser(t *testing.T) {
	t.Run("returns not found when user has no default", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "delivery_addresses" WHERE user_id = \$1 AND is_default = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(userID, true, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		address, err := repo.FindDefaultForUser(context.Background(), userID)

		assert.Error(t, err)
		assert.Nil(t, address)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_ClearDefault(t *testing.T) {
	t.Run("clears the flag on all defaults of the user", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectExec(`UPDATE "delivery_addresses" SET "is_default"=\$1,"updated_at"=\$2 WHERE user_id = \$3 AND is_default = \$4`).
			WithArgs(false, sqlmock.AnyArg(), userID, true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ClearDefault(context.Background(), userID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("succeeds when no rows match", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectExec(`UPDATE "delivery_addresses" SET "is_default"=\$1,"updated_at"=\$2 WHERE user_id = \$3 AND is_default = \$4`).
			WithArgs(false, sqlmock.AnyArg(), userID, true).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ClearDefault(context.Background(), userID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_Delete(t *testing.T) {
	t.Run("deletes an existing address", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		addressID := uuid.New()

		mock.ExpectExec(`DELETE FROM "delivery_addresses" WHERE id = \$1`).
			WithArgs(addressID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), addressID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		addressID := uuid.New()

		mock.ExpectExec(`DELETE FROM "delivery_addresses" WHERE id = \$1`).
			WithArgs(addressID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), addressID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
