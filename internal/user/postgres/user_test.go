package postgres_test

import (
	"testing"

	"github.com/aditirto/identity-service/internal/core/rbac"
	"github.com/aditirto/identity-service/internal/user"
	userPostgres "github.com/aditirto/identity-service/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	userDatamodel "github.com/aditirto/identity-service/internal/core/datamodel/user"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

func strPtr(s string) *string { return &s }

var _ = Describe("User PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *userPostgres.UserRepository
		seed *userDatamodel.User
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		seed = user.ToDataModel(&user.User{
			FirstName:    strPtr("Ada"),
			LastName:     strPtr("Lovelace"),
			Email:        "ada@example.com",
			Role:         rbac.RoleUser,
			PasswordHash: strPtr("$2a$10$hash"),
			IsActive:     true,
		})
		Expect(db.Create(seed).Error).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)
	})

	Describe("GetByID", func() {
		It("should return the stored user", func() {
			u, err := repo.GetByID(seed.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u).NotTo(BeNil())
			Expect(u.Email).To(Equal("ada@example.com"))
			Expect(u.FirstName).To(HaveValue(Equal("Ada")))
		})

		It("should return nil without error for an unknown id", func() {
			u, err := repo.GetByID(99999)
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(BeNil())
		})
	})

	Describe("UpdateProfile", func() {
		It("should update only the provided fields", func() {
			u, err := repo.UpdateProfile(seed.ID, strPtr("Augusta"), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.FirstName).To(HaveValue(Equal("Augusta")))
			Expect(u.LastName).To(HaveValue(Equal("Lovelace")))
		})

		It("should allow clearing a name to empty", func() {
			u, err := repo.UpdateProfile(seed.ID, nil, strPtr(""))
			Expect(err).NotTo(HaveOccurred())
			Expect(u.LastName).To(HaveValue(Equal("")))
			Expect(u.FirstName).To(HaveValue(Equal("Ada")))
		})

		It("should be a no-op when both fields are nil", func() {
			u, err := repo.UpdateProfile(seed.ID, nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.FirstName).To(HaveValue(Equal("Ada")))
			Expect(u.LastName).To(HaveValue(Equal("Lovelace")))
		})
	})

	Describe("Deactivate", func() {
		It("should flip is_active and keep the row", func() {
			Expect(repo.Deactivate(seed.ID)).To(Succeed())

			u, err := repo.GetByID(seed.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u).NotTo(BeNil())
			Expect(u.IsActive).To(BeFalse())
			Expect(u.Email).To(Equal("ada@example.com"))
		})
	})
})
