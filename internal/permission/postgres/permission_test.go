package postgres_test

import (
	"testing"

	"github.com/aditirto/identity-service/internal/core/rbac"
	"github.com/aditirto/identity-service/internal/permission"
	permissionPostgres "github.com/aditirto/identity-service/internal/permission/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	permissionDatamodel "github.com/aditirto/identity-service/internal/core/datamodel/permission"
)

func TestPermissionPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Postgres Suite")
}

func defaultRows() []*permission.Permission {
	var rows []*permission.Permission
	for _, entry := range rbac.DefaultMatrix {
		for _, action := range entry.Actions {
			rows = append(rows, &permission.Permission{
				Role:     entry.Role,
				Action:   action,
				Resource: entry.Resource,
				IsActive: true,
			})
		}
	}
	return rows
}

var _ = Describe("Permission PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *permissionPostgres.PermissionRepository
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&permissionDatamodel.Permission{})
		Expect(err).NotTo(HaveOccurred())

		repo = permissionPostgres.NewPermissionRepository(db)
	})

	Describe("SeedMatrix", func() {
		It("should insert the full default matrix once", func() {
			inserted, err := repo.SeedMatrix(defaultRows())
			Expect(err).NotTo(HaveOccurred())
			Expect(inserted).To(Equal(int64(16)))
		})

		It("should insert nothing on a second run", func() {
			_, err := repo.SeedMatrix(defaultRows())
			Expect(err).NotTo(HaveOccurred())

			inserted, err := repo.SeedMatrix(defaultRows())
			Expect(err).NotTo(HaveOccurred())
			Expect(inserted).To(BeZero())
		})

		It("should not reactivate rows an administrator disabled", func() {
			_, err := repo.SeedMatrix(defaultRows())
			Expect(err).NotTo(HaveOccurred())

			role := rbac.RoleUser
			resource := rbac.ResourceUser
			_, err = repo.UpdateStatus(permission.Filter{Role: &role, Resource: &resource}, false)
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.SeedMatrix(defaultRows())
			Expect(err).NotTo(HaveOccurred())

			rows, err := repo.GetAll(permission.Filter{Role: &role, Resource: &resource})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).NotTo(BeEmpty())
			for _, row := range rows {
				Expect(row.IsActive).To(BeFalse())
			}
		})
	})

	Describe("GetAll", func() {
		BeforeEach(func() {
			_, err := repo.SeedMatrix(defaultRows())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return every row without a filter", func() {
			rows, err := repo.GetAll(permission.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(16))
		})

		It("should AND-combine filter fields", func() {
			role := rbac.RoleSupport
			resource := rbac.ResourcePermission

			rows, err := repo.GetAll(permission.Filter{Role: &role, Resource: &resource})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Action).To(Equal(rbac.ActionRead))
		})

		It("should return rows in a stable order", func() {
			rows, err := repo.GetAll(permission.Filter{})
			Expect(err).NotTo(HaveOccurred())

			again, err := repo.GetAll(permission.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(rows))
			Expect(rows[0].Role).To(Equal(rbac.RoleAdmin))
		})

		It("should return an empty slice when nothing matches", func() {
			role := rbac.RoleSupport
			action := rbac.ActionDelete
			resource := rbac.ResourcePermission

			rows, err := repo.GetAll(permission.Filter{Role: &role, Action: &action, Resource: &resource})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("UpdateStatus", func() {
		BeforeEach(func() {
			_, err := repo.SeedMatrix(defaultRows())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should toggle every matching row and return the new state", func() {
			role := rbac.RoleUser

			rows, err := repo.UpdateStatus(permission.Filter{Role: &role}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(4))
			for _, row := range rows {
				Expect(row.IsActive).To(BeFalse())
			}
		})

		It("should toggle the whole matrix when no filter field is set", func() {
			rows, err := repo.UpdateStatus(permission.Filter{}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(16))
			for _, row := range rows {
				Expect(row.IsActive).To(BeFalse())
			}

			all, err := repo.GetAll(permission.Filter{})
			Expect(err).NotTo(HaveOccurred())
			for _, row := range all {
				Expect(row.IsActive).To(BeFalse())
			}
		})

		It("should leave non-matching rows untouched", func() {
			role := rbac.RoleUser
			_, err := repo.UpdateStatus(permission.Filter{Role: &role}, false)
			Expect(err).NotTo(HaveOccurred())

			admin := rbac.RoleAdmin
			rows, err := repo.GetAll(permission.Filter{Role: &admin})
			Expect(err).NotTo(HaveOccurred())
			for _, row := range rows {
				Expect(row.IsActive).To(BeTrue())
			}
		})

		It("should re-enable previously disabled rows", func() {
			role := rbac.RoleUser
			_, err := repo.UpdateStatus(permission.Filter{Role: &role}, false)
			Expect(err).NotTo(HaveOccurred())

			rows, err := repo.UpdateStatus(permission.Filter{Role: &role}, true)
			Expect(err).NotTo(HaveOccurred())
			for _, row := range rows {
				Expect(row.IsActive).To(BeTrue())
			}
		})
	})
})
