package permission

import (
	"net/url"
	"testing"

	apperrors "github.com/aditirto/identity-service/internal"
	"github.com/aditirto/identity-service/internal/core/rbac"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestPermission(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Permission Module Suite")
}

type mockRepository struct {
	rows       []*Permission
	seedCalls  [][]*Permission
	seedResult int64
}

func (m *mockRepository) matches(filter Filter, p *Permission) bool {
	if filter.Role != nil && p.Role != *filter.Role {
		return false
	}
	if filter.Action != nil && p.Action != *filter.Action {
		return false
	}
	if filter.Resource != nil && p.Resource != *filter.Resource {
		return false
	}
	return true
}

func (m *mockRepository) GetAll(filter Filter) ([]*Permission, error) {
	var out []*Permission
	for _, p := range m.rows {
		if m.matches(filter, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) UpdateStatus(filter Filter, isActive bool) ([]*Permission, error) {
	var out []*Permission
	for _, p := range m.rows {
		if m.matches(filter, p) {
			p.IsActive = isActive
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) SeedMatrix(rows []*Permission) (int64, error) {
	m.seedCalls = append(m.seedCalls, rows)
	return m.seedResult, nil
}

var _ = ginkgo.Describe("PermissionService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = &mockRepository{
			rows: []*Permission{
				{Role: rbac.RoleAdmin, Action: rbac.ActionRead, Resource: rbac.ResourceUser, IsActive: true},
				{Role: rbac.RoleUser, Action: rbac.ActionRead, Resource: rbac.ResourceUser, IsActive: true},
			},
		}
		service = NewService(mockRepo, nil)
	})

	ginkgo.Describe("UpdateStatus", func() {
		ginkgo.It("should toggle matching rows", func() {
			role := rbac.RoleUser

			rows, err := service.UpdateStatus(Filter{Role: &role}, false)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rows).To(gomega.HaveLen(1))
			gomega.Expect(rows[0].IsActive).To(gomega.BeFalse())
		})

		ginkgo.It("should report not found when nothing matches", func() {
			role := rbac.RoleSupport

			_, err := service.UpdateStatus(Filter{Role: &role}, false)

			gomega.Expect(err).To(gomega.Equal(apperrors.ErrPermissionNotFound))
		})
	})

	ginkgo.Describe("Seed", func() {
		ginkgo.It("should install one row per role, action and resource", func() {
			err := service.Seed()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.seedCalls).To(gomega.HaveLen(1))
			gomega.Expect(mockRepo.seedCalls[0]).To(gomega.HaveLen(16))
			for _, row := range mockRepo.seedCalls[0] {
				gomega.Expect(row.IsActive).To(gomega.BeTrue())
			}
		})
	})
})

var _ = ginkgo.Describe("ParseFilter", func() {
	ginkgo.It("should leave absent parameters nil", func() {
		f, err := ParseFilter(url.Values{})

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(f.Role).To(gomega.BeNil())
		gomega.Expect(f.Action).To(gomega.BeNil())
		gomega.Expect(f.Resource).To(gomega.BeNil())
	})

	ginkgo.It("should parse valid enum values", func() {
		f, err := ParseFilter(url.Values{
			"role":     {"support"},
			"action":   {"read"},
			"resource": {"permission"},
		})

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(*f.Role).To(gomega.Equal(rbac.RoleSupport))
		gomega.Expect(*f.Action).To(gomega.Equal(rbac.ActionRead))
		gomega.Expect(*f.Resource).To(gomega.Equal(rbac.ResourcePermission))
	})

	ginkgo.It("should reject an unknown role", func() {
		_, err := ParseFilter(url.Values{"role": {"superuser"}})

		appErr, ok := apperrors.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Code).To(gomega.Equal(apperrors.ErrCodeInvalidRole))
	})

	ginkgo.It("should reject an unknown action", func() {
		_, err := ParseFilter(url.Values{"action": {"approve"}})

		appErr, ok := apperrors.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Code).To(gomega.Equal(apperrors.ErrCodeInvalidAction))
	})
})
