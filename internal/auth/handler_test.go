package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	apperrors "github.com/aditirto/identity-service/internal"
	"github.com/aditirto/identity-service/internal/core/rbac"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// Stub service with programmable results
type stubService struct {
	loginResp TokenResponse
	loginErr  error
	authUser  *User
	authErr   error

	gotAction   rbac.Action
	gotResource rbac.Resource
}

func (s *stubService) Login(dto LoginDTO) (TokenResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubService) Register(dto RegisterDTO) (*User, error) {
	return nil, nil
}

func (s *stubService) SendVerificationCode(ctx context.Context, dto SendCodeDTO) error {
	return nil
}

func (s *stubService) VerifyEmail(ctx context.Context, dto VerifyDTO) error {
	return nil
}

func (s *stubService) Authorize(ctx context.Context, token string, action rbac.Action, resource rbac.Resource) (*User, error) {
	s.gotAction = action
	s.gotResource = resource
	return s.authUser, s.authErr
}

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		handler *Handler
		stub    *stubService
	)

	ginkgo.BeforeEach(func() {
		stub = &stubService{}
		handler = NewHandler(stub)
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return the token payload on success", func() {
			stub.loginResp = TokenResponse{AccessToken: "tok", TokenType: "bearer"}
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.com","password":"pw"}`))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body TokenResponse
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.AccessToken).To(gomega.Equal("tok"))
			gomega.Expect(body.TokenType).To(gomega.Equal("bearer"))
		})

		ginkgo.It("should render the credentials failure as a detail body", func() {
			stub.loginErr = apperrors.ErrInvalidCredentials
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.com","password":"pw"}`))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			var body map[string]string
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("detail", "Could not validate credentials or user is inactive"))
		})

		ginkgo.It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{not json`))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("RequireAccess", func() {
		var next http.Handler

		ginkgo.BeforeEach(func() {
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := UserFromContext(r.Context())
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(u.Email).To(gomega.Equal("a@b.com"))
				w.WriteHeader(http.StatusOK)
			})
		})

		ginkgo.It("should pass the declared pair to the authorization check", func() {
			stub.authUser = &User{Email: "a@b.com"}
			mw := handler.RequireAccess(rbac.ActionUpdate, rbac.ResourcePermission)
			req := httptest.NewRequest(http.MethodPatch, "/permission/", nil)
			req.Header.Set("Authorization", "Bearer tok")
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(stub.gotAction).To(gomega.Equal(rbac.ActionUpdate))
			gomega.Expect(stub.gotResource).To(gomega.Equal(rbac.ResourcePermission))
		})

		ginkgo.It("should reject a request without a bearer token", func() {
			mw := handler.RequireAccess(rbac.ActionRead, rbac.ResourceUser)
			req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should map a denied check to 403 with the fixed detail", func() {
			stub.authErr = apperrors.ErrPermissionDenied
			mw := handler.RequireAccess(rbac.ActionUpdate, rbac.ResourcePermission)
			req := httptest.NewRequest(http.MethodPatch, "/permission/", nil)
			req.Header.Set("Authorization", "Bearer tok")
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			var body map[string]string
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("detail", "Not enough permissions"))
		})
	})
})
