package verification_test

import (
	"context"
	"testing"
	"time"

	"github.com/aditirto/identity-service/internal/verification"
	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
)

func TestVerification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Verification Suite")
}

var _ = Describe("RedisStore", func() {
	var (
		mr    *miniredis.Miniredis
		store *verification.RedisStore
		ctx   = context.Background()
	)

	BeforeEach(func() {
		var err error
		mr, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())

		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		store = verification.NewRedisStore(client)
	})

	AfterEach(func() {
		mr.Close()
	})

	It("should round-trip a stored code", func() {
		Expect(store.Set(ctx, "ada@example.com", "123456", time.Minute)).To(Succeed())

		code, err := store.Get(ctx, "ada@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal("123456"))
	})

	It("should report a missing code", func() {
		_, err := store.Get(ctx, "nobody@example.com")
		Expect(err).To(MatchError(verification.ErrCodeNotFound))
	})

	It("should expire codes after the TTL", func() {
		Expect(store.Set(ctx, "ada@example.com", "123456", time.Minute)).To(Succeed())

		mr.FastForward(2 * time.Minute)

		_, err := store.Get(ctx, "ada@example.com")
		Expect(err).To(MatchError(verification.ErrCodeNotFound))
	})

	It("should overwrite an earlier code for the same email", func() {
		Expect(store.Set(ctx, "ada@example.com", "111111", time.Minute)).To(Succeed())
		Expect(store.Set(ctx, "ada@example.com", "222222", time.Minute)).To(Succeed())

		code, err := store.Get(ctx, "ada@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal("222222"))
	})

	It("should keep codes for different emails separate", func() {
		Expect(store.Set(ctx, "ada@example.com", "111111", time.Minute)).To(Succeed())
		Expect(store.Set(ctx, "grace@example.com", "222222", time.Minute)).To(Succeed())

		code, err := store.Get(ctx, "ada@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal("111111"))
	})
})
