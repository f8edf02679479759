package color_test

import (
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gitship/gitship/internal/color"
)

func TestColor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Color Suite")
}

var _ = Describe("Profile", func() {
	BeforeEach(func() {
		for _, key := range []string{"NO_COLOR", "CLICOLOR", "TERM"} {
			key := key
			old, had := os.LookupEnv(key)
			Expect(os.Unsetenv(key)).To(Succeed())
			DeferCleanup(func() {
				if had {
					_ = os.Setenv(key, old)
				}
			})
		}
	})

	It("should enable color by default", func() {
		Expect(color.Profile(false)).To(BeTrue())
	})

	It("should disable color when the flag is set", func() {
		Expect(color.Profile(true)).To(BeFalse())
	})

	It("should honor NO_COLOR", func() {
		Expect(os.Setenv("NO_COLOR", "1")).To(Succeed())
		Expect(color.Profile(false)).To(BeFalse())
	})

	It("should honor CLICOLOR=0", func() {
		Expect(os.Setenv("CLICOLOR", "0")).To(Succeed())
		Expect(color.Profile(false)).To(BeFalse())
	})

	It("should honor TERM=dumb", func() {
		Expect(os.Setenv("TERM", "dumb")).To(Succeed())
		Expect(color.Profile(false)).To(BeFalse())
	})
})

var _ = Describe("NewTheme", func() {
	It("should produce plain styles when color is off", func() {
		theme := color.NewTheme(false)
		Expect(theme.Err.Render("fail")).To(Equal("fail"))
	})
})
