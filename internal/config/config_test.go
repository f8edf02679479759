package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gitship/gitship/internal/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Loader", func() {
	var (
		homeDir string
		workDir string
		loader  *config.Loader
	)

	BeforeEach(func() {
		var err error

		homeDir, err = os.MkdirTemp("", "config-home-*")
		Expect(err).NotTo(HaveOccurred())

		workDir, err = os.MkdirTemp("", "config-work-*")
		Expect(err).NotTo(HaveOccurred())

		loader = config.NewLoaderWithDirs(homeDir, workDir)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(homeDir)).To(Succeed())
		Expect(os.RemoveAll(workDir)).To(Succeed())
	})

	Context("with no configuration files", func() {
		It("should return the defaults", func() {
			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Git.Remote).To(Equal("origin"))
			Expect(cfg.Git.Branch).To(Equal("main"))
			Expect(cfg.Git.CommitMessage).To(Equal("Initial commit"))
			Expect(cfg.Git.Timeout).To(Equal(10 * time.Second))
			Expect(cfg.Git.URLTemplate).To(Equal("https://github.com/{account}/{repo}.git"))
			Expect(cfg.Log.Debug).To(BeFalse())
		})
	})

	Context("with a global config file", func() {
		BeforeEach(func() {
			dir := filepath.Join(homeDir, config.GlobalConfigDir)
			Expect(os.MkdirAll(dir, 0o755)).To(Succeed())

			content := "[git]\nbranch = \"trunk\"\n"
			Expect(os.WriteFile(filepath.Join(dir, config.GlobalConfigFile), []byte(content), 0o644)).To(Succeed())
		})

		It("should override defaults", func() {
			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Git.Branch).To(Equal("trunk"))
			Expect(cfg.Git.Remote).To(Equal("origin"))
		})

		It("should be overridden by the project config", func() {
			content := "[git]\nbranch = \"develop\"\ntimeout = \"30s\"\n"
			Expect(os.WriteFile(filepath.Join(workDir, config.ProjectConfigFile), []byte(content), 0o644)).To(Succeed())

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Git.Branch).To(Equal("develop"))
			Expect(cfg.Git.Timeout).To(Equal(30 * time.Second))
		})
	})

	Context("with environment variables", func() {
		BeforeEach(func() {
			Expect(os.Setenv("GITSHIP_GIT_COMMIT_MESSAGE", "First push")).To(Succeed())
			DeferCleanup(func() { _ = os.Unsetenv("GITSHIP_GIT_COMMIT_MESSAGE") })
		})

		It("should override file values", func() {
			content := "[git]\ncommit_message = \"From file\"\n"
			Expect(os.WriteFile(filepath.Join(workDir, config.ProjectConfigFile), []byte(content), 0o644)).To(Succeed())

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Git.CommitMessage).To(Equal("First push"))
		})

		It("should be overridden by flags", func() {
			cfg, err := loader.Load(map[string]any{"git.commit_message": "From flag"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Git.CommitMessage).To(Equal("From flag"))
		})
	})

	Context("with invalid values", func() {
		It("should reject an empty branch", func() {
			_, err := loader.Load(map[string]any{"git.branch": ""})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("git.branch"))
		})

		It("should reject a remote containing whitespace", func() {
			_, err := loader.Load(map[string]any{"git.remote": "ori gin"})
			Expect(err).To(HaveOccurred())
		})

		It("should reject invalid TOML", func() {
			Expect(os.WriteFile(filepath.Join(workDir, config.ProjectConfigFile), []byte("[git\n"), 0o644)).To(Succeed())

			_, err := loader.Load(nil)
			Expect(err).To(HaveOccurred())
		})
	})
})
