package git_test

import (
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing/object"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gitship/gitship/internal/git"
)

var _ = Describe("Inspector", func() {
	var (
		tempDir   string
		inspector *git.Inspector
		err       error
	)

	BeforeEach(func() {
		tempDir, err = os.MkdirTemp("", "inspector-test-*")
		Expect(err).NotTo(HaveOccurred())

		// Resolve symlinks (macOS /var -> /private/var)
		tempDir, err = filepath.EvalSymlinks(tempDir)
		Expect(err).NotTo(HaveOccurred())

		inspector = git.NewInspector("origin")
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tempDir)).To(Succeed())
	})

	Context("when the directory is not a repository", func() {
		It("should report uninitialized without error", func() {
			state, err := inspector.Inspect(tempDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Initialized).To(BeFalse())
			Expect(state.HasUncommittedChanges()).To(BeFalse())
		})
	})

	Context("when the repository is freshly initialized", func() {
		BeforeEach(func() {
			_, err = gogit.PlainInit(tempDir, false)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should report initialized with no remote", func() {
			state, err := inspector.Inspect(tempDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Initialized).To(BeTrue())
			Expect(state.RemoteURL).To(BeEmpty())
		})

		It("should resolve the unborn branch name", func() {
			state, err := inspector.Inspect(tempDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Branch).NotTo(BeEmpty())
		})

		It("should count untracked files", func() {
			Expect(os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("hello"), 0o644)).To(Succeed())

			state, err := inspector.Inspect(tempDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Untracked).To(ContainElement("notes.txt"))
			Expect(state.HasUncommittedChanges()).To(BeTrue())
		})
	})

	Context("when the repository has a remote and a commit", func() {
		var repo *gogit.Repository

		BeforeEach(func() {
			repo, err = gogit.PlainInit(tempDir, false)
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.CreateRemote(&config.RemoteConfig{
				Name: "origin",
				URLs: []string{"https://example.com/org/repo.git"},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(os.WriteFile(filepath.Join(tempDir, "main.go"), []byte("package main\n"), 0o644)).To(Succeed())

			worktree, err := repo.Worktree()
			Expect(err).NotTo(HaveOccurred())

			_, err = worktree.Add("main.go")
			Expect(err).NotTo(HaveOccurred())

			_, err = worktree.Commit("Initial commit", &gogit.CommitOptions{
				Author: &object.Signature{
					Name:  "Test User",
					Email: "test@example.com",
					When:  time.Now(),
				},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should report the remote URL", func() {
			state, err := inspector.Inspect(tempDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.RemoteURL).To(Equal("https://example.com/org/repo.git"))
		})

		It("should report a clean tree after commit", func() {
			state, err := inspector.Inspect(tempDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.HasUncommittedChanges()).To(BeFalse())
		})

		It("should see modifications to tracked files", func() {
			Expect(os.WriteFile(filepath.Join(tempDir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644)).To(Succeed())

			state, err := inspector.Inspect(tempDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Modified).To(ContainElement("main.go"))
		})
	})
})
