package git_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	execpkg "github.com/gitship/gitship/internal/exec"
	"github.com/gitship/gitship/internal/git"
)

var _ = Describe("CLIRunner", func() {
	var (
		ctrl       *gomock.Controller
		mockRunner *execpkg.MockCommandRunner
		runner     *git.CLIRunner
		ctx        context.Context
	)

	const dir = "/work/project"

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockRunner = execpkg.NewMockCommandRunner(ctrl)
		runner = git.NewCLIRunner(mockRunner, dir, 0)
		ctx = context.Background()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Describe("IsInitialized", func() {
		It("should report true when a .git directory exists", func() {
			tempDir, err := os.MkdirTemp("", "cli-runner-test-*")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(func() { _ = os.RemoveAll(tempDir) })

			local := git.NewCLIRunner(mockRunner, tempDir, 0)
			Expect(local.IsInitialized()).To(BeFalse())

			Expect(os.Mkdir(filepath.Join(tempDir, ".git"), 0o755)).To(Succeed())
			Expect(local.IsInitialized()).To(BeTrue())
		})

		It("should not treat a .git file as metadata", func() {
			tempDir, err := os.MkdirTemp("", "cli-runner-test-*")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(func() { _ = os.RemoveAll(tempDir) })

			Expect(os.WriteFile(filepath.Join(tempDir, ".git"), []byte("gitdir: elsewhere"), 0o644)).To(Succeed())

			local := git.NewCLIRunner(mockRunner, tempDir, 0)
			Expect(local.IsInitialized()).To(BeFalse())
		})
	})

	Describe("Init", func() {
		It("should run git init against the working directory", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "init").
				Return(execpkg.CommandResult{})

			Expect(runner.Init(ctx)).To(Succeed())
		})
	})

	Describe("StageAll", func() {
		It("should stage everything with add -A", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "add", "-A").
				Return(execpkg.CommandResult{})

			Expect(runner.StageAll(ctx)).To(Succeed())
		})
	})

	Describe("HasChanges", func() {
		It("should report true for non-empty porcelain output", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "status", "--porcelain").
				Return(execpkg.CommandResult{Stdout: " M main.go\n?? notes.txt\n"})

			changes, err := runner.HasChanges(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(changes).To(BeTrue())
		})

		It("should report false for a clean tree", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "status", "--porcelain").
				Return(execpkg.CommandResult{Stdout: "\n"})

			changes, err := runner.HasChanges(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(changes).To(BeFalse())
		})
	})

	Describe("Commit", func() {
		It("should pass the message through", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "commit", "-m", "Initial commit").
				Return(execpkg.CommandResult{})

			Expect(runner.Commit(ctx, "Initial commit")).To(Succeed())
		})

		It("should surface git's stderr on failure", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "commit", "-m", "Initial commit").
				Return(execpkg.CommandResult{
					ExitCode: 128,
					Stderr:   "fatal: unable to auto-detect email address\n",
					Err:      errors.New("exit status 128"),
				})

			err := runner.Commit(ctx, "Initial commit")

			var cmdErr *git.CommandError
			Expect(errors.As(err, &cmdErr)).To(BeTrue())
			Expect(cmdErr.Message()).To(Equal("fatal: unable to auto-detect email address"))
			Expect(cmdErr.ExitCode).To(Equal(128))
		})
	})

	Describe("CurrentBranch", func() {
		It("should trim the symbolic-ref output", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "symbolic-ref", "--short", "HEAD").
				Return(execpkg.CommandResult{Stdout: "main\n"})

			branch, err := runner.CurrentBranch(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(branch).To(Equal("main"))
		})
	})

	Describe("RemoteURL", func() {
		It("should return the configured URL", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "config", "--get", "remote.origin.url").
				Return(execpkg.CommandResult{Stdout: "https://example.com/org/repo.git\n"})

			url, err := runner.RemoteURL(ctx, "origin")
			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(Equal("https://example.com/org/repo.git"))
		})

		It("should return empty without error when the remote is unset", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "config", "--get", "remote.origin.url").
				Return(execpkg.CommandResult{ExitCode: 1, Err: errors.New("exit status 1")})

			url, err := runner.RemoteURL(ctx, "origin")
			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(BeEmpty())
		})

		It("should propagate other failures", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "config", "--get", "remote.origin.url").
				Return(execpkg.CommandResult{
					ExitCode: 128,
					Stderr:   "fatal: not in a git directory\n",
					Err:      errors.New("exit status 128"),
				})

			_, err := runner.RemoteURL(ctx, "origin")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SetRemote", func() {
		It("should add the remote", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "remote", "add", "origin", "https://example.com/org/repo.git").
				Return(execpkg.CommandResult{})

			Expect(runner.SetRemote(ctx, "origin", "https://example.com/org/repo.git")).To(Succeed())
		})
	})

	Describe("RenameBranch", func() {
		It("should force-rename the current branch", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "branch", "-M", "main").
				Return(execpkg.CommandResult{})

			Expect(runner.RenameBranch(ctx, "main")).To(Succeed())
		})
	})

	Describe("PushUpstream", func() {
		It("should push with upstream tracking", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "push", "-u", "origin", "main").
				Return(execpkg.CommandResult{})

			Expect(runner.PushUpstream(ctx, "origin", "main")).To(Succeed())
		})

		It("should surface authentication failures verbatim", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "git", "-C", dir, "push", "-u", "origin", "main").
				Return(execpkg.CommandResult{
					ExitCode: 128,
					Stderr:   "fatal: Authentication failed\n",
					Err:      errors.New("exit status 128"),
				})

			err := runner.PushUpstream(ctx, "origin", "main")

			var cmdErr *git.CommandError
			Expect(errors.As(err, &cmdErr)).To(BeTrue())
			Expect(cmdErr.Message()).To(Equal("fatal: Authentication failed"))
		})
	})
})
