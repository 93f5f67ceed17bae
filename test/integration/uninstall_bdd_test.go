//go:build integration

package integration

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/evaleds/evalup/internal/domain"
	"github.com/evaleds/evalup/internal/infra"
	"github.com/evaleds/evalup/internal/ui"
	"github.com/evaleds/evalup/internal/usecase"
)

// scriptedPrompter feeds canned answers into the gates.
type scriptedPrompter struct {
	answers []bool
	asked   int
}

func (s *scriptedPrompter) Ask(question string, defaultYes bool) bool {
	s.asked++
	if len(s.answers) == 0 {
		return defaultYes
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer
}

// quietProcesses reports no running evaleds instances.
type quietProcesses struct{}

func (quietProcesses) FindByName(string) ([]int, error) { return nil, nil }
func (quietProcesses) Terminate(int) error              { return nil }
func (quietProcesses) IsRunning(int) bool               { return false }

// snapshot returns a stable digest of every file under root.
func snapshot(root string) map[string]string {
	out := make(map[string]string)
	_ = filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()
		h := sha256.New()
		_, _ = io.Copy(h, f)
		rel, _ := filepath.Rel(root, path)
		out[rel] = hex.EncodeToString(h.Sum(nil))
		return nil
	})
	return out
}

var _ = Describe("Uninstall flow", func() {
	var (
		root     string
		binDir   string
		cfgDir   string
		dataDir  string
		prompter *scriptedPrompter
		out      bytes.Buffer
	)

	makeUninstaller := func(opts domain.Options) *usecase.Uninstaller {
		printer := ui.NewPrinterWithStreams(&out, io.Discard)
		logger := zap.NewNop()
		fsys := infra.NewFileSystem()
		locator := usecase.NewLocator(fsys,
			[]domain.CandidatePath{
				{Kind: domain.KindBinaryDir, Path: filepath.Join(root, "empty-bin"), Source: "test"},
				{Kind: domain.KindBinaryDir, Path: binDir, Source: "test"},
			},
			[]domain.CandidatePath{
				{Kind: domain.KindConfigDir, Path: cfgDir, Source: "test"},
			},
			[]domain.CandidatePath{
				{Kind: domain.KindDataDir, Path: dataDir, Source: "test"},
			},
			logger)
		gate := usecase.NewGate(prompter, opts.Force)
		executor := usecase.NewExecutor(fsys, printer, logger)
		pathEnv := infra.NewPathEnvWithState(root, "linux", "/bin/bash", "")
		return usecase.NewUninstaller(opts, locator, gate, executor,
			quietProcesses{}, pathEnv, printer, logger)
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		binDir = filepath.Join(root, "bin")
		cfgDir = filepath.Join(root, "config", "evaleds")
		dataDir = filepath.Join(root, "share", "evaleds")
		prompter = &scriptedPrompter{}
		out.Reset()

		Expect(os.MkdirAll(binDir, 0o755)).To(Succeed())
		Expect(os.MkdirAll(cfgDir, 0o755)).To(Succeed())
		Expect(os.MkdirAll(dataDir, 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(binDir, "evaleds"), []byte("#!/bin/sh\n"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("temperature = 0.7\n"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dataDir, "runs.json"), []byte("[]"), 0o644)).To(Succeed())
	})

	Describe("dry-run", func() {
		It("leaves the filesystem byte-for-byte identical", func() {
			before := snapshot(root)

			report := makeUninstaller(domain.Options{
				DryRun: true, RemoveConfig: true, RemoveData: true,
			}).Run()

			Expect(snapshot(root)).To(Equal(before))
			Expect(report.Count(domain.OutcomeApplied)).To(Equal(3))
			Expect(prompter.asked).To(BeZero())
			Expect(out.String()).To(ContainSubstring("[dry-run]"))
		})
	})

	Describe("live run", func() {
		It("removes every confirmed category", func() {
			prompter.answers = []bool{true, true, true, true}

			report := makeUninstaller(domain.Options{}).Run()

			Expect(report.Cancelled).To(BeFalse())
			Expect(filepath.Join(binDir, "evaleds")).NotTo(BeAnExistingFile())
			Expect(cfgDir).NotTo(BeADirectory())
			Expect(dataDir).NotTo(BeADirectory())
		})

		It("preserves a declined category and says where it remains", func() {
			// proceed, binaries yes, config no, data yes
			prompter.answers = []bool{true, true, false, true}

			report := makeUninstaller(domain.Options{}).Run()

			Expect(cfgDir).To(BeADirectory())
			Expect(report.Preserved).To(ContainElement(cfgDir))
			Expect(out.String()).To(ContainSubstring("preserved"))
		})

		It("is idempotent: the second run is a no-op", func() {
			first := makeUninstaller(domain.Options{
				Force: true, RemoveConfig: true, RemoveData: true,
			}).Run()
			Expect(first.Count(domain.OutcomeApplied)).To(Equal(3))

			second := makeUninstaller(domain.Options{
				Force: true, RemoveConfig: true, RemoveData: true,
			}).Run()
			Expect(second.NotInstalled).To(BeTrue())
		})
	})

	Describe("database files inside a config directory", func() {
		It("reports them as data and removes them without the config dir", func() {
			Expect(os.WriteFile(filepath.Join(cfgDir, "evaluations.db"), []byte("sqlite"), 0o644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(cfgDir, "evaluations.db-wal"), []byte("wal"), 0o644)).To(Succeed())
			Expect(os.RemoveAll(dataDir)).To(Succeed())

			// proceed, binaries yes, config NO, data yes
			prompter.answers = []bool{true, true, false, true}
			makeUninstaller(domain.Options{}).Run()

			Expect(cfgDir).To(BeADirectory())
			Expect(filepath.Join(cfgDir, "config.toml")).To(BeAnExistingFile())
			Expect(filepath.Join(cfgDir, "evaluations.db")).NotTo(BeAnExistingFile())
			Expect(filepath.Join(cfgDir, "evaluations.db-wal")).NotTo(BeAnExistingFile())
		})
	})

	Describe("partial failure", func() {
		It("continues past an unwritable artifact", func() {
			if os.Geteuid() == 0 {
				Skip("permission checks do not apply to root")
			}
			// Make the data dir's parent read-only so its removal fails.
			Expect(os.Chmod(filepath.Join(root, "share"), 0o555)).To(Succeed())
			DeferCleanup(func() {
				_ = os.Chmod(filepath.Join(root, "share"), 0o755)
			})

			report := makeUninstaller(domain.Options{
				Force: true, RemoveConfig: true, RemoveData: true,
			}).Run()

			Expect(report.Count(domain.OutcomePermissionDenied)).To(Equal(1))
			Expect(report.Count(domain.OutcomeApplied)).To(Equal(2), "the other categories still ran")
			Expect(out.String()).To(ContainSubstring("permission denied"))
		})
	})
})
