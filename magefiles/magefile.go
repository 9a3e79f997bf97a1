//go:build mage

// Package main contains Mage build targets for tech-blogs developer tooling.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir    = "bin"
	binName   = "tech-blogs"
	cmdPkg    = "./cmd/tech-blogs"
	draftsDir = "drafts"
	queueFile = "topics.json"
)

// Init creates the drafts directory and an empty topics.json if missing.
func Init() error {
	if err := os.MkdirAll(draftsDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", draftsDir, err)
	}
	fmt.Println("  ", draftsDir)

	if _, err := os.Stat(queueFile); os.IsNotExist(err) {
		if err := os.WriteFile(queueFile, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", queueFile, err)
		}
		fmt.Println("  ", queueFile)
	}
	fmt.Println("Project initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Draft builds the CLI and generates one draft.
func Draft() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "generate")
}

// Stats prints Go production/test LOC, the queue depth and the draft count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	if data, err := os.ReadFile(queueFile); err == nil {
		var topics []string
		if err := json.Unmarshal(data, &topics); err != nil {
			return fmt.Errorf("parsing %s: %w", queueFile, err)
		}
		fmt.Printf("Topics queued:                  %d\n", len(topics))
	}
	if entries, err := os.ReadDir(draftsDir); err == nil {
		fmt.Printf("Drafts written:                 %d\n", len(entries))
	}
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && (name[0] == '.' || name[0] == '_') {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		isTest := len(path) > 8 && path[len(path)-8:] == "_test.go"
		if testOnly != isTest {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		inLine := false
		for _, b := range data {
			switch {
			case b == '\n':
				if inLine {
					total++
				}
				inLine = false
			case b != ' ' && b != '\t' && b != '\r':
				inLine = true
			}
		}
		if inLine {
			total++
		}
		return nil
	})
	return total, err
}
