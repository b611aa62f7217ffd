package magetasks

import (
	"errors"
	"fmt"

	"github.com/magefile/mage/sh"
)

// LintAll runs every available linter. Missing optional tools are skipped.
func LintAll() error {
	var errs []error
	for _, lint := range []func() error{LintFormat, LintVet, LintGolangci} {
		if err := lint(); err != nil && !IsCommandNotFound(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LintFormat fails when gofmt would change any file.
func LintFormat() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need formatting:\n%s", out)
	}
	return nil
}

// LintVet runs go vet.
func LintVet() error {
	return runStep("Go Vet", "go vet passed", "go", "vet", "./...")
}

// LintGolangci runs golangci-lint.
func LintGolangci() error {
	err := runStep("Golangci-lint", "golangci-lint passed", "golangci-lint", "run", "--timeout=5m", "./...")
	if IsCommandNotFound(err) {
		PrintWarning("Golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
	}
	return err
}
