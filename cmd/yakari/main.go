package main

import (
	"errors"
	"os"

	"github.com/cristianoliveira/yakari/cmd"
	apperrors "github.com/cristianoliveira/yakari/internal/errors"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}
	var exit *exitCodeError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	apperrors.Report(apperrors.NewDefaultCLIHandler(), err)
	os.Exit(1)
}
