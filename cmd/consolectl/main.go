package main

import (
	"fmt"
	"os"

	"ClubAdminPlatform/internal/cli"
	apperrors "ClubAdminPlatform/pkg/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %s\n", apperrors.FromErr(err).GetUserMessage())
		os.Exit(1)
	}
}
