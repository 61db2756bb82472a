package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/example/coffee-sales/internal/display"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and renders any failure as a single error notice
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stderr: stderr}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		n := display.NewNotice(err)
		log.Debugf("[%s] %s", n.Ref, n.Details)
		n.Render(stderr, a.details)
		return 1
	}
	return 0
}
