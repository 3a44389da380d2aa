package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"talkmigrate/internal"
	"talkmigrate/internal/di"
	"talkmigrate/internal/structures"

	"github.com/jessevdk/go-flags"
)

func main() {
	var opts structures.CliFlags
	if _, err := flags.Parse(&opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	app, err := di.InitApp(context.Background(), &opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "talkmigrate: %s\n", err)
		os.Exit(1)
	}

	_, err = app.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "talkmigrate: %s\n", err)
	}
	os.Exit(internal.ExitCode(err))
}
