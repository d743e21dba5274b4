// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command httpbuildr sends JSON calls through named HTTP clients which
// are registered in a YAML config file.
//
//	httpbuildr get --config clients.yaml blog https://blog.example.com/posts/1
//	httpbuildr post --config clients.yaml --data '{"title":"hello"}' blog https://blog.example.com/posts
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	if err != nil {
		cancel()
		os.Exit(1)
	}
}
