package main

import (
	"fmt"

	locqahttp "github.com/fwojciec/locqa/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Config.Server.Addr
	}

	server := locqahttp.NewServer(deps.Retriever, deps.Config.Examples, deps.Logger)
	if err := server.ListenAndServe(deps.Ctx, addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error serving: %v\n", err)
		return err
	}
	return nil
}
