package main

import (
	"fmt"

	"github.com/fwojciec/locqa"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	res, err := deps.Retriever.RetrieveAndAnswer(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, locqa.FormatResult(res))
	return nil
}
