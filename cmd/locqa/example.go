package main

import (
	"fmt"

	"github.com/fwojciec/locqa"
)

// Run executes the example command.
func (c *ExampleCmd) Run(deps *Dependencies) error {
	seed := c.Seed
	if seed == 0 {
		seed = deps.Seed()
	}
	question := locqa.PickExample(seed, deps.Config.Examples)
	if question == "" {
		question = locqa.PickExample(seed, locqa.DefaultExamples)
	}

	fmt.Fprintf(deps.Stdout, "Question: %s\n\n", question)

	res, err := deps.Retriever.RetrieveAndAnswer(deps.Ctx, question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, locqa.FormatResult(res))
	return nil
}
