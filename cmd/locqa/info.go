package main

import (
	"fmt"

	"github.com/fwojciec/locqa"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	store, err := deps.Records.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		if locqa.ErrorCode(err) == locqa.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: run 'locqa build' first")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Path:      %s\n", deps.Config.DB)
	fmt.Fprintf(deps.Stdout, "Records:   %d\n", store.Len())
	fmt.Fprintf(deps.Stdout, "Dimension: %d\n", store.Dimension())
	fmt.Fprintf(deps.Stdout, "Metric:    %s\n", deps.Config.Metric)
	return nil
}
