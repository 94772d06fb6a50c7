package main

import (
	"fmt"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/qa"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	exists, err := deps.Records.Exists(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		return err
	}
	if exists {
		fmt.Fprintf(deps.Stdout, "Store already exists at %s\n", deps.Config.DB)
	}

	store, err := qa.OpenStore(deps.Ctx, deps.Records, deps.Source, deps.Builder)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		if locqa.ErrorCode(err) == locqa.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: set 'dataset' in the config file, LOCQA_DATASET, or pass --dataset")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d records (dimension %d)\n", store.Len(), store.Dimension())
	return nil
}
