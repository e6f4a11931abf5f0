package config_test

import (
	"context"

	"github.com/urfave/cli/v3"
)

func newTestCommand(flags []cli.Flag, action func() error) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return action()
		},
	}
}
