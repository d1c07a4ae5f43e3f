package main

import (
	"context"
	"os"

	"github.com/benz9527/xtree/cmd/xtree/cli"
)

func main() {
	if err := cli.New().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
