package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/xlog"
)

func newBuildCmd(cfg *Config) *cobra.Command {
	var sortInput bool
	cmd := &cobra.Command{
		Use:   "build <n...>",
		Short: "Builds a minimum height binary tree from integers",
		Long: `Builds a minimum height binary tree whose inorder sequence is the given
integers in input order. With --sort the input is sorted first, the result is
then a binary search tree.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseInts(args)
			if err != nil {
				return err
			}
			if sortInput {
				slices.Sort(data)
			}
			return runApp(cmd, cfg, func(logger xlog.XLogger, out Output, _ *Metrics) error {
				return buildTree(logger, out, data)
			})
		},
	}
	cmd.Flags().BoolVar(&sortInput, "sort", false, "sort the integers before building")
	return cmd
}

func buildTree(logger xlog.XLogger, out Output, data []int) error {
	bt := tree.NewLinkedBinaryTree[int]()
	if err := tree.ConstructTree[int](bt, data); err != nil {
		logger.ErrorStack(err, "construct tree")
		return err
	}
	if err := tree.LinkValidate(bt); err != nil {
		logger.Error(err, "tree links broken")
		return err
	}

	height, err := bt.Height(bt.Root())
	if err != nil {
		return err
	}
	logger.Info("tree built",
		zap.Int64("size", bt.Len()),
		zap.Int("height", height),
		zap.Ints("inorder", bt.Elements()),
		zap.Ints("breadthFirst", lo.Map(bt.BreadthFirst(), func(p tree.Position[int], _ int) int {
			e, _ := p.Element()
			return e
		})),
	)
	_, err = fmt.Fprintln(out.Out, tree.Sprint[int](bt))
	return err
}

func parseInts(args []string) ([]int, error) {
	data := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, infra.WrapErrorStackWithMessage(err, fmt.Sprintf("[xtree] %q is not an integer", arg))
		}
		data = append(data, n)
	}
	return data, nil
}
