package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/xlog"
)

type avlOptions struct {
	load    []int
	puts    []int
	deletes []int
	desc    bool
}

func newAVLCmd(cfg *Config) *cobra.Command {
	opts := &avlOptions{}
	cmd := &cobra.Command{
		Use:   "avl",
		Short: "Drives an AVL map",
		Long: `Bulk loads --load, puts every --put key and deletes every --delete key
of an AVL map with integer keys, checks the AVL invariants after each step and
prints the resulting tree.`,
		Example: "xtree avl --put 1,3,2,5,4 --delete 3",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, cfg, func(logger xlog.XLogger, out Output, metrics *Metrics) error {
				return runAVL(logger, out, metrics, opts)
			})
		},
	}
	cmd.Flags().IntSliceVar(&opts.load, "load", nil, "strictly increasing keys to bulk load first")
	cmd.Flags().IntSliceVar(&opts.puts, "put", nil, "keys to put in order")
	cmd.Flags().IntSliceVar(&opts.deletes, "delete", nil, "keys to delete in order")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "keep the keys in descending order")
	return cmd
}

func avlValidate(avl *tree.AVLTree[int, string]) error {
	return multierr.Combine(
		tree.LinkValidate(avl.LinkedBinaryTree),
		tree.BalanceValidate(avl),
		tree.OrderValidate(avl),
	)
}

func runAVL(logger xlog.XLogger, out Output, metrics *Metrics, opts *avlOptions) error {
	treeOpts := make([]tree.AVLTreeOpt[int, string], 0, 2)
	if opts.desc {
		treeOpts = append(treeOpts, tree.WithAVLTreeDesc[int, string]())
	}
	if metrics != nil && metrics.Enabled {
		treeOpts = append(treeOpts, tree.WithAVLTreeStats[int, string]("cli"))
	}
	avl := tree.NewOrderedAVLTree[int, string](treeOpts...)
	log := logger.Named("avl")

	if len(opts.load) > 0 {
		entries := make([]tree.Entry[int, string], 0, len(opts.load))
		for _, k := range opts.load {
			entries = append(entries, tree.NewEntry(k, strconv.Itoa(k)))
		}
		if err := avl.Load(entries); err != nil {
			log.ErrorStack(err, "load")
			return err
		}
		if err := avlValidate(avl); err != nil {
			log.Error(err, "invariants broken after load")
			return err
		}
		log.Debug("loaded", zap.Int("count", len(entries)))
	}

	for _, k := range opts.puts {
		_, replaced, err := avl.Put(k, strconv.Itoa(k))
		if err != nil {
			log.ErrorStack(err, "put", zap.Int("key", k))
			return err
		}
		if err = avlValidate(avl); err != nil {
			log.Error(err, "invariants broken after put", zap.Int("key", k))
			return err
		}
		log.Debug("put", zap.Int("key", k), zap.Bool("replaced", replaced))
	}

	for _, k := range opts.deletes {
		_, ok, err := avl.Delete(k)
		if err != nil {
			log.ErrorStack(err, "delete", zap.Int("key", k))
			return err
		}
		if err = avlValidate(avl); err != nil {
			log.Error(err, "invariants broken after delete", zap.Int("key", k))
			return err
		}
		if !ok {
			log.Warn("key not found", zap.Int("key", k))
			continue
		}
		log.Debug("deleted", zap.Int("key", k))
	}

	height := -1
	if !avl.IsEmpty() {
		h, err := avl.GetHeight(avl.Root())
		if err != nil {
			return err
		}
		height = h
	}
	log.Info("avl tree ready",
		zap.Int64("size", avl.Len()),
		zap.Int("height", height),
		zap.Ints("keys", avl.Keys()),
	)
	_, err := fmt.Fprintln(out.Out, tree.Sprint[tree.Entry[int, string]](avl))
	return err
}
