package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jlab-tracking/treesearch/pkg/cache"
	"github.com/jlab-tracking/treesearch/pkg/observability"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
	"github.com/jlab-tracking/treesearch/pkg/serialize"
)

// generateCommand creates the "generate" command: build a pattern tree
// from a TOML config and write it to a file, reusing a cached artifact
// when one already exists for the same normalized parameters.
func (c *CLI) generateCommand() *cobra.Command {
	var configPath, outPath, redisAddr string
	var noCache bool
	var ttlHours int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a pattern tree from a TOML config and write it to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			params, err := patterntree.LoadParams(configPath)
			if err != nil {
				return fmt.Errorf("load params: %w", err)
			}

			backend, err := newCache(noCache, redisAddr)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer backend.Close()

			progress := newProgress(c.Logger)
			tree, info, err := generateWithCache(ctx, backend, params, ttlHours)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			progress.done(fmt.Sprintf("built tree %q (%d patterns)", params.Name, tree.NumPatterns()))

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()

			if err := serialize.Write(f, tree); err != nil {
				return fmt.Errorf("write tree: %w", err)
			}

			if info.Hit {
				printSuccess("Reused cached tree %s", info.Key)
			} else {
				printSuccess("Generated tree %s", info.Key)
			}
			printDetail("Patterns: %d", tree.Stats().NumPatterns)
			printDetail("Levels:   %d", tree.NLevels)
			printFile(outPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "tree.toml", "path to the TreeParam TOML config")
	cmd.Flags().StringVarP(&outPath, "out", "o", "tree.bin", "path to write the serialized tree")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the generation cache")
	cmd.Flags().IntVar(&ttlHours, "cache-ttl-hours", 0, "cache entry lifetime in hours (0 = never expires)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "use a shared Redis cache at this address instead of the local file cache")

	return cmd
}

// CacheInfo describes whether a generated tree was freshly built or served
// from the cache, mirroring the teacher's pipeline.CacheInfo.
type CacheInfo struct {
	Hit bool
	Key string
}

// generateWithCache is the cache-then-compute flow behind the generate
// command: check the backend for a serialized tree keyed on params' content
// hash, and on a miss, generate and store it.
func generateWithCache(ctx context.Context, backend cache.Cache, params patterntree.Params, ttlHours int) (*patterntree.Tree, CacheInfo, error) {
	key := cache.TreeKey(params.CacheKey())

	if data, ok, err := backend.Get(ctx, key); err != nil {
		return nil, CacheInfo{}, fmt.Errorf("cache get: %w", err)
	} else if ok {
		tree, err := serialize.ReadBytes(data)
		if err != nil {
			return nil, CacheInfo{}, fmt.Errorf("decode cached tree: %w", err)
		}
		tree.Name = params.Name
		return tree, CacheInfo{Hit: true, Key: key}, nil
	}

	observability.Engine().OnGenerateStart(ctx, params.Name)
	start := time.Now()
	tree, err := patterntree.Generate(params)
	if err != nil {
		observability.Engine().OnGenerateComplete(ctx, params.Name, 0, time.Since(start), err)
		return nil, CacheInfo{}, err
	}
	observability.Engine().OnGenerateComplete(ctx, params.Name, tree.NumPatterns(), time.Since(start), nil)

	data, err := serialize.WriteBytes(tree)
	if err != nil {
		return nil, CacheInfo{}, fmt.Errorf("serialize for cache: %w", err)
	}

	ttl := ttlHoursToDuration(ttlHours)
	if err := backend.Set(ctx, key, data, ttl); err != nil {
		return nil, CacheInfo{}, fmt.Errorf("cache set: %w", err)
	}

	return tree, CacheInfo{Hit: false, Key: key}, nil
}

// ttlHoursToDuration converts a flag value in hours to a time.Duration,
// with 0 meaning "never expires" per the Cache contract.
func ttlHoursToDuration(hours int) time.Duration {
	if hours <= 0 {
		return 0
	}
	return time.Duration(hours) * time.Hour
}
