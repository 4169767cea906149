package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlab-tracking/treesearch/pkg/httpapi"
	"github.com/jlab-tracking/treesearch/pkg/roadstore"
)

// matchCommand creates the "match" command: load a cached tree, match a
// posted hits file against it, and print the resulting roads.
func (c *CLI) matchCommand() *cobra.Command {
	var treeKey, hitsPath, mongoURI, mongoDB, redisAddr string
	var noCache, persist bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match one event's hits against a cached tree and print the roads found",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			backend, err := newCache(noCache, redisAddr)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer backend.Close()

			data, ok, err := backend.Get(ctx, treeKey)
			if err != nil {
				return fmt.Errorf("load cached tree: %w", err)
			}
			if !ok {
				return fmt.Errorf("no cached tree for key %q", treeKey)
			}
			tree, err := treeFromBytes(data)
			if err != nil {
				return fmt.Errorf("decode tree: %w", err)
			}

			hitsData, err := os.ReadFile(hitsPath)
			if err != nil {
				return fmt.Errorf("read hits file: %w", err)
			}
			var req httpapi.MatchRequest
			if err := json.Unmarshal(hitsData, &req); err != nil {
				return fmt.Errorf("parse hits file: %w", err)
			}

			progress := newProgress(c.Logger)
			resp := httpapi.Run(ctx, tree, req)
			progress.done(fmt.Sprintf("matched %d hits into %d roads", len(req.Hits), len(resp.Roads)))

			if persist {
				store, err := roadstore.NewStore(ctx, mongoURI, mongoDB)
				if err != nil {
					return fmt.Errorf("connect road store: %w", err)
				}
				defer store.Close(ctx)
				if err := store.SaveAll(ctx, resp); err != nil {
					return fmt.Errorf("persist roads: %w", err)
				}
				printDetail("Persisted %d roads to %s/%s", len(resp.Roads), mongoDB, "roads")
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVarP(&treeKey, "tree", "t", "", "cache key of the tree to match against")
	cmd.Flags().StringVar(&hitsPath, "hits", "hits.json", "path to a MatchRequest JSON file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the generation cache")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "use a shared Redis cache at this address instead of the local file cache")
	cmd.Flags().BoolVar(&persist, "persist", false, "persist resulting roads to MongoDB")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI for --persist")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "treesearch", "MongoDB database name for --persist")
	_ = cmd.MarkFlagRequired("tree")

	return cmd
}
