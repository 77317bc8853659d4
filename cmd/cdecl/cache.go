package main

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cdecl/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the result cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where the cache is and how much it holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openConfiguredCache(cmd)
		if err != nil {
			return err
		}
		st, err := cache.Stats()
		if err != nil {
			return fmt.Errorf("failed to read cache: %w", err)
		}
		size, err := safecast.Conv[uint64](st.Bytes)
		if err != nil {
			return fmt.Errorf("cache size: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "dir:     %s\n", cache.Dir())
		fmt.Fprintf(out, "entries: %s\n", humanize.Comma(int64(st.Entries)))
		fmt.Fprintf(out, "size:    %s\n", humanize.Bytes(size))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openConfiguredCache(cmd)
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func openConfiguredCache(cmd *cobra.Command) (*driver.Cache, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	cache, err := driver.OpenCache("cdecl", s.cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return cache, nil
}
