package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"memory_mapping/internal/http/dto"
	"memory_mapping/internal/model"
)

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "add <memory-id> <description> <price>",
		Short:         "Add a memory owned by --owner",
		Example:       `  memoryctl --owner 0xA add testMemoryId1 "first trip" "1 ETH"`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			var created model.Memory
			req := dto.AddMemoryRequest{MemoryID: args[0], Description: args[1], Price: args[2]}
			if err := newClient(opts).add(ctx, "/memories", req, &created); err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), created)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "added %s as sequence %d\n", created.MemoryID, created.Sequence)
			return err
		},
	}
}

// NewPublishCommand creates the publish command, which queues the memory
// instead of storing it synchronously.
func NewPublishCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "publish <memory-id> <description> <price>",
		Short:         "Queue a memory owned by --owner",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			var status dto.StatusResponse
			req := dto.AddMemoryRequest{MemoryID: args[0], Description: args[1], Price: args[2]}
			if err := newClient(opts).add(ctx, "/memories/publish", req, &status); err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", status.Code, args[0])
			return err
		},
	}
}

// NewLatestCommand creates the latest command.
func NewLatestCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "latest",
		Short:         "List the latest memories, oldest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			list, err := newClient(opts).latest(ctx)
			if err != nil {
				return err
			}
			return writeMemories(cmd.OutOrStdout(), opts.Format, list)
		},
	}
}

// NewCountCommand creates the count command.
func NewCountCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "count",
		Short:         "Print the number of memories",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			count, err := newClient(opts).count(ctx, "/memories/count")
			if err != nil {
				return err
			}
			return writeCount(cmd.OutOrStdout(), opts.Format, count)
		},
	}
}

// NewOwnersCommand creates the owners command.
func NewOwnersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "owners",
		Short:         "Print the number of distinct owners",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			count, err := newClient(opts).count(ctx, "/owners/count")
			if err != nil {
				return err
			}
			return writeCount(cmd.OutOrStdout(), opts.Format, count)
		},
	}
}

// OwnerOptions holds flags for the owner command.
type OwnerOptions struct {
	*RootOptions
	CountOnly bool
}

// NewOwnerCommand creates the owner command. Without an argument it reports
// on --owner.
func NewOwnerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OwnerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "owner [address]",
		Short:         "List the memories of one owner",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner := opts.Owner
			if len(args) == 1 {
				owner = args[0]
			}
			if owner == "" {
				return fmt.Errorf("owner address or --owner is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			c := newClient(opts.RootOptions)
			if opts.CountOnly {
				count, err := c.count(ctx, ownerPath(owner)+"/count")
				if err != nil {
					return err
				}
				return writeCount(cmd.OutOrStdout(), opts.Format, count)
			}
			list, err := c.ownerMemories(ctx, owner)
			if err != nil {
				return err
			}
			return writeMemories(cmd.OutOrStdout(), opts.Format, list)
		},
	}

	cmd.Flags().BoolVarP(&opts.CountOnly, "count", "c", false, "print only the number of memories")

	return cmd
}
