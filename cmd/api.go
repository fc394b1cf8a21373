package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"intranet/api"
	"intranet/config"
)

func newAPICmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Call the intranet API",
	}
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (defaults to API_BASE_URL)")

	client := func() (*api.Client, error) {
		if baseURL == "" {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			baseURL = cfg.APIBaseURL
		}
		return api.NewClient(baseURL)
	}

	type call func(ctx context.Context, c *api.Client, endpoint string, body any) (any, error)
	add := func(use, short string, withBody bool, fn call) {
		args := cobra.ExactArgs(1)
		if withBody {
			args = cobra.ExactArgs(2)
		}
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := client()
				if err != nil {
					return err
				}
				var body any
				if withBody {
					if err := json.Unmarshal([]byte(args[1]), &body); err != nil {
						return fmt.Errorf("invalid JSON body: %w", err)
					}
				}
				res, err := fn(cmd.Context(), c, args[0], body)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			},
		})
	}

	add("get <endpoint>", "GET an endpoint", false, func(ctx context.Context, c *api.Client, ep string, _ any) (any, error) {
		return api.Get[any](ctx, c, ep)
	})
	add("post <endpoint> <json>", "POST a JSON body", true, func(ctx context.Context, c *api.Client, ep string, body any) (any, error) {
		return api.Post[any](ctx, c, ep, body)
	})
	add("patch <endpoint> <json>", "PATCH a JSON body", true, func(ctx context.Context, c *api.Client, ep string, body any) (any, error) {
		return api.Patch[any](ctx, c, ep, body)
	})
	add("delete <endpoint>", "DELETE an endpoint", false, func(ctx context.Context, c *api.Client, ep string, _ any) (any, error) {
		return api.Delete[any](ctx, c, ep)
	})
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newNotifyCmd() *cobra.Command {
	var relay, typ string

	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Show a toast in every browser connected to a running relay",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if relay == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				relay = "http://localhost:" + cfg.Port
			}
			c, err := api.NewClient(relay)
			if err != nil {
				return err
			}
			res, err := api.Post[map[string]string](cmd.Context(), c, "/notify", map[string]string{
				"message": strings.Join(args, " "),
				"type":    typ,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res["status"])
			return nil
		},
	}
	cmd.Flags().StringVar(&relay, "relay", "", "relay URL (defaults to http://localhost:$PORT)")
	cmd.Flags().StringVar(&typ, "type", "info", "severity: info, success, warning, error")
	return cmd
}
